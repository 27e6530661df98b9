package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		log      func(string)
		msg      string
		expected bool
	}{
		{"info at default", Options{}, func(m string) { Info(m) }, "info default", true},
		{"debug hidden at default", Options{}, func(m string) { Debug(m) }, "debug default", false},
		{"debug shown when enabled", Options{Debug: true}, func(m string) { Debug(m) }, "debug on", true},
		{"info hidden when quiet", Options{Quiet: true}, func(m string) { Info(m) }, "info quiet", false},
		{"warn hidden when quiet", Options{Quiet: true}, func(m string) { Warn(m) }, "warn quiet", false},
		{"error shown when quiet", Options{Quiet: true}, func(m string) { Error(m) }, "error quiet", true},
		{"quiet beats debug", Options{Debug: true, Quiet: true}, func(m string) { Debug(m) }, "debug quiet", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			opts := tt.opts
			opts.Output = buf
			Init(opts)
			defer resetLogger()

			tt.log(tt.msg)

			if got := strings.Contains(buf.String(), tt.msg); got != tt.expected {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.expected, buf.String())
			}
		})
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("relay started", "addr", ":3000")

	output := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("expected JSON output, got %q", output)
	}
	if !strings.Contains(output, `"addr":":3000"`) {
		t.Errorf("expected addr attribute, got %q", output)
	}
}

func TestInit_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("extracted", "words", 42)

	output := buf.String()
	if !strings.Contains(output, "level=INFO") {
		t.Errorf("expected text level, got %q", output)
	}
	if !strings.Contains(output, "words=42") {
		t.Errorf("expected words attribute, got %q", output)
	}
}

func TestWith_ReturnsLoggerWithAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	With("provider", "gemini").Info("generate")

	if !strings.Contains(buf.String(), "provider=gemini") {
		t.Errorf("expected attribute in output, got %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	t.Run("falls back to default", func(t *testing.T) {
		if FromContext(context.Background()) != Logger() {
			t.Error("expected default logger for bare context")
		}
	})

	t.Run("returns stored logger", func(t *testing.T) {
		reqLogger := With("request_id", "abc-123")
		ctx := WithContext(context.Background(), reqLogger)

		InfoContext(ctx, "handled")

		if !strings.Contains(buf.String(), "request_id=abc-123") {
			t.Errorf("expected request id from context logger, got %q", buf.String())
		}
	})
}

func TestContextFunctions(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	ctx := context.Background()
	DebugContext(ctx, "debug ctx")
	InfoContext(ctx, "info ctx")
	WarnContext(ctx, "warn ctx")
	ErrorContext(ctx, "error ctx")

	for _, msg := range []string{"debug ctx", "info ctx", "warn ctx", "error ctx"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("expected %q in output", msg)
		}
	}
}
