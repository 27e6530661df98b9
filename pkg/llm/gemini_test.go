package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewGeminiProvider(t *testing.T) {
	t.Run("requires key", func(t *testing.T) {
		if _, err := NewGeminiProvider(ProviderConfig{}); err == nil {
			t.Fatal("expected error without API key")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		p, err := NewGeminiProvider(ProviderConfig{APIKey: "k"})
		if err != nil {
			t.Fatal(err)
		}
		if p.Model() != DefaultModels["gemini"] {
			t.Errorf("Model() = %q", p.Model())
		}
		if p.baseURL != DefaultGeminiBaseURL {
			t.Errorf("baseURL = %q", p.baseURL)
		}
		if p.Name() != "gemini" {
			t.Errorf("Name() = %q", p.Name())
		}
	})
}

func TestGeminiProvider_Execute(t *testing.T) {
	var got geminiRequest
	var gotPath, gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Short "}, {"text": "summary."}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 3},
			"modelVersion": "gemini-test-001"
		}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(ProviderConfig{APIKey: "secret", BaseURL: srv.URL + "/", Model: "gemini-test"})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := p.Execute(context.Background(), Request{
		Messages:    []Message{{Role: RoleSystem, Content: "be brief"}, {Role: RoleUser, Content: "hello"}},
		MaxTokens:   800,
		Temperature: 0.2,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if gotPath != "/models/gemini-test:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("api key header = %q", gotKey)
	}
	if got.GenerationConfig.Temperature != 0.2 || got.GenerationConfig.MaxOutputTokens != 800 {
		t.Errorf("generationConfig = %+v", got.GenerationConfig)
	}
	if len(got.Contents) != 1 || got.Contents[0].Parts[0].Text != "hello" || got.Contents[0].Role != "user" {
		t.Errorf("contents = %+v", got.Contents)
	}
	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "be brief" {
		t.Errorf("systemInstruction = %+v", got.SystemInstruction)
	}

	if resp.Content != "Short summary." {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Model != "gemini-test-001" || resp.FinishReason != "STOP" {
		t.Errorf("unexpected response metadata %+v", resp)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 3 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
}

func TestGeminiProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error", http.StatusBadRequest, `{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`, "API key not valid"},
		{"plain error", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"blocked", http.StatusOK, `{"promptFeedback": {"blockReason": "SAFETY"}}`, "SAFETY"},
		{"no candidates", http.StatusOK, `{"candidates": []}`, "no candidates"},
		{"bad json", http.StatusOK, `{`, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p, _ := NewGeminiProvider(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
			_, err := p.Execute(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Execute() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGeminiProvider_ContextCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	p, _ := NewGeminiProvider(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Execute(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
