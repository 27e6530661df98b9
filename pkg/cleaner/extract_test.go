package cleaner

import (
	"strings"
	"testing"

	"github.com/jmylchreest/cleanread/pkg/cleaner/cleanread"
)

func TestExtract_DefaultEngine(t *testing.T) {
	out, err := Extract(testArticle, "", FormatHTML)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if out.Engine != EngineCleanread {
		t.Errorf("Engine = %q, want cleanread", out.Engine)
	}
	if out.Strategy != cleanread.StrategySemantic {
		t.Errorf("Strategy = %q, want semantic", out.Strategy)
	}
	if out.Result == nil || out.Result.WordCount != out.WordCount {
		t.Errorf("Result not carried through: %+v", out.Result)
	}
	if !strings.Contains(out.Content, "<h1>Life in the tide pools</h1>") {
		t.Errorf("expected article markup, got %q", out.Content)
	}
	if out.ReadTime != "1 min" {
		t.Errorf("ReadTime = %q, want 1 min", out.ReadTime)
	}
}

func TestExtract_OtherEngines(t *testing.T) {
	for _, engine := range []string{EngineReadability, EngineTrafilatura, EngineRegex} {
		t.Run(engine, func(t *testing.T) {
			out, err := Extract(testArticle, engine, FormatText)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if out.Engine != engine {
				t.Errorf("Engine = %q", out.Engine)
			}
			if out.Strategy != "" || out.Result != nil {
				t.Errorf("strategy is only reported for cleanread, got %q", out.Strategy)
			}
			if !strings.Contains(out.Content, "Hermit crabs trade shells") {
				t.Errorf("expected article text, got %q", out.Content)
			}
			if strings.Contains(out.Content, "<p>") {
				t.Errorf("text output contains markup: %q", out.Content)
			}
			if out.WordCount == 0 || out.ReadTime == cleanread.NoReadTime {
				t.Errorf("expected word count and read time, got %d %q", out.WordCount, out.ReadTime)
			}
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	if _, err := Extract(testArticle, "boilerpipe", FormatHTML); err == nil {
		t.Error("expected error for unknown engine")
	}
	if _, err := Extract(testArticle, "", Format("pdf")); err == nil {
		t.Error("expected error for unknown format")
	}
}
