package cleaner

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// TrafilaturaConfig configures the Trafilatura engine.
type TrafilaturaConfig struct {
	// Output is FormatHTML (default) or FormatText.
	Output Format
	// IncludeComments keeps reader comments (excluded by default).
	IncludeComments bool
	// ExcludeTables drops tables.
	ExcludeTables bool
	// ExcludeImages drops images.
	ExcludeImages bool
	// NoFallback disables the readability/dom-distiller fallback.
	NoFallback bool
}

// TrafilaturaCleaner extracts articles with go-trafilatura.
type TrafilaturaCleaner struct {
	opts   trafilatura.Options
	output Format
}

// NewTrafilatura creates the engine; nil means defaults.
func NewTrafilatura(cfg *TrafilaturaConfig) *TrafilaturaCleaner {
	if cfg == nil {
		cfg = &TrafilaturaConfig{}
	}
	return &TrafilaturaCleaner{
		opts: trafilatura.Options{
			ExcludeComments: !cfg.IncludeComments,
			ExcludeTables:   cfg.ExcludeTables,
			IncludeLinks:    true,
			IncludeImages:   !cfg.ExcludeImages,
			EnableFallback:  !cfg.NoFallback,
		},
		output: cfg.Output,
	}
}

// Clean returns the extracted content, or the input when nothing was found.
func (c *TrafilaturaCleaner) Clean(htmlContent string) (string, error) {
	result, err := trafilatura.Extract(strings.NewReader(htmlContent), c.opts)
	if err != nil {
		return "", err
	}
	if result == nil {
		return htmlContent, nil
	}

	if c.output == FormatText || result.ContentNode == nil {
		if result.ContentText == "" {
			return htmlContent, nil
		}
		return result.ContentText, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return result.ContentText, nil
	}
	return gohtml.Format(buf.String()), nil
}

// Name returns the engine name.
func (c *TrafilaturaCleaner) Name() string {
	return EngineTrafilatura
}
