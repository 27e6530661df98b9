package cleaner

import (
	"bytes"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// ReadabilityConfig configures the Readability engine.
type ReadabilityConfig struct {
	// Output is FormatHTML (default) or FormatText.
	Output Format
	// CharThreshold is the minimum article length in characters (library default 500).
	CharThreshold int
	// BaseURL resolves relative links when set.
	BaseURL string
}

// ReadabilityCleaner extracts articles with the Readability algorithm.
type ReadabilityCleaner struct {
	cfg    ReadabilityConfig
	parser readability.Parser
}

// NewReadability creates the engine; nil means defaults.
func NewReadability(cfg *ReadabilityConfig) *ReadabilityCleaner {
	if cfg == nil {
		cfg = &ReadabilityConfig{}
	}
	parser := readability.NewParser()
	if cfg.CharThreshold > 0 {
		parser.CharThresholds = cfg.CharThreshold
	}
	return &ReadabilityCleaner{cfg: *cfg, parser: parser}
}

// Clean returns the article content. When Readability finds nothing the
// input is returned unchanged.
func (c *ReadabilityCleaner) Clean(htmlContent string) (string, error) {
	var base *url.URL
	if c.cfg.BaseURL != "" {
		base, _ = url.Parse(c.cfg.BaseURL)
	}

	article, err := c.parser.Parse(strings.NewReader(htmlContent), base)
	if err != nil {
		return "", err
	}
	if article.Node == nil {
		return htmlContent, nil
	}

	var buf bytes.Buffer
	if c.cfg.Output == FormatText {
		if err := article.RenderText(&buf); err != nil || buf.Len() == 0 {
			return htmlContent, nil
		}
		return buf.String(), nil
	}

	if err := article.RenderHTML(&buf); err != nil {
		buf.Reset()
		if err := html.Render(&buf, article.Node); err != nil {
			return htmlContent, nil
		}
	}
	if buf.Len() == 0 {
		return htmlContent, nil
	}
	return gohtml.Format(buf.String()), nil
}

// Name returns the engine name.
func (c *ReadabilityCleaner) Name() string {
	return EngineReadability
}
