package cleaner

import (
	"regexp"
)

// DefaultStripTags are the block elements removed by the regex engine.
var DefaultStripTags = []string{"script", "style", "footer", "nav", "aside"}

// TagStripper removes whole elements by tag name with regular expressions.
// It does not parse the document, so nested elements of the same tag end
// at the first closing tag. It backs the relay's /clean endpoint.
type TagStripper struct {
	patterns []*regexp.Regexp
}

// NewTagStripper strips the given tags, or DefaultStripTags when none given.
func NewTagStripper(tags ...string) *TagStripper {
	if len(tags) == 0 {
		tags = DefaultStripTags
	}
	patterns := make([]*regexp.Regexp, 0, len(tags))
	for _, tag := range tags {
		tag = regexp.QuoteMeta(tag)
		patterns = append(patterns, regexp.MustCompile(`(?is)<`+tag+`\b.*?</`+tag+`>`))
	}
	return &TagStripper{patterns: patterns}
}

// Clean removes every matched block.
func (c *TagStripper) Clean(html string) (string, error) {
	for _, re := range c.patterns {
		html = re.ReplaceAllString(html, "")
	}
	return html, nil
}

// Name returns the engine name.
func (c *TagStripper) Name() string {
	return EngineRegex
}
