// Package cleanread extracts the main readable content from an article page.
//
// Extraction removes a fixed denylist of distracting elements, picks a
// content container (semantic selectors first, then the ancestor that holds
// the most paragraph text, then the body) and reports word count and
// estimated read time for the result.
package cleanread

// DefaultWordsPerMinute is the reading speed used for read-time estimates.
const DefaultWordsPerMinute = 225

// DefaultDenylist is the set of selectors removed before container search.
// Duplicates are harmless; removal of an already detached node is a no-op.
var DefaultDenylist = []string{
	"header",
	"footer",
	"nav",
	"aside",
	".ads",
	".ad",
	".advertisement",
	".banner",
	".social",
	".share",
	".comments",
	".comment-section",
	".related",
	".recommended",
	".sidebar",
	".widget",
	"iframe",
	".newsletter",
	".subscription",
	".popup",
	".cookie-notice",
	".gdpr",
	".notification",
	"#header",
	"#footer",
	"#nav",
	"#sidebar",
	"#comments",
	".header",
	".footer",
	".navigation",
	".menu",
	".nav-menu",
	".sponsor",
	".sponsored",
	".promo",
	".modal",
	".overlay",
	".sticky",
	".fixed",
	".share-buttons",
	".social-buttons",
	".social-links",
	".related-posts",
	".recommended-posts",
	".popular-posts",
	".newsletter-signup",
	".subscribe",
	".subscription-form",
	".cookie-banner",
	".gdpr-notice",
	".consent-banner",
	".author-bio",
	".author-profile",
	".about-author",
}

// DefaultPrioritySelectors are tried in order; the first selector with any
// match names the container.
var DefaultPrioritySelectors = []string{
	"article",
	".article",
	".post",
	".content",
	"main",
	"#content",
	".main-content",
}

// Config controls an Extractor.
type Config struct {
	// Denylist replaces DefaultDenylist when non-nil.
	Denylist []string `json:"denylist,omitempty" yaml:"denylist,omitempty"`

	// RemoveSelectors are removed in addition to the denylist.
	RemoveSelectors []string `json:"remove_selectors,omitempty" yaml:"remove_selectors,omitempty"`

	// KeepSelectors protect matching elements from any removal.
	KeepSelectors []string `json:"keep_selectors,omitempty" yaml:"keep_selectors,omitempty"`

	// PrioritySelectors replaces DefaultPrioritySelectors when non-nil.
	PrioritySelectors []string `json:"priority_selectors,omitempty" yaml:"priority_selectors,omitempty"`

	// StripScripts removes script, style and noscript elements.
	StripScripts bool `json:"strip_scripts" yaml:"strip_scripts"`

	// WordsPerMinute is the reading speed for ReadTime. Zero means the default.
	WordsPerMinute int `json:"words_per_minute,omitempty" yaml:"words_per_minute,omitempty"`
}

// DefaultConfig returns the configuration used by the reading view.
func DefaultConfig() *Config {
	return &Config{
		StripScripts:   true,
		WordsPerMinute: DefaultWordsPerMinute,
	}
}

func (c *Config) removals() []string {
	deny := c.Denylist
	if deny == nil {
		deny = DefaultDenylist
	}
	out := make([]string, 0, len(deny)+len(c.RemoveSelectors)+3)
	if c.StripScripts {
		out = append(out, "script", "style", "noscript")
	}
	out = append(out, deny...)
	return append(out, c.RemoveSelectors...)
}

func (c *Config) priority() []string {
	if c.PrioritySelectors != nil {
		return c.PrioritySelectors
	}
	return DefaultPrioritySelectors
}

func (c *Config) wordsPerMinute() int {
	if c.WordsPerMinute <= 0 {
		return DefaultWordsPerMinute
	}
	return c.WordsPerMinute
}
