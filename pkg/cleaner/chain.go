package cleaner

import (
	"strings"
)

// ChainCleaner runs cleaners in sequence, feeding each the previous output.
type ChainCleaner struct {
	cleaners []Cleaner
}

// NewChain composes cleaners, e.g. an extractor followed by a converter:
//
//	cleaner.NewChain(cleanread.New(nil), cleaner.NewMarkdown())
func NewChain(cleaners ...Cleaner) *ChainCleaner {
	return &ChainCleaner{cleaners: cleaners}
}

// Clean applies every cleaner in order and stops at the first error.
func (c *ChainCleaner) Clean(content string) (string, error) {
	var err error
	for _, cl := range c.cleaners {
		if content, err = cl.Clean(content); err != nil {
			return "", err
		}
	}
	return content, nil
}

// Name returns chain(a->b).
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, cl := range c.cleaners {
		names[i] = cl.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
