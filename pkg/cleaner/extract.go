package cleaner

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/cleanread/pkg/cleaner/cleanread"
)

// Extraction is the output of Extract.
type Extraction struct {
	Content   string
	WordCount int
	ReadTime  string
	Engine    string

	// Strategy and Result are set only for the cleanread engine.
	Strategy cleanread.Strategy
	Result   *cleanread.Result
}

// Extract runs the named engine over raw and renders the result in format.
// Word count and read time are computed from the cleaned text for every
// engine.
func Extract(raw, engine string, format Format) (*Extraction, error) {
	name := strings.ToLower(strings.TrimSpace(engine))
	if name == "" {
		name = EngineCleanread
	}

	out := &Extraction{Engine: name}
	var fragment string

	if name == EngineCleanread {
		res := cleanread.New(nil).Extract(raw)
		fragment = res.HTML
		out.Result = res
		out.Strategy = res.Strategy
		out.WordCount = res.WordCount
		out.ReadTime = res.ReadTimeLabel()
	} else {
		c, err := New(name)
		if err != nil {
			return nil, err
		}
		fragment, err = c.Clean(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name(), err)
		}
		out.WordCount = cleanread.CountWords(Text(fragment))
		out.ReadTime = cleanread.FormatReadTime(cleanread.ReadTimeMinutes(out.WordCount, cleanread.DefaultWordsPerMinute))
	}

	content, err := Convert(fragment, format)
	if err != nil {
		return nil, err
	}
	out.Content = content
	return out, nil
}
