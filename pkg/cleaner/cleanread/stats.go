package cleanread

import (
	"fmt"
	"strings"
	"time"
)

// Strategy names how the content container was chosen.
type Strategy string

const (
	StrategySemantic Strategy = "semantic"
	StrategyDensity  Strategy = "density"
	StrategyBody     Strategy = "body"
)

// Stats captures what an extraction did.
type Stats struct {
	InputBytes  int `json:"input_bytes"`
	OutputBytes int `json:"output_bytes"`

	ElementsRemoved map[string]int `json:"elements_removed"` // tag -> count
	SelectorMatches map[string]int `json:"selector_matches"` // selector -> count
	ElementsKept    int            `json:"elements_kept"`    // protected by KeepSelectors

	ParagraphsScored int `json:"paragraphs_scored"`

	ParseDuration time.Duration `json:"parse_duration_ns"`
	TotalDuration time.Duration `json:"total_duration_ns"`
}

// NewStats returns Stats with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
		SelectorMatches: make(map[string]int),
	}
}

// RecordRemoval counts a removed element by tag.
func (s *Stats) RecordRemoval(tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
}

// RecordSelectorMatch counts matches for a removal selector.
func (s *Stats) RecordSelectorMatch(selector string, count int) {
	s.SelectorMatches[selector] += count
}

// TotalElementsRemoved sums ElementsRemoved.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, n := range s.ElementsRemoved {
		total += n
	}
	return total
}

// ReductionPercent is the size reduction from input to output.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

func (s *Stats) String() string {
	return fmt.Sprintf("size %d -> %d bytes (%.1f%%), %d elements removed, %d kept, %d paragraphs scored, took %v",
		s.InputBytes, s.OutputBytes, s.ReductionPercent(),
		s.TotalElementsRemoved(), s.ElementsKept, s.ParagraphsScored,
		s.TotalDuration.Round(time.Microsecond))
}

// Warning is a non-fatal issue met during extraction.
type Warning struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result is the outcome of one extraction. A later extraction of the same
// snapshot supersedes it; results are never merged.
type Result struct {
	// HTML is the inner markup of the chosen container.
	HTML string `json:"html"`

	// Text is the container's text content.
	Text string `json:"-"`

	WordCount int `json:"word_count"`

	// ReadTime is the estimate in whole minutes.
	ReadTime int `json:"read_time"`

	Strategy Strategy `json:"strategy"`

	// Container is the signature of the chosen node, e.g. "div#main.post.wide".
	Container string `json:"container"`

	Stats    *Stats    `json:"stats"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// ReadTimeLabel formats ReadTime for display.
func (r *Result) ReadTimeLabel() string {
	if r == nil {
		return NoReadTime
	}
	return FormatReadTime(r.ReadTime)
}

// AddWarning records a warning.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{Phase: phase, Message: message, Context: context})
}

// HasWarnings reports whether any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
