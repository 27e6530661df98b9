// Package session hosts the reading view of one page: the raw snapshot, the
// cleaned fragment, the most recent summary and the side panel rendered
// around them. A Controller owns that state and applies commands to it.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmylchreest/cleanread/pkg/summary"
)

// View is the active presentation of the page.
type View string

const (
	ViewRaw     View = "raw"
	ViewClean   View = "clean"
	ViewSummary View = "summary"
)

// ParseView validates s.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewRaw, ViewClean, ViewSummary:
		return v, nil
	default:
		return "", fmt.Errorf("invalid view mode %q: must be one of raw, clean, summary", s)
	}
}

// Theme is the panel colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates s.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("invalid theme %q: must be light or dark", s)
	}
}

// Text size bounds, in percent.
const (
	MinTextSize     = 50
	MaxTextSize     = 200
	DefaultTextSize = 100
)

// Snapshot is the page markup captured when the session starts. It is never
// modified; every extraction runs against it.
type Snapshot string

// Summary is the most recent successful summary.
type Summary struct {
	Mode    summary.Mode
	Content string // rendered HTML
}

// Summarizer produces summary text for content. *summary.Pipeline and
// *relay.Client both satisfy it.
type Summarizer interface {
	Summarize(ctx context.Context, content string, mode summary.Mode) (string, error)
}

// State is what a host shows: the main body, and the panel when the view is
// not raw.
type State struct {
	View     View
	Body     string
	Panel    string
	ReadTime string
	Summary  *Summary
	Pending  bool
	Theme    Theme
	TextSize int
}

// PanelVisible reports whether the side panel is shown.
func (s State) PanelVisible() bool {
	return s.View != ViewRaw
}
