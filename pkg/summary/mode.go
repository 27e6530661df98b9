package summary

import (
	"fmt"
	"strings"
)

// Mode selects the summary style.
type Mode string

const (
	ModeTLDR    Mode = "tldr"
	ModeBullets Mode = "bullets"
	ModeKey     Mode = "key"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeTLDR, ModeBullets, ModeKey}

// ParseMode validates s. An empty string selects tldr.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeTLDR, nil
	case ModeTLDR, ModeBullets, ModeKey:
		return m, nil
	default:
		return "", fmt.Errorf("%w %q: must be one of tldr, bullets, key", ErrInvalidMode, s)
	}
}

// IsList reports whether the mode renders as a list.
func (m Mode) IsList() bool {
	return m == ModeBullets || m == ModeKey
}

// Prompt returns the instruction for m followed by a blank line and text.
func (m Mode) Prompt(text string) string {
	var instruction string
	switch m {
	case ModeBullets:
		instruction = "Summarize the following text in 5-7 bullet points:"
	case ModeKey:
		instruction = "Extract 3-5 key takeaways from the following text:"
	default:
		instruction = "Provide a concise TL;DR summary (1-2 sentences) of the following text:"
	}
	return instruction + "\n\n" + text
}
