// Package cleaner provides the content extraction engines behind a common
// interface, plus format conversion of their output.
package cleaner

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/cleanread/pkg/cleaner/cleanread"
)

// Cleaner turns page markup into readable content.
type Cleaner interface {
	// Clean transforms the input markup. Output is HTML unless the engine
	// was configured for text.
	Clean(html string) (string, error)

	// Name returns the engine name for logging.
	Name() string
}

// Engine names accepted by New.
const (
	EngineCleanread   = "cleanread"
	EngineReadability = "readability"
	EngineTrafilatura = "trafilatura"
	EngineRegex       = "regex"
)

// Engines lists the supported engine names.
var Engines = []string{EngineCleanread, EngineReadability, EngineTrafilatura, EngineRegex}

// New returns the engine called name with default settings. An empty name
// selects cleanread.
func New(name string) (Cleaner, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineCleanread:
		return cleanread.New(nil), nil
	case EngineReadability:
		return NewReadability(nil), nil
	case EngineTrafilatura:
		return NewTrafilatura(nil), nil
	case EngineRegex:
		return NewTagStripper(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (supported: %s)", name, strings.Join(Engines, ", "))
	}
}
