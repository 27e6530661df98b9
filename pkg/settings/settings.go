// Package settings holds the persisted reader preferences.
//
// Settings are a flat set of keys with defaults. Stores load them from a
// YAML file, a Redis hash or memory; unknown keys are ignored and missing
// keys take their defaults.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Keys in persisted form.
const (
	KeyTheme       = "theme"
	KeyTextSize    = "textSize"
	KeyAutoClean   = "autoClean"
	KeyViewMode    = "viewMode"
	KeySummaryMode = "summaryMode"
	KeyTTSVoice    = "ttsVoice"
	KeyTTSSpeed    = "ttsSpeed"
)

// Keys lists every setting in display order.
var Keys = []string{KeyTheme, KeyTextSize, KeyAutoClean, KeyViewMode, KeySummaryMode, KeyTTSVoice, KeyTTSSpeed}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid setting")

// ErrUnknownKey is returned by Get and Set for keys outside Keys.
var ErrUnknownKey = errors.New("unknown setting")

// Settings are the reader preferences.
type Settings struct {
	Theme       string  `json:"theme" yaml:"theme" validate:"oneof=light dark"`
	TextSize    int     `json:"textSize" yaml:"textSize" validate:"min=50,max=200"`
	AutoClean   bool    `json:"autoClean" yaml:"autoClean"`
	ViewMode    string  `json:"viewMode" yaml:"viewMode" validate:"oneof=raw clean summary"`
	SummaryMode string  `json:"summaryMode" yaml:"summaryMode" validate:"oneof=tldr bullets key"`
	TTSVoice    string  `json:"ttsVoice" yaml:"ttsVoice"`
	TTSSpeed    float64 `json:"ttsSpeed" yaml:"ttsSpeed" validate:"min=0.5,max=2"`
}

// Defaults returns the first-run settings.
func Defaults() Settings {
	return Settings{
		Theme:       "light",
		TextSize:    100,
		AutoClean:   false,
		ViewMode:    "raw",
		SummaryMode: "tldr",
		TTSVoice:    "",
		TTSSpeed:    1.0,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its allowed values.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s=%v fails %s=%s", jsonKey(fe.StructField()), fe.Value(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func jsonKey(field string) string {
	switch field {
	case "TTSVoice":
		return KeyTTSVoice
	case "TTSSpeed":
		return KeyTTSSpeed
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// Get returns the string form of key.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case KeyTheme:
		return s.Theme, nil
	case KeyTextSize:
		return strconv.Itoa(s.TextSize), nil
	case KeyAutoClean:
		return strconv.FormatBool(s.AutoClean), nil
	case KeyViewMode:
		return s.ViewMode, nil
	case KeySummaryMode:
		return s.SummaryMode, nil
	case KeyTTSVoice:
		return s.TTSVoice, nil
	case KeyTTSSpeed:
		return strconv.FormatFloat(s.TTSSpeed, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Set parses value into key and validates the result. s is unchanged on error.
func (s *Settings) Set(key, value string) error {
	next := *s
	var err error
	switch key {
	case KeyTheme:
		next.Theme = value
	case KeyTextSize:
		next.TextSize, err = strconv.Atoi(strings.TrimSuffix(value, "%"))
	case KeyAutoClean:
		next.AutoClean, err = strconv.ParseBool(value)
	case KeyViewMode:
		next.ViewMode = value
	case KeySummaryMode:
		next.SummaryMode = value
	case KeyTTSVoice:
		next.TTSVoice = value
	case KeyTTSSpeed:
		next.TTSSpeed, err = strconv.ParseFloat(value, 64)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, value, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// Map returns every key in string form.
func (s Settings) Map() map[string]string {
	m := make(map[string]string, len(Keys))
	for _, k := range Keys {
		m[k], _ = s.Get(k)
	}
	return m
}

// FromMap starts from Defaults and applies known keys from m. Unknown keys
// are ignored.
func FromMap(m map[string]string) (Settings, error) {
	s := Defaults()
	for _, k := range Keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		if err := s.Set(k, v); err != nil {
			return Defaults(), err
		}
	}
	return s, nil
}
