package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownAction is returned when an envelope names an action the session
// does not handle.
var ErrUnknownAction = errors.New("unknown action")

// Action names carried in the "action" field of an envelope.
const (
	ActionCleanPage   = "cleanPage"
	ActionSummarize   = "summarize"
	ActionSetViewMode = "setViewMode"
	ActionSetTextSize = "setTextSize"
	ActionSetTheme    = "setTheme"
	ActionGetReadTime = "getReadTime"
)

// Command is one of CleanPage, Summarize, SetViewMode, SetTextSize, SetTheme
// or GetReadTime.
type Command interface {
	Action() string
	command()
}

// CleanPage extracts the main content and switches to the clean view.
type CleanPage struct{}

// Summarize requests a fresh summary in Mode.
type Summarize struct {
	Mode string
}

// SetViewMode switches to raw, clean or summary.
type SetViewMode struct {
	Mode View
}

// SetTextSize changes the panel text size, in percent.
type SetTextSize struct {
	Size int
}

// SetTheme changes the panel theme.
type SetTheme struct {
	Theme Theme
}

// GetReadTime reports the read time of the current extraction.
type GetReadTime struct{}

func (CleanPage) Action() string   { return ActionCleanPage }
func (Summarize) Action() string   { return ActionSummarize }
func (SetViewMode) Action() string { return ActionSetViewMode }
func (SetTextSize) Action() string { return ActionSetTextSize }
func (SetTheme) Action() string    { return ActionSetTheme }
func (GetReadTime) Action() string { return ActionGetReadTime }

func (CleanPage) command()   {}
func (Summarize) command()   {}
func (SetViewMode) command() {}
func (SetTextSize) command() {}
func (SetTheme) command()    {}
func (GetReadTime) command() {}

// envelope is the wire form of a command.
type envelope struct {
	Action string          `json:"action"`
	Mode   string          `json:"mode,omitempty"`
	Size   json.RawMessage `json:"size,omitempty"`
	Theme  string          `json:"theme,omitempty"`
}

// DecodeCommand parses a JSON envelope such as {"action":"summarize","mode":"bullets"}.
func DecodeCommand(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Action {
	case ActionCleanPage:
		return CleanPage{}, nil
	case ActionSummarize:
		return Summarize{Mode: env.Mode}, nil
	case ActionSetViewMode:
		v, err := ParseView(env.Mode)
		if err != nil {
			return nil, err
		}
		return SetViewMode{Mode: v}, nil
	case ActionSetTextSize:
		size, err := parseSize(env.Size)
		if err != nil {
			return nil, err
		}
		return SetTextSize{Size: size}, nil
	case ActionSetTheme:
		th, err := ParseTheme(env.Theme)
		if err != nil {
			return nil, err
		}
		return SetTheme{Theme: th}, nil
	case ActionGetReadTime:
		return GetReadTime{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, env.Action)
	}
}

// ParseWords builds a command from "action [arg]", the form typed at a
// terminal: "summarize bullets", "setTextSize 120", "cleanPage".
func ParseWords(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrUnknownAction)
	}
	env := envelope{Action: fields[0]}
	if len(fields) > 1 {
		arg := fields[1]
		switch env.Action {
		case ActionSetTextSize:
			env.Size = json.RawMessage(strconv.Quote(arg))
		case ActionSetTheme:
			env.Theme = arg
		default:
			env.Mode = arg
		}
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	return DecodeCommand(data)
}

// parseSize accepts 120, "120" or "120%".
func parseSize(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, errors.New("setTextSize: size is required")
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("setTextSize: invalid size %s", raw)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0, fmt.Errorf("setTextSize: invalid size %q", s)
	}
	return n, nil
}

// Reply is the response to a dispatched command.
type Reply struct {
	Success  bool   `json:"success"`
	ReadTime string `json:"readTime,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ErrorReply wraps err as an unsuccessful reply.
func ErrorReply(err error) Reply {
	return Reply{Error: err.Error()}
}
