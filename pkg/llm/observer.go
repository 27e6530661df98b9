package llm

import (
	"context"
	"log/slog"
	"time"
)

// Observer is notified after every provider call, successful or not.
type Observer interface {
	OnCall(ctx context.Context, event CallEvent)
}

// CallEvent describes one provider call.
type CallEvent struct {
	Provider  string
	Model     string
	StartedAt time.Time
	Duration  time.Duration

	// PromptBytes is the total size of the request messages.
	PromptBytes int
	MaxTokens   int

	// Response is nil when the call failed.
	Response *Response
	Err      error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, event CallEvent)

// OnCall calls f.
func (f ObserverFunc) OnCall(ctx context.Context, event CallEvent) {
	f(ctx, event)
}

// ObservedProvider reports every Execute call to an Observer.
type ObservedProvider struct {
	Provider
	observer Observer
}

// Observe wraps p so each call is reported to obs. A nil obs returns p.
func Observe(p Provider, obs Observer) Provider {
	if obs == nil {
		return p
	}
	return &ObservedProvider{Provider: p, observer: obs}
}

// Execute forwards to the wrapped provider and reports the outcome.
func (o *ObservedProvider) Execute(ctx context.Context, req Request) (*Response, error) {
	event := CallEvent{
		Provider:  o.Name(),
		Model:     o.Model(),
		StartedAt: time.Now(),
		MaxTokens: req.MaxTokens,
	}
	for _, m := range req.Messages {
		event.PromptBytes += len(m.Content)
	}

	resp, err := o.Provider.Execute(ctx, req)
	event.Duration = time.Since(event.StartedAt)
	event.Response = resp
	event.Err = err
	o.observer.OnCall(ctx, event)
	return resp, err
}

// NewLogObserver logs each call at debug level, or warn level on failure.
func NewLogObserver(l *slog.Logger) Observer {
	return ObserverFunc(func(ctx context.Context, e CallEvent) {
		attrs := []any{
			"provider", e.Provider,
			"model", e.Model,
			"prompt_bytes", e.PromptBytes,
			"duration", e.Duration.Round(time.Millisecond),
		}
		if e.Err != nil {
			l.WarnContext(ctx, "llm call failed", append(attrs, "error", e.Err)...)
			return
		}
		l.DebugContext(ctx, "llm call",
			append(attrs,
				"input_tokens", e.Response.Usage.InputTokens,
				"output_tokens", e.Response.Usage.OutputTokens,
				"finish_reason", e.Response.FinishReason,
			)...)
	})
}
