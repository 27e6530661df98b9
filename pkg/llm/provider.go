// Package llm binds text-generation backends behind one interface.
//
// A Provider speaks one vendor API. A Generator is the narrow view the
// summary pipeline needs: a prompt plus sampling settings in, text out.
package llm

import (
	"context"
	"errors"
	"time"
)

// Role is a chat message role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    Role
	Content string
}

// Request is a completion request.
type Request struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is the result of one completion.
type Response struct {
	Content      string
	FinishReason string
	Usage        Usage
	Model        string
	Duration     time.Duration
}

// Provider is implemented by every backend.
type Provider interface {
	// Execute sends a completion request and returns the response.
	Execute(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider identifier, e.g. "gemini".
	Name() string

	// Model returns the configured model name.
	Model() string
}

// ProviderConfig holds common provider settings.
type ProviderConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 60 * time.Second

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from provider")

// GenerationConfig holds sampling settings for one generation.
type GenerationConfig struct {
	Temperature     float64
	MaxOutputTokens int
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	return f(ctx, prompt, cfg)
}

// ProviderGenerator sends each prompt as a single user message.
type ProviderGenerator struct {
	provider Provider
}

// NewGenerator wraps p as a Generator.
func NewGenerator(p Provider) *ProviderGenerator {
	return &ProviderGenerator{provider: p}
}

// Provider returns the wrapped provider.
func (g *ProviderGenerator) Provider() Provider {
	return g.provider
}

// Generate implements Generator.
func (g *ProviderGenerator) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	resp, err := g.provider.Execute(ctx, Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   cfg.MaxOutputTokens,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	if resp.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}
