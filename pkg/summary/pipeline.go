// Package summary turns article content into a short generated summary.
//
// The pipeline normalizes the content to plain text, splits it into
// sentence-aligned chunks, prompts a generator with the first chunk and
// post-processes list modes into HTML lists. Only the first chunk is sent;
// longer articles are summarized from their opening.
package summary

import (
	"context"
	"errors"

	"github.com/jmylchreest/cleanread/pkg/llm"
)

var (
	// ErrFailed is the only error callers see for upstream failures. The
	// cause is wrapped for logging.
	ErrFailed = errors.New("failed to generate summary")

	// ErrEmptyContent means nothing was left after normalization.
	ErrEmptyContent = errors.New("content is empty")

	// ErrInvalidMode is returned by ParseMode.
	ErrInvalidMode = errors.New("invalid mode")
)

// DefaultGenerationConfig matches the relay's sampling settings.
var DefaultGenerationConfig = llm.GenerationConfig{
	Temperature:     0.2,
	MaxOutputTokens: 800,
}

// failure wraps a cause behind ErrFailed.
type failure struct {
	cause error
}

func (f *failure) Error() string        { return ErrFailed.Error() + ": " + f.cause.Error() }
func (f *failure) Is(target error) bool { return target == ErrFailed }
func (f *failure) Unwrap() error        { return f.cause }

// Pipeline produces summaries with a Generator.
type Pipeline struct {
	generator llm.Generator
	chunkSize int
	config    llm.GenerationConfig
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithChunkSize overrides DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithGenerationConfig overrides DefaultGenerationConfig.
func WithGenerationConfig(cfg llm.GenerationConfig) Option {
	return func(p *Pipeline) {
		p.config = cfg
	}
}

// New creates a Pipeline.
func New(g llm.Generator, opts ...Option) *Pipeline {
	p := &Pipeline{
		generator: g,
		chunkSize: DefaultChunkSize,
		config:    DefaultGenerationConfig,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prompt builds the prompt that Summarize would send for content.
func (p *Pipeline) Prompt(content string, mode Mode) (string, error) {
	text := Normalize(content)
	if text == "" {
		return "", ErrEmptyContent
	}
	chunks := Chunks(text, p.chunkSize)
	return mode.Prompt(chunks[0]), nil
}

// Summarize generates a summary of content. The returned text is raw for
// tldr and an HTML list for bullets and key. Errors other than
// ErrEmptyContent satisfy errors.Is(err, ErrFailed).
func (p *Pipeline) Summarize(ctx context.Context, content string, mode Mode) (string, error) {
	prompt, err := p.Prompt(content, mode)
	if err != nil {
		return "", err
	}

	out, err := p.generator.Generate(ctx, prompt, p.config)
	if err != nil {
		return "", &failure{cause: err}
	}

	if mode.IsList() {
		return FormatList(out), nil
	}
	return out, nil
}
