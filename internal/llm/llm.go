// Package llm wraps the text-generation capability behind a narrow
// interface so the pipeline can be exercised against fakes in tests.
package llm

import "context"

// Generator produces free text from a prompt. Implementations surface
// upstream failures as errors whose message identifies the condition
// (timeout, rate limit, authentication, ...) so callers can classify them.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
