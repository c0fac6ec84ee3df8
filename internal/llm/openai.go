package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
)

const systemPrompt = "You are a precise assistant that follows output format instructions exactly. " +
	"When asked for JSON, return only valid JSON with no explanations or preambles."

// OpenAIGenerator implements Generator on the OpenAI chat completions API.
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	temperature float64
	timeout     time.Duration
}

// OpenAIOption configures an OpenAIGenerator.
type OpenAIOption func(*OpenAIGenerator)

// WithModel overrides the default model.
func WithModel(model string) OpenAIOption {
	return func(g *OpenAIGenerator) {
		g.model = model
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(temperature float64) OpenAIOption {
	return func(g *OpenAIGenerator) {
		g.temperature = temperature
	}
}

// WithTimeout sets the per-call timeout applied at the request boundary.
func WithTimeout(timeout time.Duration) OpenAIOption {
	return func(g *OpenAIGenerator) {
		g.timeout = timeout
	}
}

// WithBaseURL points the client at an alternate endpoint. Used by tests.
func WithBaseURL(baseURL string) OpenAIOption {
	return func(g *OpenAIGenerator) {
		g.client = openai.NewClient(
			option.WithAPIKey("test"),
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(0),
		)
	}
}

// NewOpenAIGenerator creates a generator backed by the OpenAI API.
func NewOpenAIGenerator(apiKey string, opts ...OpenAIOption) *OpenAIGenerator {
	// Retry policy lives in the pipeline's executor, not the SDK.
	g := &OpenAIGenerator{
		client:      openai.NewClient(option.WithAPIKey(apiKey), option.WithMaxRetries(0)),
		model:       "gpt-4o",
		temperature: 0.7,
		timeout:     30 * time.Second,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate sends the prompt as a single user message and returns the
// assistant text. Each call is independently capped by the configured
// timeout.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Debug().
		Str("model", g.model).
		Int("prompt_chars", len(prompt)).
		Msg("Making chat completion request")

	resp, err := g.client.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(g.temperature),
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("chat completion timeout after %s: %w", g.timeout, err)
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	text := resp.Choices[0].Message.Content

	log.Debug().
		Int("response_chars", len(text)).
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Msg("Chat completion successful")

	return text, nil
}
