// Package tts wraps the speech-synthesis capability behind a provider
// interface with interchangeable cloud backends.
package tts

import (
	"context"
	"io"
)

// Provider defines the interface for TTS providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// ListVoices returns available voices for this provider
	ListVoices(ctx context.Context) ([]Voice, error)

	// Synthesize generates audio from text and returns an audio stream
	Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error)

	// IsAvailable checks if the provider is available (can be used)
	IsAvailable(ctx context.Context) bool
}

// Voice represents a voice option.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Language    string `json:"language"`
	Gender      string `json:"gender,omitempty"`
	Description string `json:"description,omitempty"`
}

// SynthesizeOptions contains options for text synthesis. Briefings are
// synthesized as MP3 by default since the result is delivered as a
// data:audio/mpeg URI.
type SynthesizeOptions struct {
	Voice      string  `json:"voice"`
	Speed      float64 `json:"speed,omitempty"`       // Speed multiplier (0.25-4.0)
	Format     string  `json:"format,omitempty"`      // Output format (mp3, wav, etc.)
	Language   string  `json:"language,omitempty"`    // Language code
	Model      string  `json:"model,omitempty"`       // Model to use (tts-1, tts-1-hd)
	Engine     string  `json:"engine,omitempty"`      // Engine variant (Polly: standard, neural, ...)
	SampleRate string  `json:"sample_rate,omitempty"` // Sample rate in Hz
}

// clampSpeed bounds a speed multiplier to the range OpenAI and GCP
// accept (0.25 to 4.0). Zero or negative means "unset" and resolves to
// normal speed.
func clampSpeed(speed float64) float64 {
	switch {
	case speed <= 0:
		return 1.0
	case speed < 0.25:
		return 0.25
	case speed > 4.0:
		return 4.0
	default:
		return speed
	}
}
