package tts

import (
	"context"
	"fmt"

	"github.com/briefcast/briefcast/internal/config"
)

// providerNames lists every provider the factory can build, in display
// order.
var providerNames = []string{"openai", "elevenlabs", "polly", "gcp"}

// NewProvider creates the TTS provider named in the configuration.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.TTSProvider {
	case "openai", "":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai TTS provider")
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey), nil
	case "elevenlabs":
		if cfg.ElevenLabsAPIKey == "" {
			return nil, fmt.Errorf("ELEVENLABS_API_KEY is required for the elevenlabs TTS provider")
		}
		return NewElevenLabsProvider(cfg.ElevenLabsAPIKey), nil
	case "polly":
		return NewPollyProvider(cfg.AWSRegion)
	case "gcp":
		var opts []GCPProviderOption
		if cfg.TTSVoice != "" {
			opts = append(opts, WithGCPVoice(cfg.TTSVoice))
		}
		return NewGCPProvider(ctx, opts...)
	default:
		return nil, fmt.Errorf("unknown TTS provider: %s", cfg.TTSProvider)
	}
}

// AvailableProviders probes the named providers and returns the ones
// that are ready to use. With no names it probes all of them.
func AvailableProviders(ctx context.Context, cfg *config.Config, names ...string) []string {
	if len(names) == 0 {
		names = providerNames
	}

	var available []string
	for _, name := range names {
		probe := *cfg
		probe.TTSProvider = name
		provider, err := NewProvider(ctx, &probe)
		if err != nil {
			continue
		}
		if provider.IsAvailable(ctx) {
			available = append(available, name)
		}
	}
	return available
}
