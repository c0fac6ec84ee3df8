package main

import (
	"context"

	"github.com/briefcast/briefcast/internal/config"
	"github.com/briefcast/briefcast/internal/llm"
	"github.com/briefcast/briefcast/internal/retry"
	"github.com/briefcast/briefcast/internal/tts"
)

func llmGeneratorFromConfig(cfg *config.Config) llm.Generator {
	return llm.NewOpenAIGenerator(cfg.OpenAIAPIKey,
		llm.WithModel(cfg.Model),
		llm.WithTemperature(cfg.Temperature),
		llm.WithTimeout(cfg.RequestTimeout),
	)
}

func ttsProviderFromConfig(ctx context.Context, cfg *config.Config) (tts.Provider, error) {
	return tts.NewProvider(ctx, cfg)
}

func retryConfigFromConfig(cfg *config.Config) retry.Config {
	return retry.Config{
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  retry.DefaultConfig.BaseDelay,
	}
}
