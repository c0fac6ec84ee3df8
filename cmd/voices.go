package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/briefcast/briefcast/internal/config"
	"github.com/briefcast/briefcast/internal/tts"
)

func voicesCommand() *cli.Command {
	return &cli.Command{
		Name:   "voices",
		Usage:  "List available voices for the configured TTS provider",
		Action: handleVoices,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "provider",
				Usage: "TTS provider: openai, elevenlabs, polly, gcp (overrides BRIEFCAST_TTS_PROVIDER)",
			},
			&cli.BoolFlag{
				Name:  "available",
				Usage: "Probe all providers and list the ones ready to use",
			},
		},
	}
}

func handleVoices(ctx context.Context, c *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if c.Bool("available") {
		available := tts.AvailableProviders(ctx, cfg)
		if len(available) == 0 {
			color.Yellow("No TTS providers are available with the current configuration")
			return nil
		}
		color.New(color.Bold).Println("Available TTS providers:")
		for _, name := range available {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	if p := c.String("provider"); p != "" {
		cfg.TTSProvider = p
	}

	provider, err := tts.NewProvider(ctx, cfg)
	if err != nil {
		return err
	}

	if !provider.IsAvailable(ctx) {
		return fmt.Errorf("TTS provider %q is not available", provider.Name())
	}

	voices, err := provider.ListVoices(ctx)
	if err != nil {
		return err
	}

	color.New(color.Bold).Printf("Available voices for %s:\n\n", provider.Name())

	id := color.New(color.FgCyan)
	for _, v := range voices {
		id.Printf("  %-24s", v.ID)
		fmt.Printf(" %s", v.Name)
		if v.Language != "" {
			fmt.Printf(" (%s", v.Language)
			if v.Gender != "" {
				fmt.Printf(", %s", v.Gender)
			}
			fmt.Print(")")
		}
		if v.Description != "" {
			fmt.Printf(" - %s", v.Description)
		}
		fmt.Println()
	}

	return nil
}
