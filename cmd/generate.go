package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/briefcast/briefcast/internal/config"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Run the pipeline once for a writing sample and design brief",
		Action:    handleGenerate,
		ArgsUsage: "<article-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "brief",
				Aliases:  []string{"b"},
				Usage:    "Design brief text",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the briefing audio to this file (MP3)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the full result as JSON",
			},
		},
	}
}

func handleGenerate(ctx context.Context, c *cli.Command) error {
	articlePath := c.Args().Get(0)
	if articlePath == "" {
		return fmt.Errorf("article file is required")
	}

	articleText, err := os.ReadFile(articlePath)
	if err != nil {
		return fmt.Errorf("failed to read article: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := orch.Run(ctx, string(articleText), c.String("brief"))
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	bold := color.New(color.Bold)
	heading := color.New(color.FgCyan, color.Bold)

	heading.Printf("Persona: %s\n", result.Persona.Name)
	fmt.Println(result.Persona.Summary)
	fmt.Println()

	bold.Println("Script:")
	fmt.Println(result.Script)
	fmt.Println()

	if result.AudioDataURI == "" {
		color.Yellow("Audio synthesis unavailable, result degraded to text only")
	} else {
		fmt.Printf("Audio: %ds briefing\n", result.AudioDurationSec)
		if out := c.String("output"); out != "" {
			if err := writeAudioFile(out, result.AudioDataURI); err != nil {
				return err
			}
			color.Green("Audio saved to %s", out)
		}
	}

	fmt.Printf("Completed in %dms\n", result.ElapsedMS)
	return nil
}

// writeAudioFile decodes a data:audio/mpeg;base64 URI to a file.
func writeAudioFile(path, dataURI string) error {
	_, payload, ok := strings.Cut(dataURI, ",")
	if !ok {
		return fmt.Errorf("malformed audio data URI")
	}

	audio, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("failed to decode audio payload: %w", err)
	}

	return os.WriteFile(path, audio, 0644)
}
