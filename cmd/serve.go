package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/briefcast/briefcast/internal/config"
	"github.com/briefcast/briefcast/internal/pipeline"
	"github.com/briefcast/briefcast/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API server",
		Action: handleServe,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides PORT)",
			},
		},
	}
}

func handleServe(ctx context.Context, c *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	port := cfg.Port
	if p := c.String("port"); p != "" {
		port = p
	}

	orch, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           server.New(orch).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-runCtx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildOrchestrator wires the text generator, TTS provider and retry
// policy from configuration.
func buildOrchestrator(ctx context.Context, cfg *config.Config) (*pipeline.Orchestrator, error) {
	gen := llmGeneratorFromConfig(cfg)

	synth, err := ttsProviderFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS provider: %w", err)
	}

	return pipeline.New(gen, synth,
		pipeline.WithObserver(pipeline.NewLogObserver(log.Logger)),
		pipeline.WithVoice(cfg.TTSVoice),
		pipeline.WithRetryConfig(retryConfigFromConfig(cfg)),
	), nil
}
