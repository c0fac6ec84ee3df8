package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/briefcast/briefcast/internal/llm"
	"github.com/briefcast/briefcast/internal/persona"
	"github.com/briefcast/briefcast/internal/retry"
	"github.com/briefcast/briefcast/internal/script"
	"github.com/briefcast/briefcast/internal/tts"
)

// Stage identifies one sequential unit of pipeline work.
type Stage string

const (
	StageAnalyzing    Stage = "analyzing"
	StagePersona      Stage = "persona_generating"
	StageScript       Stage = "script_generating"
	StageSynthesizing Stage = "synthesizing"
)

// audioWPM is the assumed speaking rate used to estimate briefing
// duration from word count.
const audioWPM = 150

// Result is what a completed pipeline run hands back to the caller. An
// empty AudioDataURI means synthesis failed and the run was degraded;
// the persona and script are still valid.
type Result struct {
	Persona          *persona.PersonaRecord `json:"persona"`
	Script           string                 `json:"script"`
	AudioDataURI     string                 `json:"audioDataUri"`
	AudioDurationSec int                    `json:"audioDurationSec"`
	ElapsedMS        int64                  `json:"elapsedMs"`
}

// Orchestrator runs the four-stage briefing pipeline: analyze the
// writing sample, generate a persona, generate a script, synthesize
// audio. The first three stages are fatal on failure; the audio stage
// degrades to an empty result field.
type Orchestrator struct {
	gen   llm.Generator
	synth tts.Provider
	exec  *retry.Executor
	obs   Observer
	voice string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver sets the diagnostic event sink.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		o.obs = obs
	}
}

// WithVoice sets the synthesis voice.
func WithVoice(voice string) Option {
	return func(o *Orchestrator) {
		o.voice = voice
	}
}

// WithRetryConfig overrides the retry budget and backoff base.
func WithRetryConfig(cfg retry.Config) Option {
	return func(o *Orchestrator) {
		o.exec = retry.NewExecutor(cfg)
	}
}

// New creates a pipeline orchestrator.
func New(gen llm.Generator, synth tts.Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:   gen,
		synth: synth,
		exec:  retry.NewExecutor(retry.DefaultConfig),
		obs:   NopObserver{},
	}

	for _, opt := range opts {
		opt(o)
	}

	o.exec.OnRetry = o.obs.RetryScheduled
	return o
}

// Run executes the pipeline for one writing sample and design brief.
func (o *Orchestrator) Run(ctx context.Context, articleText, designBrief string) (*Result, error) {
	start := time.Now()

	analysis, err := runStage(ctx, o, StageAnalyzing, func(ctx context.Context) (*persona.AnalysisRecord, error) {
		raw, err := o.gen.Generate(ctx, persona.AnalysisPrompt(articleText))
		if err != nil {
			return nil, err
		}
		return persona.ParseAnalysis(raw)
	})
	if err != nil {
		return nil, o.fail(StageAnalyzing, start, err)
	}

	record, err := runStage(ctx, o, StagePersona, func(ctx context.Context) (*persona.PersonaRecord, error) {
		raw, err := o.gen.Generate(ctx, persona.PersonaPrompt(analysis, designBrief))
		if err != nil {
			return nil, err
		}
		return persona.ParsePersona(raw)
	})
	if err != nil {
		return nil, o.fail(StagePersona, start, err)
	}

	scriptText, err := o.runScriptStage(ctx, record)
	if err != nil {
		return nil, o.fail(StageScript, start, err)
	}

	audioDataURI, durationSec := o.runAudioStage(ctx, scriptText)

	return &Result{
		Persona:          record,
		Script:           scriptText,
		AudioDataURI:     audioDataURI,
		AudioDurationSec: durationSec,
		ElapsedMS:        time.Since(start).Milliseconds(),
	}, nil
}

// runStage wraps one fatal stage in the retry executor and reports its
// lifecycle to the observer.
func runStage[T any](ctx context.Context, o *Orchestrator, stage Stage, fn func(context.Context) (T, error)) (T, error) {
	o.obs.StageStarted(stage)
	stageStart := time.Now()

	result, err := retry.Do(ctx, o.exec, string(stage), fn)
	if err != nil {
		var zero T
		return zero, err
	}

	o.obs.StageCompleted(stage, time.Since(stageStart))
	return result, nil
}

// runScriptStage runs the script generator with each of its upstream
// calls individually retried. The generator's draft/regenerate decision
// logic sits above the retry layer so a transient failure inside one
// call does not consume the single regeneration.
func (o *Orchestrator) runScriptStage(ctx context.Context, record *persona.PersonaRecord) (string, error) {
	o.obs.StageStarted(StageScript)
	stageStart := time.Now()

	retried := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return retry.Do(ctx, o.exec, string(StageScript), func(ctx context.Context) (string, error) {
			return o.gen.Generate(ctx, prompt)
		})
	})

	gen := script.NewGenerator(retried, scriptEvents{o.obs})
	text, err := gen.Generate(ctx, record)
	if err != nil {
		return "", err
	}

	o.obs.StageCompleted(StageScript, time.Since(stageStart))
	return text, nil
}

// runAudioStage synthesizes the script and encodes the audio as a data
// URI. Synthesis failure is non-fatal: the pipeline completes with an
// empty audio reference.
func (o *Orchestrator) runAudioStage(ctx context.Context, scriptText string) (string, int) {
	o.obs.StageStarted(StageSynthesizing)
	stageStart := time.Now()

	audio, err := retry.Do(ctx, o.exec, string(StageSynthesizing), func(ctx context.Context) ([]byte, error) {
		stream, err := o.synth.Synthesize(ctx, scriptText, tts.SynthesizeOptions{
			Voice:  o.voice,
			Format: "mp3",
		})
		if err != nil {
			return nil, err
		}
		defer stream.Close()
		return io.ReadAll(stream)
	})
	if err != nil {
		o.obs.StageDegraded(StageSynthesizing, err)
		return "", 0
	}

	o.obs.StageCompleted(StageSynthesizing, time.Since(stageStart))

	uri := "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString(audio)
	return uri, estimateDurationSec(scriptText)
}

func (o *Orchestrator) fail(stage Stage, start time.Time, err error) error {
	return fmt.Errorf("pipeline failed at stage %s after %dms: %w", stage, time.Since(start).Milliseconds(), err)
}

// estimateDurationSec estimates spoken duration from word count at the
// assumed speaking rate, rounded up to whole seconds.
func estimateDurationSec(text string) int {
	words := script.WordCount(text)
	if words == 0 {
		return 0
	}
	return (words*60 + audioWPM - 1) / audioWPM
}

// scriptEvents adapts the pipeline observer to the script generator's
// event interface.
type scriptEvents struct {
	obs Observer
}

func (e scriptEvents) ScriptRegenerated(prevWords, newWords int) {
	e.obs.ScriptRegenerated(prevWords, newWords)
}
