package pipeline

import (
	"time"

	"github.com/rs/zerolog"
)

// Observer receives diagnostic events from a pipeline run. The
// orchestrator never logs on its own; all diagnostics flow through
// this interface.
type Observer interface {
	StageStarted(stage Stage)
	StageCompleted(stage Stage, elapsed time.Duration)
	RetryScheduled(op string, attempt int, delay time.Duration, err error)
	StageDegraded(stage Stage, err error)
	ScriptRegenerated(prevWords, newWords int)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) StageStarted(Stage)                               {}
func (NopObserver) StageCompleted(Stage, time.Duration)              {}
func (NopObserver) RetryScheduled(string, int, time.Duration, error) {}
func (NopObserver) StageDegraded(Stage, error)                       {}
func (NopObserver) ScriptRegenerated(int, int)                       {}

// LogObserver emits pipeline events as structured log entries.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates an observer that logs to the given logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) StageStarted(stage Stage) {
	o.logger.Info().Str("stage", string(stage)).Msg("Pipeline stage started")
}

func (o *LogObserver) StageCompleted(stage Stage, elapsed time.Duration) {
	o.logger.Info().
		Str("stage", string(stage)).
		Dur("elapsed", elapsed).
		Msg("Pipeline stage completed")
}

func (o *LogObserver) RetryScheduled(op string, attempt int, delay time.Duration, err error) {
	o.logger.Warn().
		Str("op", op).
		Int("attempt", attempt).
		Dur("delay", delay).
		Err(err).
		Msg("Transient failure, retry scheduled")
}

func (o *LogObserver) StageDegraded(stage Stage, err error) {
	o.logger.Warn().
		Str("stage", string(stage)).
		Err(err).
		Msg("Non-critical stage failed, continuing with degraded result")
}

func (o *LogObserver) ScriptRegenerated(prevWords, newWords int) {
	o.logger.Info().
		Int("prev_words", prevWords).
		Int("new_words", newWords).
		Msg("Script regenerated to meet word range")
}
