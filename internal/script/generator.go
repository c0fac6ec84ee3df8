package script

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/briefcast/briefcast/internal/llm"
	"github.com/briefcast/briefcast/internal/persona"
)

// Events receives notifications about script-generation decisions.
type Events interface {
	ScriptRegenerated(prevWords, newWords int)
}

type nopEvents struct{}

func (nopEvents) ScriptRegenerated(prevWords, newWords int) {}

// Generator produces a length-constrained spoken-briefing script for a
// persona: one draft, at most one regeneration, and a deterministic
// truncation fallback. This bounds the stage to two upstream calls.
type Generator struct {
	gen    llm.Generator
	events Events
}

// NewGenerator creates a script generator. A nil events sink is allowed.
func NewGenerator(gen llm.Generator, events Events) *Generator {
	if events == nil {
		events = nopEvents{}
	}
	return &Generator{gen: gen, events: events}
}

// Generate requests a draft and applies the length decision table:
//   - over the character ceiling: truncate and return, no regeneration
//   - word count out of range: regenerate once with the previous count
//     as feedback; accept the retry only if it lands strictly in range,
//     otherwise return the original draft
func (g *Generator) Generate(ctx context.Context, p *persona.PersonaRecord) (string, error) {
	raw, err := g.gen.Generate(ctx, Prompt(p))
	if err != nil {
		return "", err
	}

	draft := Clean(raw)
	eval := Evaluate(draft)

	switch eval.Verdict {
	case VerdictAccepted:
		return draft, nil

	case VerdictTruncated:
		log.Info().
			Int("words", eval.WordCount).
			Int("chars", len(draft)).
			Msg("Script draft over character ceiling, truncated")
		return eval.Text, nil
	}

	log.Info().
		Int("words", eval.WordCount).
		Msg("Script draft word count out of range, regenerating once")

	retryRaw, err := g.gen.Generate(ctx, RegeneratePrompt(p, eval.WordCount))
	if err != nil {
		// Regeneration is best-effort: the original draft is still a
		// bounded, usable script.
		log.Warn().Err(err).Msg("Script regeneration failed, keeping original draft")
		return draft, nil
	}

	retry := Clean(retryRaw)
	retryEval := Evaluate(retry)
	g.events.ScriptRegenerated(eval.WordCount, retryEval.WordCount)

	switch retryEval.Verdict {
	case VerdictTruncated:
		// The ceiling still wins over the word range.
		return retryEval.Text, nil
	case VerdictAccepted:
		return retry, nil
	default:
		// Retry is also out of range: prefer the original draft.
		return draft, nil
	}
}
