package script

import (
	"fmt"
	"strings"

	"github.com/briefcast/briefcast/internal/persona"
)

// Prompt builds the draft request. The instruction asks for slightly
// under the accepted ranges (110-130 words, 700 chars) to leave headroom
// for models that run long.
func Prompt(p *persona.PersonaRecord) string {
	return fmt.Sprintf(`Write a spoken briefing that introduces the design persona "%s" to a product team.

Persona summary: %s
Tone: %s
Design guidance: do %s; avoid %s

Rules:
- between 110 and 130 words
- at most 700 characters
- conversational, written to be read aloud
- no headings, no lists, no markdown, plain sentences only`,
		p.Name,
		p.Summary,
		p.CommunicationStyle.Tone,
		strings.Join(p.DesignGuidance.Do, ", "),
		strings.Join(p.DesignGuidance.Avoid, ", "))
}

// RegeneratePrompt builds the single retry request, feeding back the
// previous word count so the model can self-correct.
func RegeneratePrompt(p *persona.PersonaRecord, prevWords int) string {
	direction := "longer"
	if prevWords > MaxWords {
		direction = "shorter"
	}

	return fmt.Sprintf(`Your previous briefing was %d words, which is out of range. Write a %s version of between 110 and 130 words (at most 700 characters), keeping the same content and tone.

%s`, prevWords, direction, Prompt(p))
}
