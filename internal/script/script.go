// Package script produces the spoken-briefing text and enforces its
// length contract: at most 800 characters, ideally 110-150 words.
package script

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxChars is the hard character ceiling for an accepted script.
	MaxChars = 800

	// sentenceSearchOffset is where the truncation logic starts looking
	// for a sentence boundary to cut at.
	sentenceSearchOffset = 600

	// MinWords and MaxWords bound the acceptable word count.
	MinWords = 110
	MaxWords = 150
)

// Verdict classifies a candidate script against the length contract.
type Verdict int

const (
	// VerdictAccepted means the text satisfies both constraints as-is.
	VerdictAccepted Verdict = iota

	// VerdictTruncated means the text exceeded the character ceiling and
	// was cut down; the character budget takes precedence over the word
	// range, so no regeneration follows.
	VerdictTruncated

	// VerdictNeedsRegeneration means the text fits the character budget
	// but its word count falls outside [MinWords, MaxWords].
	VerdictNeedsRegeneration
)

// Evaluation is the outcome of checking a candidate script.
type Evaluation struct {
	Verdict   Verdict
	Text      string
	WordCount int
}

// Evaluate applies the two-stage decision table: character ceiling
// first, then word range. It is pure so it can be tested independently
// of the network call that feeds it.
func Evaluate(text string) Evaluation {
	words := WordCount(text)

	if utf8.RuneCountInString(text) > MaxChars {
		return Evaluation{Verdict: VerdictTruncated, Text: Truncate(text), WordCount: words}
	}

	if words < MinWords || words > MaxWords {
		return Evaluation{Verdict: VerdictNeedsRegeneration, Text: text, WordCount: words}
	}

	return Evaluation{Verdict: VerdictAccepted, Text: text, WordCount: words}
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Clean normalizes a raw model draft: code fences are stripped, one
// leading/trailing quote character is removed, and internal whitespace
// runs collapse to single spaces.
func Clean(draft string) string {
	s := strings.ReplaceAll(draft, "```", "")
	s = strings.TrimSpace(s)

	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = s[1 : len(s)-1]
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

// Truncate enforces the character ceiling: the text is cut to MaxChars,
// preferring the last sentence-terminating period found after
// sentenceSearchOffset so the cut lands on a boundary when one exists.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxChars {
		return text
	}

	window := runes[:MaxChars]
	for i := len(window) - 1; i >= sentenceSearchOffset; i-- {
		if window[i] == '.' {
			return string(window[:i+1])
		}
	}

	return string(window)
}
