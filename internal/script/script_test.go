package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips code fences", "```\nhello world\n```", "hello world"},
		{"strips json fence marker", "```hello```", "hello"},
		{"strips wrapping double quotes", `"hello world"`, "hello world"},
		{"strips wrapping single quotes", `'hello world'`, "hello world"},
		{"keeps unmatched quote", `"hello world`, `"hello world`},
		{"collapses whitespace runs", "hello   world\n\nagain", "hello world again"},
		{"trims surrounding space", "  hello  ", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestTruncate_SentenceBoundaryAfterOffset(t *testing.T) {
	// 900 chars with the only period at index 650: the cut lands on it.
	text := strings.Repeat("a", 650) + "." + strings.Repeat("b", 249)

	out := Truncate(text)
	assert.Len(t, out, 651)
	assert.Equal(t, byte('.'), out[len(out)-1])
}

func TestTruncate_NoBoundaryAfterOffset(t *testing.T) {
	// No period anywhere after 600: hard cut at exactly 800.
	text := strings.Repeat("a", 900)

	out := Truncate(text)
	assert.Len(t, out, 800)
}

func TestTruncate_BoundaryOnlyBeforeOffset(t *testing.T) {
	// A period at 300 is too early to count as a cut point.
	text := strings.Repeat("a", 300) + "." + strings.Repeat("b", 599)

	out := Truncate(text)
	assert.Len(t, out, 800)
}

func TestTruncate_PicksLastBoundaryInWindow(t *testing.T) {
	text := strings.Repeat("a", 620) + "." + strings.Repeat("b", 99) + "." + strings.Repeat("c", 200)

	out := Truncate(text)
	// Periods at 620 and 720; the later one wins.
	assert.Len(t, out, 721)
	assert.Equal(t, byte('.'), out[len(out)-1])
}

func TestTruncate_ShortTextUntouched(t *testing.T) {
	text := words(50)
	assert.Equal(t, text, Truncate(text))
}

func TestEvaluate(t *testing.T) {
	t.Run("in-range text accepted", func(t *testing.T) {
		text := words(120)
		eval := Evaluate(text)
		assert.Equal(t, VerdictAccepted, eval.Verdict)
		assert.Equal(t, text, eval.Text)
		assert.Equal(t, 120, eval.WordCount)
	})

	t.Run("boundary word counts accepted", func(t *testing.T) {
		assert.Equal(t, VerdictAccepted, Evaluate(words(110)).Verdict)
		assert.Equal(t, VerdictAccepted, Evaluate(words(150)).Verdict)
	})

	t.Run("too few words needs regeneration", func(t *testing.T) {
		eval := Evaluate(words(90))
		assert.Equal(t, VerdictNeedsRegeneration, eval.Verdict)
		assert.Equal(t, 90, eval.WordCount)
	})

	t.Run("too many words needs regeneration", func(t *testing.T) {
		assert.Equal(t, VerdictNeedsRegeneration, Evaluate(words(151)).Verdict)
	})

	t.Run("character ceiling wins over word range", func(t *testing.T) {
		// 200 words of 5 chars: 1199 chars, in-range word count is moot.
		text := words(200)
		eval := Evaluate(text)
		assert.Equal(t, VerdictTruncated, eval.Verdict)
		assert.LessOrEqual(t, len(eval.Text), MaxChars)
	})
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("  one  two\nthree "))
}
