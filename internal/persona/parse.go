package persona

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// ExtractJSON strips code-fence markers and surrounding prose from raw
// model output, returning the first balanced JSON document found. Models
// routinely wrap JSON in ```json fences or prepend a sentence of
// explanation; everything outside the outermost braces is noise.
func ExtractJSON(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return s
	}
	s = s[start:]

	open, closing := byte('{'), byte('}')
	if s[0] == '[' {
		open, closing = '[', ']'
	}

	// Bracket counting that ignores brackets inside string literals.
	balance := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case open:
			balance++
		case closing:
			balance--
			if balance == 0 {
				return s[:i+1]
			}
		}
	}

	// Unbalanced document: fall back to the last closing bracket.
	if end := strings.LastIndexByte(s, closing); end != -1 {
		return s[:end+1]
	}
	return s
}

// ParseAnalysis parses raw model output into a validated AnalysisRecord.
func ParseAnalysis(raw string) (*AnalysisRecord, error) {
	var record AnalysisRecord
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &record); err != nil {
		return nil, fmt.Errorf("invalid analysis response: %w", err)
	}

	if err := validateAnalysis(&record); err != nil {
		return nil, err
	}

	return &record, nil
}

// ParsePersona parses raw model output into a validated PersonaRecord.
func ParsePersona(raw string) (*PersonaRecord, error) {
	var record PersonaRecord
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &record); err != nil {
		return nil, fmt.Errorf("invalid persona response: %w", err)
	}

	if err := validatePersona(&record); err != nil {
		return nil, err
	}

	return &record, nil
}

func validateAnalysis(r *AnalysisRecord) error {
	checks := []struct {
		field string
		value string
	}{
		{"professionalContext.role", r.ProfessionalContext.Role},
		{"professionalContext.industry", r.ProfessionalContext.Industry},
		{"professionalContext.seniority", r.ProfessionalContext.Seniority},
		{"communicationStyle.tone", r.CommunicationStyle.Tone},
		{"designPreferences.visualStyle", r.DesignPreferences.VisualStyle},
		{"designPreferences.uxPriority", r.DesignPreferences.UXPriority},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return validationError("analysis", c.field)
		}
	}

	if len(r.ContentPreferences.RespondsTo) == 0 {
		return validationError("analysis", "contentPreferences.respondsTo")
	}
	if len(r.ContentPreferences.Avoids) == 0 {
		return validationError("analysis", "contentPreferences.avoids")
	}

	r.CommunicationStyle.Verbosity = normalizeVerbosity(r.CommunicationStyle.Verbosity)

	return nil
}

func validatePersona(r *PersonaRecord) error {
	checks := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"summary", r.Summary},
		{"professionalContext.role", r.ProfessionalContext.Role},
		{"professionalContext.industry", r.ProfessionalContext.Industry},
		{"professionalContext.seniority", r.ProfessionalContext.Seniority},
		{"communicationStyle.tone", r.CommunicationStyle.Tone},
		{"designBiases.visualStyle", r.DesignBiases.VisualStyle},
		{"designBiases.uxPriority", r.DesignBiases.UXPriority},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return validationError("persona", c.field)
		}
	}

	lists := []struct {
		field string
		value []string
	}{
		{"contentBiases.respondsTo", r.ContentBiases.RespondsTo},
		{"contentBiases.avoids", r.ContentBiases.Avoids},
		{"designGuidance.do", r.DesignGuidance.Do},
		{"designGuidance.avoid", r.DesignGuidance.Avoid},
	}
	for _, l := range lists {
		if len(l.value) == 0 {
			return validationError("persona", l.field)
		}
	}

	// BriefConflicts may legitimately be empty: a brief that matches the
	// analysis has no conflicts to report.

	r.CommunicationStyle.Verbosity = normalizeVerbosity(r.CommunicationStyle.Verbosity)

	return nil
}

func validationError(record, field string) error {
	return fmt.Errorf("%s validation failed: missing or empty required field %q", record, field)
}

// normalizeVerbosity coerces out-of-range verbosity values to medium.
// This is the one permitted self-healing repair; everything else fails
// validation loudly.
func normalizeVerbosity(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case VerbosityLow:
		return VerbosityLow
	case VerbosityMedium:
		return VerbosityMedium
	case VerbosityHigh:
		return VerbosityHigh
	default:
		log.Debug().Str("verbosity", v).Msg("Coercing out-of-range verbosity to medium")
		return VerbosityMedium
	}
}
