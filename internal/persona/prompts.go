package persona

import (
	"encoding/json"
	"fmt"

	"github.com/briefcast/briefcast/internal/llm"
)

var (
	analysisSchema = llm.MustSchemaFor[AnalysisRecord]()
	personaSchema  = llm.MustSchemaFor[PersonaRecord]()
)

// AnalysisPrompt builds the prompt for the analysis stage.
func AnalysisPrompt(articleText string) string {
	return fmt.Sprintf(`Analyze the following writing sample and infer the author's profile.

Extract:
- professional context: role, industry, seniority
- communication style: tone (free text) and verbosity (one of "low", "medium", "high")
- design preferences: preferred visual style and UX priority
- content preferences: topics the author responds to and topics the author avoids (at least two each)

Return a single JSON object matching this schema exactly:
%s

Writing sample:
---
%s
---`, analysisSchema, articleText)
}

// PersonaPrompt builds the prompt for the persona-generation stage. The
// analysis record is serialized back to JSON so the model works from the
// validated form, not the raw upstream text.
func PersonaPrompt(analysis *AnalysisRecord, designBrief string) string {
	analysisJSON, _ := json.Marshal(analysis)

	return fmt.Sprintf(`Construct a design persona from the author analysis and design brief below.

Requirements:
- give the persona a short evocative name and a 2-3 sentence summary
- carry over professional context and communication style from the analysis
- derive design biases (visual style, UX priority) and content biases (respondsTo, avoids)
- list any conflicts between the analysis and the design brief in briefConflicts (empty list if none)
- provide design guidance as non-empty "do" and "avoid" lists

Return a single JSON object matching this schema exactly:
%s

Author analysis:
%s

Design brief:
---
%s
---`, personaSchema, analysisJSON, designBrief)
}
