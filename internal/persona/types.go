package persona

// Verbosity levels accepted in CommunicationStyle. Anything else is
// coerced to VerbosityMedium during validation.
const (
	VerbosityLow    = "low"
	VerbosityMedium = "medium"
	VerbosityHigh   = "high"
)

// ProfessionalContext describes who the author is professionally.
type ProfessionalContext struct {
	Role      string `json:"role"`
	Industry  string `json:"industry"`
	Seniority string `json:"seniority"`
}

// CommunicationStyle describes how the author communicates.
type CommunicationStyle struct {
	Tone      string `json:"tone"`
	Verbosity string `json:"verbosity"`
}

// DesignPreferences captures inferred visual and UX leanings.
type DesignPreferences struct {
	VisualStyle string `json:"visualStyle"`
	UXPriority  string `json:"uxPriority"`
}

// ContentPreferences lists topics the author responds to and avoids.
type ContentPreferences struct {
	RespondsTo []string `json:"respondsTo"`
	Avoids     []string `json:"avoids"`
}

// AnalysisRecord is the structured result of analyzing raw input text.
// It is immutable once parsed and consumed only by persona generation.
type AnalysisRecord struct {
	ProfessionalContext ProfessionalContext `json:"professionalContext"`
	CommunicationStyle  CommunicationStyle  `json:"communicationStyle"`
	DesignPreferences   DesignPreferences   `json:"designPreferences"`
	ContentPreferences  ContentPreferences  `json:"contentPreferences"`
}

// DesignGuidance splits concrete design advice into dos and don'ts.
type DesignGuidance struct {
	Do    []string `json:"do"`
	Avoid []string `json:"avoid"`
}

// PersonaRecord is the structured persona produced from an
// AnalysisRecord and a free-text design brief.
type PersonaRecord struct {
	Name                string              `json:"name"`
	Summary             string              `json:"summary"`
	ProfessionalContext ProfessionalContext `json:"professionalContext"`
	CommunicationStyle  CommunicationStyle  `json:"communicationStyle"`
	DesignBiases        DesignPreferences   `json:"designBiases"`
	ContentBiases       ContentPreferences  `json:"contentBiases"`
	BriefConflicts      []string            `json:"briefConflicts"`
	DesignGuidance      DesignGuidance      `json:"designGuidance"`
}
