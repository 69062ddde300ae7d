package entities

// CompositionVariant selects how the panel roster is specialized
type CompositionVariant string

const (
	VariantStandard      CompositionVariant = "standard"
	VariantSubjectExpert CompositionVariant = "subject-expert"
	VariantDiverse       CompositionVariant = "diverse"
)

// CandidateProfile holds the persona the candidate configured before the
// session. Consumed by the seeder and passed through to the oracle and
// question generators as context.
type CandidateProfile struct {
	Name       string   `json:"name"`
	Background string   `json:"background"`
	Subject    string   `json:"subject"` // optional subject / stated specialty
	Region     string   `json:"region"`  // home region, used for personalization
	FocusAreas []string `json:"focus_areas,omitempty"`
}
