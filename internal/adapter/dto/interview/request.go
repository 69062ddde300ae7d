package interview

// StartInterviewRequest represents the request to start a mock interview
type StartInterviewRequest struct {
	Name               string   `json:"name" validate:"required,min=1,max=255"`
	Background         string   `json:"background,omitempty" validate:"max=2000"`
	Subject            string   `json:"subject" validate:"required,min=1,max=255"`
	Region             string   `json:"region,omitempty" validate:"max=255"`
	FocusAreas         []string `json:"focus_areas,omitempty" validate:"max=10,dive,min=1,max=100"`
	CompositionVariant string   `json:"composition_variant,omitempty" validate:"omitempty,oneof=standard subject-expert diverse"`
	DurationBand       string   `json:"duration_band" validate:"required,oneof=15-20 20-25 25-30"`
}

// SubmitAnswerRequest represents one submitted answer
type SubmitAnswerRequest struct {
	Answer         string `json:"answer" validate:"required,min=1"`
	ElapsedSeconds int    `json:"elapsed_seconds" validate:"min=0"`
	Modality       string `json:"modality,omitempty" validate:"omitempty,oneof=spoken typed"`
}

// ListInterviewsRequest represents query parameters for listing interviews
type ListInterviewsRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
