package entities

// AnswerModality records how the candidate delivered the answer.
// Informational only; the engine does not branch on it.
type AnswerModality string

const (
	ModalitySpoken AnswerModality = "spoken"
	ModalityTyped  AnswerModality = "typed"
)

// AnswerRecord ties a submitted answer to the question it answers. The
// Judgment is attached exactly once, when evaluation completes; the record
// is immutable after that.
type AnswerRecord struct {
	Question       *Question      `json:"question"`
	AnswerText     string         `json:"answer_text"`
	ElapsedSeconds int            `json:"elapsed_seconds"`
	Modality       AnswerModality `json:"modality"`
	Judgment       *Judgment      `json:"judgment,omitempty"`
}

// Evaluated checks if the record has its judgment attached
func (r *AnswerRecord) Evaluated() bool {
	return r.Judgment != nil
}
