package entities

// PerformanceBand is the categorical label derived from the mean overall score
type PerformanceBand string

const (
	BandOutstanding  PerformanceBand = "Outstanding"
	BandVeryGood     PerformanceBand = "Very Good"
	BandGood         PerformanceBand = "Good"
	BandSatisfactory PerformanceBand = "Satisfactory"
)

// TerminationReason records why a session reached its terminal state
type TerminationReason string

const (
	TerminationQueueExhausted TerminationReason = "queue_exhausted"
	TerminationTimeExpired    TerminationReason = "time_expired"
	TerminationUserEnded      TerminationReason = "user_ended"
)

// SessionReport is the final aggregate handed off to presentation and export
// collaborators once a session terminates. Produced once, read-only.
type SessionReport struct {
	OverallScore     float64           `json:"overall_score"`
	Band             PerformanceBand   `json:"band"`
	QuestionsAsked   int               `json:"questions_asked"`
	AnswersEvaluated int               `json:"answers_evaluated"`
	Reason           TerminationReason `json:"termination_reason"`
	History          []*AnswerRecord   `json:"history"`
}
