package interview

import (
	"time"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// PanelMemberResponse represents one panel member in API responses
type PanelMemberResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Expertise []string `json:"expertise"`
	VoiceTag  string   `json:"voice_tag"`
}

// QuestionResponse represents a question served to the candidate
type QuestionResponse struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	AskedBy    string `json:"asked_by"`
	Topic      string `json:"topic"`
	Difficulty int    `json:"difficulty"`
	FollowUpTo string `json:"follow_up_to,omitempty"`
	IsAdaptive bool   `json:"is_adaptive,omitempty"`
}

// StartInterviewResponse is returned when a session opens
type StartInterviewResponse struct {
	ID               string                `json:"id"`
	Panel            []PanelMemberResponse `json:"panel"`
	Question         *QuestionResponse     `json:"question"`
	RemainingSeconds int64                 `json:"remaining_seconds"`
}

// TurnResponse is returned after each submitted answer
type TurnResponse struct {
	Judgment         *entities.Judgment `json:"judgment,omitempty"`
	NextQuestion     *QuestionResponse  `json:"next_question,omitempty"`
	Completed        bool               `json:"completed"`
	Report           *ReportResponse    `json:"report,omitempty"`
	RemainingSeconds int64              `json:"remaining_seconds"`
	TurnIndex        int                `json:"turn_index"`
}

// ReportResponse is the final session report
type ReportResponse struct {
	OverallScore      float64                  `json:"overall_score"`
	Band              string                   `json:"band"`
	QuestionsAsked    int                      `json:"questions_asked"`
	AnswersEvaluated  int                      `json:"answers_evaluated"`
	TerminationReason string                   `json:"termination_reason"`
	History           []*entities.AnswerRecord `json:"history"`
}

// SnapshotResponse is the live view of a session
type SnapshotResponse struct {
	State             string            `json:"state"`
	CurrentQuestion   *QuestionResponse `json:"current_question,omitempty"`
	TurnsCompleted    int               `json:"turns_completed"`
	QueueLength       int               `json:"queue_length"`
	RemainingSeconds  int64             `json:"remaining_seconds"`
	TerminationReason string            `json:"termination_reason,omitempty"`
}

// InterviewSummaryResponse is one row in the recent-interviews listing
type InterviewSummaryResponse struct {
	ID                string     `json:"id"`
	CandidateName     string     `json:"candidate_name"`
	Subject           string     `json:"subject"`
	DurationBand      string     `json:"duration_band"`
	Status            string     `json:"status"`
	OverallScore      *float64   `json:"overall_score,omitempty"`
	Band              string     `json:"band,omitempty"`
	TerminationReason string     `json:"termination_reason,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}
