package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InterviewStatus represents the persisted lifecycle of an interview session
type InterviewStatus string

const (
	InterviewStatusInProgress InterviewStatus = "in_progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
)

// Interview is the persistence record for one mock-interview session. The
// live session state is owned in memory by its orchestrator; this row is a
// write-through side effect (created on start, updated on termination).
type Interview struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateName      string             `gorm:"type:varchar(255);not null" json:"candidate_name"`
	Subject            string             `gorm:"type:varchar(255)" json:"subject"`
	Region             string             `gorm:"type:varchar(255)" json:"region"`
	CompositionVariant CompositionVariant `gorm:"type:varchar(30);not null;default:'standard'" json:"composition_variant"`
	DurationBand       string             `gorm:"type:varchar(10);not null" json:"duration_band"`
	Status             InterviewStatus    `gorm:"type:varchar(20);not null;default:'in_progress';index" json:"status"`
	OverallScore       *float64           `json:"overall_score,omitempty"`
	Band               *PerformanceBand   `gorm:"type:varchar(20)" json:"band,omitempty"`
	TerminationReason  *TerminationReason `gorm:"type:varchar(30)" json:"termination_reason,omitempty"`
	Panel              datatypes.JSON     `gorm:"type:jsonb;default:'[]'" json:"panel"`
	History            datatypes.JSON     `gorm:"type:jsonb;default:'[]'" json:"history,omitempty"`
	StartedAt          time.Time          `gorm:"default:now();index" json:"started_at"`
	CompletedAt        *time.Time         `json:"completed_at,omitempty"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Interview
func (Interview) TableName() string {
	return "interviews"
}

// NewInterview creates a new in-progress interview record
func NewInterview(profile CandidateProfile, variant CompositionVariant, durationBand string) *Interview {
	return &Interview{
		ID:                 uuid.New(),
		CandidateName:      profile.Name,
		Subject:            profile.Subject,
		Region:             profile.Region,
		CompositionVariant: variant,
		DurationBand:       durationBand,
		Status:             InterviewStatusInProgress,
		StartedAt:          time.Now(),
	}
}

// Complete marks the interview as finished with its final aggregate
func (i *Interview) Complete(score float64, band PerformanceBand, reason TerminationReason) {
	now := time.Now()
	i.Status = InterviewStatusCompleted
	i.OverallScore = &score
	i.Band = &band
	i.TerminationReason = &reason
	i.CompletedAt = &now
}

// IsCompleted checks if the interview has terminated
func (i *Interview) IsCompleted() bool {
	return i.Status == InterviewStatusCompleted
}
