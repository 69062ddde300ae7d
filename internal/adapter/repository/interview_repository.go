package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// InterviewRepository implements the interview repository interface using GORM
type InterviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{
		db: db,
	}
}

// Create stores a new in-progress interview record
func (r *InterviewRepository) Create(ctx context.Context, interview *entities.Interview) error {
	if err := r.db.WithContext(ctx).Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

// Update persists the current state of an interview record
func (r *InterviewRepository) Update(ctx context.Context, interview *entities.Interview) error {
	if err := r.db.WithContext(ctx).Save(interview).Error; err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}
	return nil
}

// FindByID retrieves an interview by ID
func (r *InterviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Interview, error) {
	var interview entities.Interview
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview by ID: %w", err)
	}
	return &interview, nil
}

// ListCompleted retrieves recently completed interviews, newest first
func (r *InterviewRepository) ListCompleted(ctx context.Context, limit int) ([]*entities.Interview, error) {
	if limit <= 0 {
		limit = 20
	}
	var interviews []*entities.Interview
	if err := r.db.WithContext(ctx).
		Where("status = ?", entities.InterviewStatusCompleted).
		Order("completed_at DESC").
		Limit(limit).
		Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed interviews: %w", err)
	}
	return interviews, nil
}
