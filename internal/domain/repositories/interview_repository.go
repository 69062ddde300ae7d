package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
)

// InterviewRepository defines persistence operations for interview records.
// The live session is owned in memory by its orchestrator; these writes are
// side effects and must never block the session flow.
type InterviewRepository interface {
	// Create stores a new in-progress interview record
	Create(ctx context.Context, interview *entities.Interview) error

	// Update persists the current state of an interview record
	Update(ctx context.Context, interview *entities.Interview) error

	// FindByID retrieves an interview by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Interview, error)

	// ListCompleted retrieves recently completed interviews, newest first
	ListCompleted(ctx context.Context, limit int) ([]*entities.Interview, error)
}
