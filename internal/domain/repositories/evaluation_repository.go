package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
)

// EvaluationRepository defines the interface for stored evaluation access
type EvaluationRepository interface {
	// Upsert replaces any evaluation with the same meeting and mode
	Upsert(ctx context.Context, evaluation *entities.StoredEvaluation) error

	// Find returns nil, nil when no evaluation exists for the pair
	Find(ctx context.Context, meetingID uuid.UUID, mode entities.Mode) (*entities.StoredEvaluation, error)

	FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.StoredEvaluation, error)
	FindByMode(ctx context.Context, mode entities.Mode) ([]*entities.StoredEvaluation, error)
	FindAll(ctx context.Context) ([]*entities.StoredEvaluation, error)

	// DeleteAll removes every stored evaluation and returns how many were removed
	DeleteAll(ctx context.Context) (int64, error)
}
