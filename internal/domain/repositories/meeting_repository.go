package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create stores a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// UpsertBySlug inserts the meeting or refreshes the one with the same slug
	UpsertBySlug(ctx context.Context, meeting *entities.Meeting) error

	// FindByID returns nil, nil when the meeting does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// List returns meetings ordered by date then title
	List(ctx context.Context) ([]*entities.Meeting, error)
}
