package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/internal/domain/repositories"
)

var _ repositories.MeetingRepository = (*MeetingRepository)(nil)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// UpsertBySlug keeps the existing ID when a fixture is imported twice
func (r *MeetingRepository) UpsertBySlug(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "date", "transcript", "notes", "summary_v1", "summary_v2", "updated_at"}),
		}).
		// on conflict the existing row keeps its id; read it back
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "created_at"}}}).
		Create(meeting).Error
}

func (r *MeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

func (r *MeetingRepository) List(ctx context.Context) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Order("date ASC").
		Order("title ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}
