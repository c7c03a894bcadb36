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

var _ repositories.EvaluationRepository = (*EvaluationRepository)(nil)

// EvaluationRepository handles stored evaluation data operations
type EvaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Upsert writes the evaluation, replacing the row for the same (meeting_id, mode)
func (r *EvaluationRepository) Upsert(ctx context.Context, evaluation *entities.StoredEvaluation) error {
	if evaluation == nil {
		return errors.New("evaluation cannot be nil")
	}
	if evaluation.ID == uuid.Nil {
		evaluation.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "mode"}},
			DoUpdates: clause.AssignmentColumns([]string{"model", "results", "updated_at"}),
		}).
		// on conflict the existing row keeps its id; read it back
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "created_at"}}}).
		Create(evaluation).Error
}

func (r *EvaluationRepository) Find(ctx context.Context, meetingID uuid.UUID, mode entities.Mode) (*entities.StoredEvaluation, error) {
	var evaluation entities.StoredEvaluation
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND mode = ?", meetingID, mode).
		First(&evaluation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &evaluation, nil
}

func (r *EvaluationRepository) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.StoredEvaluation, error) {
	var evaluations []*entities.StoredEvaluation
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("mode ASC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *EvaluationRepository) FindByMode(ctx context.Context, mode entities.Mode) ([]*entities.StoredEvaluation, error) {
	var evaluations []*entities.StoredEvaluation
	if err := r.db.WithContext(ctx).
		Where("mode = ?", mode).
		Order("created_at ASC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *EvaluationRepository) FindAll(ctx context.Context) ([]*entities.StoredEvaluation, error) {
	var evaluations []*entities.StoredEvaluation
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *EvaluationRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.StoredEvaluation{})
	return result.RowsAffected, result.Error
}
