package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/internal/domain/repositories"
)

var _ repositories.AnalysisRepository = (*AnalysisRepository)(nil)

// AnalysisRepository handles analysis snapshot persistence
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save overwrites the snapshot stored under the same key and mode
func (r *AnalysisRepository) Save(ctx context.Context, snapshot *entities.AnalysisSnapshot) error {
	if snapshot == nil {
		return errors.New("snapshot cannot be nil")
	}
	if snapshot.Key == "" {
		snapshot.Key = entities.LatestSnapshotKey
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}, {Name: "mode"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(snapshot).Error
}

func (r *AnalysisRepository) FindLatest(ctx context.Context, mode entities.Mode) (*entities.AnalysisSnapshot, error) {
	var snapshot entities.AnalysisSnapshot
	if err := r.db.WithContext(ctx).
		Where("key = ? AND mode = ?", entities.LatestSnapshotKey, mode).
		First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

func (r *AnalysisRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.AnalysisSnapshot{}).Error
}
