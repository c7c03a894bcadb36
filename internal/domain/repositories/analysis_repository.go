package repositories

import (
	"context"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
)

// AnalysisRepository stores aggregate analysis snapshots
type AnalysisRepository interface {
	Save(ctx context.Context, snapshot *entities.AnalysisSnapshot) error

	// FindLatest returns nil, nil when the mode was never analyzed
	FindLatest(ctx context.Context, mode entities.Mode) (*entities.AnalysisSnapshot, error)

	DeleteAll(ctx context.Context) error
}
