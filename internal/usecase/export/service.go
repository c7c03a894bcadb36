package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/internal/domain/repositories"
	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/summary-evaluator/internal/usecase/errors"
	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
)

const (
	objectPrefix = "exports/"
	urlExpiry    = 24 * time.Hour
)

// ObjectStore is the subset of the MinIO client used for exports
type ObjectStore interface {
	UploadJSON(ctx context.Context, objectName string, body []byte) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	ListFiles(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
}

// Result points at an uploaded export
type Result struct {
	ObjectName string    `json:"object_name"`
	URL        string    `json:"url"`
	Mode       string    `json:"mode"`
	Count      int       `json:"count"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Document is the JSON body written to storage
type Document struct {
	Mode        string                   `json:"mode"`
	GeneratedAt time.Time                `json:"generated_at"`
	Aggregate   *scoring.AggregateResult `json:"aggregate,omitempty"`
	Evaluations []DocumentEvaluation     `json:"evaluations"`
}

// DocumentEvaluation is one meeting's stored result inside an export
type DocumentEvaluation struct {
	MeetingID string         `json:"meeting_id"`
	Model     string         `json:"model"`
	Results   scoring.Result `json:"results"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Service defines export use cases
type Service interface {
	ExportMode(ctx context.Context, mode entities.Mode) (*Result, error)
	List(ctx context.Context, mode entities.Mode) ([]storage.ObjectInfo, error)
}

type exportService struct {
	evaluations repositories.EvaluationRepository
	store       ObjectStore
	logger      *zap.Logger
	now         func() time.Time
}

// NewService constructs the export service. A nil store disables exports.
func NewService(evaluations repositories.EvaluationRepository, store ObjectStore, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &exportService{
		evaluations: evaluations,
		store:       store,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *exportService) ExportMode(ctx context.Context, mode entities.Mode) (*Result, error) {
	if s.store == nil {
		return nil, usecaseErrors.ErrExportDisabled
	}
	if !mode.Valid() {
		return nil, usecaseErrors.ErrInvalidMode
	}

	stored, err := s.evaluations.FindByMode(ctx, mode)
	if err != nil {
		return nil, usecaseErrors.Storage("load evaluations", err)
	}

	now := s.now()
	doc := Document{
		Mode:        string(mode),
		GeneratedAt: now,
		Evaluations: make([]DocumentEvaluation, 0, len(stored)),
	}
	results := make([]scoring.Result, 0, len(stored))
	for _, e := range stored {
		r := e.Result()
		results = append(results, r)
		doc.Evaluations = append(doc.Evaluations, DocumentEvaluation{
			MeetingID: e.MeetingID.String(),
			Model:     e.Model,
			Results:   r,
			UpdatedAt: e.UpdatedAt,
		})
	}
	if agg, ok := scoring.Aggregate(results); ok {
		doc.Aggregate = &agg
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	objectName := ObjectName(mode, now)
	if err := s.store.UploadJSON(ctx, objectName, body); err != nil {
		return nil, err
	}

	url, err := s.store.GetFileURL(ctx, objectName, urlExpiry)
	if err != nil {
		return nil, err
	}

	s.logger.Info("📦 Export uploaded",
		zap.String("mode", string(mode)),
		zap.String("object", objectName),
		zap.Int("evaluations", len(stored)),
	)

	return &Result{
		ObjectName: objectName,
		URL:        url,
		Mode:       string(mode),
		Count:      len(stored),
		ExpiresAt:  now.Add(urlExpiry),
	}, nil
}

// List returns previous exports for mode
func (s *exportService) List(ctx context.Context, mode entities.Mode) ([]storage.ObjectInfo, error) {
	if s.store == nil {
		return nil, usecaseErrors.ErrExportDisabled
	}
	if !mode.Valid() {
		return nil, usecaseErrors.ErrInvalidMode
	}
	return s.store.ListFiles(ctx, objectPrefix+string(mode)+"/")
}

// ObjectName is the storage key for an export of mode taken at t
func ObjectName(mode entities.Mode, t time.Time) string {
	return fmt.Sprintf("%s%s/%s.json", objectPrefix, mode, t.UTC().Format("20060102T150405Z"))
}
