package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/internal/domain/repositories"
	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/summary-evaluator/internal/usecase/errors"
	"github.com/johnquangdev/summary-evaluator/pkg/ai"
	"github.com/johnquangdev/summary-evaluator/pkg/config"
	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
)

const explanationsTemperature = 0.1

// cachedAnalysis is the cache payload. An entry whose generation is behind
// the mode's current generation predates a change to its evaluations.
type cachedAnalysis struct {
	Generation int64              `json:"generation"`
	Analysis   *entities.Analysis `json:"analysis"`
}

// Service defines aggregate analysis use cases
type Service interface {
	Analyze(ctx context.Context, mode entities.Mode) (*entities.Analysis, error)
	// AnalyzeAll analyzes the given modes (all modes when empty) concurrently.
	// Modes without evaluations are skipped.
	AnalyzeAll(ctx context.Context, modes []entities.Mode) ([]*entities.Analysis, error)
	Latest(ctx context.Context, mode entities.Mode) (*entities.Analysis, error)
}

type analysisService struct {
	evaluations repositories.EvaluationRepository
	snapshots   repositories.AnalysisRepository
	completer   ai.Completer
	cache       cache.Store
	cacheTTL    time.Duration
	model       string
	logger      *zap.Logger
	now         func() time.Time
}

// NewService constructs the analysis service
func NewService(
	evaluations repositories.EvaluationRepository,
	snapshots repositories.AnalysisRepository,
	completer ai.Completer,
	store cache.Store,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analysisService{
		evaluations: evaluations,
		snapshots:   snapshots,
		completer:   completer,
		cache:       store,
		cacheTTL:    cfg.Redis.CacheTTL,
		model:       cfg.OpenAI.AnalysisModel,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *analysisService) Analyze(ctx context.Context, mode entities.Mode) (*entities.Analysis, error) {
	if !mode.Valid() {
		return nil, usecaseErrors.ErrInvalidMode
	}

	// read before loading evaluations so a concurrent write makes this result stale
	gen, genOK := s.generation(ctx, mode)
	if genOK {
		if cached, ok := s.fromCache(ctx, mode, gen); ok {
			return cached, nil
		}
	}

	stored, err := s.evaluations.FindByMode(ctx, mode)
	if err != nil {
		return nil, usecaseErrors.Storage("load evaluations", err)
	}

	// aggregate over a private copy of the stored results
	results := make([]scoring.Result, len(stored))
	for i, e := range stored {
		results[i] = e.Result()
	}

	agg, ok := scoring.Aggregate(results)
	if !ok {
		return nil, usecaseErrors.ErrNoEvaluations
	}

	analysis := &entities.Analysis{
		Mode:        mode,
		Aggregate:   agg,
		GeneratedAt: s.now(),
	}

	explanations, err := s.explain(ctx, agg, results)
	if err != nil {
		s.logger.Warn("⚠️ Failed to generate criterion explanations",
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		analysis.ExplanationsError = err.Error()
	} else {
		analysis.Explanations = explanations
	}

	snapshot := &entities.AnalysisSnapshot{
		Key:     entities.LatestSnapshotKey,
		Mode:    mode,
		Payload: datatypes.NewJSONType(*analysis),
	}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return nil, usecaseErrors.Storage("save analysis snapshot", err)
	}

	// a failed explanation call is retried on the next request instead of being pinned
	if genOK && analysis.ExplanationsError == "" {
		s.toCache(ctx, analysis, gen)
	}

	s.logger.Info("📊 Analysis generated",
		zap.String("mode", string(mode)),
		zap.Int("count", agg.Count),
		zap.String("winner", string(agg.Overall.Winner)),
	)

	return analysis, nil
}

func (s *analysisService) explain(ctx context.Context, agg scoring.AggregateResult, results []scoring.Result) (*entities.CriterionExplanations, error) {
	payload, err := json.Marshal(buildExplanationsInput(agg, results))
	if err != nil {
		return nil, fmt.Errorf("failed to encode explanations input: %w", err)
	}

	content, err := s.completer.CompleteJSON(ctx, ai.ChatRequest{
		Model:       s.model,
		System:      explanationsSystemPrompt,
		User:        string(payload),
		Temperature: explanationsTemperature,
	})
	if err != nil {
		return nil, err
	}
	return parseExplanations(content)
}

func (s *analysisService) AnalyzeAll(ctx context.Context, modes []entities.Mode) ([]*entities.Analysis, error) {
	if len(modes) == 0 {
		modes = entities.Modes
	}
	for _, m := range modes {
		if !m.Valid() {
			return nil, usecaseErrors.ErrInvalidMode
		}
	}

	analyses := make([]*entities.Analysis, len(modes))
	errs := make([]error, len(modes))

	var wg sync.WaitGroup
	for i, mode := range modes {
		wg.Add(1)
		go func(i int, mode entities.Mode) {
			defer wg.Done()
			analysis, err := s.Analyze(ctx, mode)
			if errors.Is(err, usecaseErrors.ErrNoEvaluations) {
				return
			}
			if err != nil {
				errs[i] = fmt.Errorf("mode %s: %w", mode, err)
				return
			}
			analyses[i] = analysis
		}(i, mode)
	}
	wg.Wait()

	out := make([]*entities.Analysis, 0, len(modes))
	for _, a := range analyses {
		if a != nil {
			out = append(out, a)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return out, err
	}
	if len(out) == 0 {
		return out, usecaseErrors.ErrNoEvaluations
	}
	return out, nil
}

func (s *analysisService) Latest(ctx context.Context, mode entities.Mode) (*entities.Analysis, error) {
	if !mode.Valid() {
		return nil, usecaseErrors.ErrInvalidMode
	}

	snapshot, err := s.snapshots.FindLatest(ctx, mode)
	if err != nil {
		return nil, usecaseErrors.Storage("load analysis snapshot", err)
	}
	if snapshot == nil {
		return nil, usecaseErrors.ErrAnalysisNotFound
	}

	analysis := snapshot.Payload.Data()
	return &analysis, nil
}

// generation returns the mode's evaluation generation. ok is false when the
// cache is unavailable.
func (s *analysisService) generation(ctx context.Context, mode entities.Mode) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}

	raw, ok, err := s.cache.Get(ctx, cache.GenerationKey(string(mode)))
	if err != nil {
		s.logger.Warn("⚠️ Analysis generation read failed", zap.String("mode", string(mode)), zap.Error(err))
		return 0, false
	}
	if !ok {
		return 0, true
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn("⚠️ Corrupt analysis generation", zap.String("mode", string(mode)), zap.String("value", raw))
		return 0, false
	}
	return gen, true
}

func (s *analysisService) fromCache(ctx context.Context, mode entities.Mode, gen int64) (*entities.Analysis, bool) {
	raw, ok, err := s.cache.Get(ctx, cache.AnalysisKey(string(mode)))
	if err != nil {
		s.logger.Warn("⚠️ Analysis cache read failed", zap.String("mode", string(mode)), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry cachedAnalysis
	if err := json.Unmarshal([]byte(raw), &entry); err != nil || entry.Analysis == nil {
		s.logger.Warn("⚠️ Discarding corrupt cached analysis", zap.String("mode", string(mode)), zap.Error(err))
		return nil, false
	}
	if entry.Generation != gen {
		return nil, false
	}
	return entry.Analysis, true
}

func (s *analysisService) toCache(ctx context.Context, analysis *entities.Analysis, gen int64) {
	raw, err := json.Marshal(cachedAnalysis{Generation: gen, Analysis: analysis})
	if err != nil {
		s.logger.Warn("⚠️ Failed to encode analysis for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, cache.AnalysisKey(string(analysis.Mode)), string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("⚠️ Analysis cache write failed", zap.String("mode", string(analysis.Mode)), zap.Error(err))
	}
}
