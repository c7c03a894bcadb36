package evaluation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/internal/domain/repositories"
	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/summary-evaluator/internal/usecase/errors"
	"github.com/johnquangdev/summary-evaluator/pkg/ai"
	"github.com/johnquangdev/summary-evaluator/pkg/config"
	"github.com/johnquangdev/summary-evaluator/pkg/jobcontext"
	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
)

const (
	defaultTemperature = 0.2
	mediumEffort       = "medium"
	highEffort         = "high"
	// MaxConcurrency caps parallel model calls in EvaluateAll
	MaxConcurrency = 16
	// storageAttempts bounds retries of transient database errors
	storageAttempts = 3
)

// Service defines evaluation use cases
type Service interface {
	Evaluate(ctx context.Context, meetingID uuid.UUID, mode entities.Mode) (*entities.StoredEvaluation, error)
	Get(ctx context.Context, meetingID uuid.UUID, mode entities.Mode) (*entities.StoredEvaluation, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.StoredEvaluation, error)
	ListAll(ctx context.Context) ([]*entities.StoredEvaluation, error)
	ListByMode(ctx context.Context, mode entities.Mode) ([]*entities.StoredEvaluation, error)
	Clear(ctx context.Context) (int64, error)
	EvaluateAll(ctx context.Context, mode entities.Mode, concurrency int) (*BatchResult, error)
}

// BatchItem is the outcome of one meeting inside EvaluateAll
type BatchItem struct {
	MeetingID  uuid.UUID
	Evaluation *entities.StoredEvaluation
	Err        error
}

// BatchResult summarises an EvaluateAll run
type BatchResult struct {
	BatchID   uuid.UUID
	Mode      entities.Mode
	Succeeded int
	Failed    int
	Items     []BatchItem
	Duration  time.Duration
}

type evaluationService struct {
	meetings    repositories.MeetingRepository
	evaluations repositories.EvaluationRepository
	analyses    repositories.AnalysisRepository
	completer   ai.Completer
	cache       cache.Store
	cfg         *config.OpenAIConfig
	logger      *zap.Logger
}

// NewService constructs the evaluation service
func NewService(
	meetings repositories.MeetingRepository,
	evaluations repositories.EvaluationRepository,
	analyses repositories.AnalysisRepository,
	completer ai.Completer,
	store cache.Store,
	cfg *config.OpenAIConfig,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &evaluationService{
		meetings:    meetings,
		evaluations: evaluations,
		analyses:    analyses,
		completer:   completer,
		cache:       store,
		cfg:         cfg,
		logger:      logger,
	}
}

// chatRequest maps a mode onto the model configuration it runs with
func (s *evaluationService) chatRequest(mode entities.Mode, meeting *entities.Meeting) ai.ChatRequest {
	req := ai.ChatRequest{
		Model:       s.cfg.Model,
		System:      SystemPrompt(mode),
		User:        UserPrompt(meeting),
		Temperature: defaultTemperature,
	}
	switch mode {
	case entities.ModeO3Mini:
		req.Model = s.cfg.ReasoningModel
		req.ReasoningEffort = mediumEffort
	case entities.ModeO3High:
		req.Model = s.cfg.ReasoningModel
		req.ReasoningEffort = highEffort
	}
	return req
}

func (s *evaluationService) Evaluate(ctx context.Context, meetingID uuid.UUID, mode entities.Mode) (*entities.StoredEvaluation, error) {
	if !mode.Valid() {
		return nil, usecaseErrors.ErrInvalidMode
	}

	var meeting *entities.Meeting
	err := jobcontext.Run(ctx, storageAttempts, func(ctx context.Context) error {
		var err error
		meeting, err = s.meetings.FindByID(ctx, meetingID)
		return err
	})
	if err != nil {
		return nil, usecaseErrors.Storage("load meeting", err)
	}
	if meeting == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}

	req := s.chatRequest(mode, meeting)
	start := time.Now()

	s.logger.Info("🤖 Evaluating summaries",
		zap.String("meeting_id", meetingID.String()),
		zap.String("mode", string(mode)),
		zap.String("model", req.Model),
		zap.Int("worker_id", jobcontext.GetWorkerID(ctx)),
	)

	content, err := s.completer.CompleteJSON(ctx, req)
	if err != nil {
		s.logger.Error("❌ Model call failed",
			zap.String("meeting_id", meetingID.String()),
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrEvaluationFailed, err)
	}

	result, err := ParseEvaluation(content)
	if err != nil {
		s.logger.Warn("⚠️ Unusable evaluation response",
			zap.String("meeting_id", meetingID.String()),
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrEvaluationParse, err)
	}

	reported := result.Overall.Winner
	finalize(&result)
	if reported != result.Overall.Winner {
		s.logger.Info("Model winner disagrees with weighted scores",
			zap.String("meeting_id", meetingID.String()),
			zap.String("reported", string(reported)),
			zap.String("computed", string(result.Overall.Winner)),
		)
	}

	evaluation := &entities.StoredEvaluation{
		MeetingID: meetingID,
		Mode:      mode,
		Model:     req.Model,
		Results:   datatypes.NewJSONType(result),
	}
	// only the write is repeated, the model answer is already in hand
	err = jobcontext.Run(ctx, storageAttempts, func(ctx context.Context) error {
		return s.evaluations.Upsert(ctx, evaluation)
	})
	if err != nil {
		return nil, usecaseErrors.Storage("store evaluation", err)
	}

	s.invalidate(ctx, mode)

	s.logger.Info("✅ Evaluation stored",
		zap.String("meeting_id", meetingID.String()),
		zap.String("mode", string(mode)),
		zap.String("winner", string(result.Overall.Winner)),
		zap.Duration("took", time.Since(start)),
	)

	return evaluation, nil
}

// finalize replaces the winner with the one implied by the weighted scores
// and records both weighted totals. The model's explanation is kept.
func finalize(r *scoring.Result) {
	winner, v1, v2 := scoring.Decide(*r)
	v1, v2 = scoring.Round1(v1), scoring.Round1(v2)
	r.Overall.Winner = winner
	r.Overall.V1Score = &v1
	r.Overall.V2Score = &v2
}

func (s *evaluationService) invalidate(ctx context.Context, modes ...entities.Mode) {
	if s.cache == nil {
		return
	}
	keys := make([]string, len(modes))
	for i, m := range modes {
		keys[i] = cache.AnalysisKey(string(m))
		// an Analyze already in flight must not cache what it read before this write
		if _, err := s.cache.Incr(ctx, cache.GenerationKey(string(m))); err != nil {
			s.logger.Warn("⚠️ Failed to bump analysis generation", zap.String("mode", string(m)), zap.Error(err))
		}
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("⚠️ Failed to invalidate analysis cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *evaluationService) Get(ctx context.Context, meetingID uuid.UUID, mode entities.Mode) (*entities.StoredEvaluation, error) {
	if !mode.Valid() {
		return nil, usecaseErrors.ErrInvalidMode
	}
	evaluation, err := s.evaluations.Find(ctx, meetingID, mode)
	if err != nil {
		return nil, usecaseErrors.Storage("load evaluation", err)
	}
	if evaluation == nil {
		return nil, usecaseErrors.ErrEvaluationNotFound
	}
	return evaluation, nil
}

func (s *evaluationService) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.StoredEvaluation, error) {
	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, usecaseErrors.Storage("load meeting", err)
	}
	if meeting == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	evaluations, err := s.evaluations.FindByMeeting(ctx, meetingID)
	if err != nil {
		return nil, usecaseErrors.Storage("list evaluations", err)
	}
	return evaluations, nil
}

func (s *evaluationService) ListAll(ctx context.Context) ([]*entities.StoredEvaluation, error) {
	evaluations, err := s.evaluations.FindAll(ctx)
	if err != nil {
		return nil, usecaseErrors.Storage("list evaluations", err)
	}
	return evaluations, nil
}

func (s *evaluationService) ListByMode(ctx context.Context, mode entities.Mode) ([]*entities.StoredEvaluation, error) {
	if !mode.Valid() {
		return nil, usecaseErrors.ErrInvalidMode
	}
	evaluations, err := s.evaluations.FindByMode(ctx, mode)
	if err != nil {
		return nil, usecaseErrors.Storage("list evaluations", err)
	}
	return evaluations, nil
}

// Clear wipes every stored evaluation together with the analyses derived from them
func (s *evaluationService) Clear(ctx context.Context) (int64, error) {
	n, err := s.evaluations.DeleteAll(ctx)
	if err != nil {
		return 0, usecaseErrors.Storage("delete evaluations", err)
	}
	if err := s.analyses.DeleteAll(ctx); err != nil {
		return n, usecaseErrors.Storage("delete analysis snapshots", err)
	}
	s.invalidate(ctx, entities.Modes...)

	s.logger.Info("🗑️ Cleared stored evaluations", zap.Int64("deleted", n))
	return n, nil
}

// EvaluateAll evaluates every meeting under mode with a pool of concurrency
// workers. Individual failures are collected, not fatal.
func (s *evaluationService) EvaluateAll(ctx context.Context, mode entities.Mode, concurrency int) (*BatchResult, error) {
	if !mode.Valid() {
		return nil, usecaseErrors.ErrInvalidMode
	}
	if concurrency < 1 || concurrency > MaxConcurrency {
		return nil, usecaseErrors.ErrInvalidConcurrency
	}

	meetings, err := s.meetings.List(ctx)
	if err != nil {
		return nil, usecaseErrors.Storage("list meetings", err)
	}

	batch := &BatchResult{
		BatchID: uuid.New(),
		Mode:    mode,
		Items:   make([]BatchItem, len(meetings)),
	}
	start := time.Now()

	s.logger.Info("🚀 Starting evaluation batch",
		zap.String("batch_id", batch.BatchID.String()),
		zap.String("mode", string(mode)),
		zap.Int("meetings", len(meetings)),
		zap.Int("concurrency", concurrency),
	)

	jobs := make(chan int)
	var wg sync.WaitGroup

	for workerID := 0; workerID < concurrency; workerID++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				batch.Items[i] = s.evaluateInBatch(ctx, batch.BatchID, meetings[i].ID, mode, workerID)
			}
		}(workerID)
	}

	for i := range meetings {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, item := range batch.Items {
		if item.Err != nil {
			batch.Failed++
		} else {
			batch.Succeeded++
		}
	}
	batch.Duration = time.Since(start)

	s.logger.Info("✅ Evaluation batch finished",
		zap.String("batch_id", batch.BatchID.String()),
		zap.Int("succeeded", batch.Succeeded),
		zap.Int("failed", batch.Failed),
		zap.Duration("took", batch.Duration),
	)

	return batch, nil
}

func (s *evaluationService) evaluateInBatch(ctx context.Context, batchID, meetingID uuid.UUID, mode entities.Mode, workerID int) BatchItem {
	jobCtx, cancel := jobcontext.JobBegin(ctx, batchID, meetingID, string(mode), workerID)
	defer cancel()

	// one attempt: Evaluate retries its own storage calls and the model
	// client its own requests
	var evaluation *entities.StoredEvaluation
	err := jobcontext.Run(jobCtx, 1, func(ctx context.Context) error {
		var err error
		evaluation, err = s.Evaluate(ctx, meetingID, mode)
		return err
	})
	if err != nil {
		s.logger.Warn("⚠️ Meeting failed in batch",
			zap.String("batch_id", batchID.String()),
			zap.String("meeting_id", meetingID.String()),
			zap.Int("worker_id", workerID),
			zap.Error(err),
		)
	}
	return BatchItem{MeetingID: meetingID, Evaluation: evaluation, Err: err}
}
