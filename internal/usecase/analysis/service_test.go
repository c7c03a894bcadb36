package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/summary-evaluator/internal/usecase/errors"
	"github.com/johnquangdev/summary-evaluator/pkg/ai"
	"github.com/johnquangdev/summary-evaluator/pkg/config"
	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
)

type fakeEvaluations struct {
	mu    sync.Mutex
	rows  []*entities.StoredEvaluation
	calls int
	// afterFind runs once the rows for a FindByMode call have been read
	afterFind func()
}

func (f *fakeEvaluations) Upsert(context.Context, *entities.StoredEvaluation) error { return nil }

func (f *fakeEvaluations) Find(context.Context, uuid.UUID, entities.Mode) (*entities.StoredEvaluation, error) {
	return nil, nil
}

func (f *fakeEvaluations) FindByMeeting(context.Context, uuid.UUID) ([]*entities.StoredEvaluation, error) {
	return nil, nil
}

func (f *fakeEvaluations) FindByMode(_ context.Context, mode entities.Mode) ([]*entities.StoredEvaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []*entities.StoredEvaluation
	for _, r := range f.rows {
		if r.Mode == mode {
			out = append(out, r)
		}
	}
	if f.afterFind != nil {
		f.afterFind()
	}
	return out, nil
}

func (f *fakeEvaluations) FindAll(context.Context) ([]*entities.StoredEvaluation, error) {
	return f.rows, nil
}

func (f *fakeEvaluations) DeleteAll(context.Context) (int64, error) { return 0, nil }

func (f *fakeEvaluations) add(mode entities.Mode, r scoring.Result) {
	f.rows = append(f.rows, &entities.StoredEvaluation{
		ID:        uuid.New(),
		MeetingID: uuid.New(),
		Mode:      mode,
		Results:   datatypes.NewJSONType(r),
	})
}

type fakeSnapshots struct {
	mu    sync.Mutex
	saved map[entities.Mode]*entities.AnalysisSnapshot
}

func (f *fakeSnapshots) Save(_ context.Context, s *entities.AnalysisSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[s.Mode] = s
	return nil
}

func (f *fakeSnapshots) FindLatest(_ context.Context, mode entities.Mode) (*entities.AnalysisSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved[mode], nil
}

func (f *fakeSnapshots) DeleteAll(context.Context) error { return nil }

type fakeCompleter struct {
	mu       sync.Mutex
	requests []ai.ChatRequest
	content  string
	err      error
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, req ai.ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.content, f.err
}

const explanationsReply = `{
  "truthfulness": "Summary 1 keeps the figures.",
  "clarity": "Summary 2 is better organised.",
  "conciseness": "Summary 2 is tighter.",
  "relevance": "Both focus on decisions.",
  "completeness": "Summary 1 misses nothing.",
  "notes": "Summary 1 follows the user's bullets.",
  "overall": "Summary 1 is more useful."
}`

func result(v1, v2 float64, explanation string) scoring.Result {
	var r scoring.Result
	for _, c := range scoring.Criteria {
		r.SetScore(c, scoring.CriterionScore{V1Score: v1, V2Score: v2, Explanation: explanation})
	}
	r.Overall = scoring.Overall{Winner: scoring.WinnerV2, Explanation: "overall " + explanation}
	return r
}

type testEnv struct {
	svc         Service
	evaluations *fakeEvaluations
	snapshots   *fakeSnapshots
	completer   *fakeCompleter
	store       *cache.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		evaluations: &fakeEvaluations{},
		snapshots:   &fakeSnapshots{saved: map[entities.Mode]*entities.AnalysisSnapshot{}},
		completer:   &fakeCompleter{content: explanationsReply},
		store:       cache.NewMemoryStore(),
	}
	t.Cleanup(func() { env.store.Close() })

	cfg := &config.Config{
		Redis:  config.RedisConfig{CacheTTL: time.Minute},
		OpenAI: config.OpenAIConfig{AnalysisModel: "gpt-4o-mini"},
	}
	env.svc = NewService(env.evaluations, env.snapshots, env.completer, env.store, cfg, nil)
	return env
}

func TestAnalyze_AggregatesAndExplains(t *testing.T) {
	env := newTestEnv(t)
	env.evaluations.add(entities.ModeGPT41, result(8, 6, "first"))
	env.evaluations.add(entities.ModeGPT41, result(6, 5, "second"))
	env.evaluations.add(entities.ModeO3Mini, result(1, 9, "other mode"))
	ctx := context.Background()

	analysis, err := env.svc.Analyze(ctx, entities.ModeGPT41)
	require.NoError(t, err)

	assert.Equal(t, 2, analysis.Aggregate.Count)
	assert.Equal(t, 7.0, analysis.Aggregate.Truthfulness.V1Score)
	assert.Equal(t, 5.5, analysis.Aggregate.Truthfulness.V2Score)
	assert.Equal(t, scoring.WinnerV1, analysis.Aggregate.Overall.Winner)
	assert.Equal(t, "Based on the average scores across 2 meetings, Summary V1 performs better overall.", analysis.Aggregate.Overall.Explanation)
	require.NotNil(t, analysis.Explanations)
	assert.Equal(t, "Summary 1 is more useful.", analysis.Explanations.Overall)
	assert.Empty(t, analysis.ExplanationsError)

	require.Len(t, env.completer.requests, 1)
	req := env.completer.requests[0]
	assert.Equal(t, "gpt-4o-mini", req.Model)

	var input explanationsInput
	require.NoError(t, json.Unmarshal([]byte(req.User), &input))
	assert.Equal(t, 2, input.TotalEvaluations)
	assert.Equal(t, []string{"first", "second"}, input.Criteria[scoring.CriterionNotes].Explanations)
	assert.Equal(t, []string{"overall first", "overall second"}, input.Overall.Explanations)

	saved := env.snapshots.saved[entities.ModeGPT41]
	require.NotNil(t, saved)
	assert.Equal(t, entities.LatestSnapshotKey, saved.Key)

	latest, err := env.svc.Latest(ctx, entities.ModeGPT41)
	require.NoError(t, err)
	assert.Equal(t, analysis.Aggregate, latest.Aggregate)
}

func TestAnalyze_UsesCache(t *testing.T) {
	env := newTestEnv(t)
	env.evaluations.add(entities.ModeGPT41, result(8, 6, "x"))
	ctx := context.Background()

	first, err := env.svc.Analyze(ctx, entities.ModeGPT41)
	require.NoError(t, err)
	second, err := env.svc.Analyze(ctx, entities.ModeGPT41)
	require.NoError(t, err)

	assert.Equal(t, 1, env.evaluations.calls)
	assert.Len(t, env.completer.requests, 1)
	assert.Equal(t, first.Aggregate, second.Aggregate)

	require.NoError(t, env.store.Delete(ctx, cache.AnalysisKey("4.1")))
	_, err = env.svc.Analyze(ctx, entities.ModeGPT41)
	require.NoError(t, err)
	assert.Equal(t, 2, env.evaluations.calls)
}

func TestAnalyze_ExplanationsAreBestEffort(t *testing.T) {
	env := newTestEnv(t)
	env.completer.err = errors.New("quota exceeded")
	env.evaluations.add(entities.ModeO3High, result(4, 4, "even"))

	analysis, err := env.svc.Analyze(context.Background(), entities.ModeO3High)
	require.NoError(t, err)

	assert.Nil(t, analysis.Explanations)
	assert.Equal(t, "quota exceeded", analysis.ExplanationsError)
	assert.Equal(t, scoring.WinnerTie, analysis.Aggregate.Overall.Winner)
}

func TestAnalyze_FailedExplanationsNotCached(t *testing.T) {
	env := newTestEnv(t)
	env.completer.err = errors.New("upstream 503")
	env.evaluations.add(entities.ModeGPT41, result(8, 6, "x"))
	ctx := context.Background()

	_, err := env.svc.Analyze(ctx, entities.ModeGPT41)
	require.NoError(t, err)

	env.completer.err = nil
	analysis, err := env.svc.Analyze(ctx, entities.ModeGPT41)
	require.NoError(t, err)

	assert.Equal(t, 2, env.evaluations.calls)
	require.NotNil(t, analysis.Explanations)
	assert.Empty(t, analysis.ExplanationsError)
}

func TestAnalyze_WriteDuringAnalysisIsNotServedFromCache(t *testing.T) {
	env := newTestEnv(t)
	env.evaluations.add(entities.ModeGPT41, result(8, 6, "x"))
	ctx := context.Background()

	// an evaluation lands after the rows were read but before the result is cached
	env.evaluations.afterFind = func() {
		env.evaluations.afterFind = nil
		_, err := env.store.Incr(ctx, cache.GenerationKey("4.1"))
		require.NoError(t, err)
	}

	_, err := env.svc.Analyze(ctx, entities.ModeGPT41)
	require.NoError(t, err)
	_, err = env.svc.Analyze(ctx, entities.ModeGPT41)
	require.NoError(t, err)
	assert.Equal(t, 2, env.evaluations.calls)

	// nothing changed since the second run, so the third is cached
	_, err = env.svc.Analyze(ctx, entities.ModeGPT41)
	require.NoError(t, err)
	assert.Equal(t, 2, env.evaluations.calls)
}

func TestAnalyze_NoEvaluations(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Analyze(context.Background(), entities.ModeGPT41)
	assert.ErrorIs(t, err, usecaseErrors.ErrNoEvaluations)
	assert.Empty(t, env.snapshots.saved)
	assert.Empty(t, env.completer.requests)

	_, err = env.svc.Analyze(context.Background(), "nope")
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidMode)
}

func TestAnalyzeAll(t *testing.T) {
	env := newTestEnv(t)
	env.evaluations.add(entities.ModeGPT41, result(8, 6, "a"))
	env.evaluations.add(entities.ModeO3High, result(3, 9, "b"))

	analyses, err := env.svc.AnalyzeAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	assert.Equal(t, entities.ModeGPT41, analyses[0].Mode)
	assert.Equal(t, entities.ModeO3High, analyses[1].Mode)
	assert.Equal(t, scoring.WinnerV2, analyses[1].Aggregate.Overall.Winner)
}

func TestAnalyzeAll_NothingToAnalyze(t *testing.T) {
	env := newTestEnv(t)

	analyses, err := env.svc.AnalyzeAll(context.Background(), []entities.Mode{entities.ModeO3Mini})
	assert.ErrorIs(t, err, usecaseErrors.ErrNoEvaluations)
	assert.Empty(t, analyses)

	_, err = env.svc.AnalyzeAll(context.Background(), []entities.Mode{"bad"})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidMode)
}

func TestLatest_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Latest(context.Background(), entities.ModeO3Mini)
	assert.ErrorIs(t, err, usecaseErrors.ErrAnalysisNotFound)
}

func TestParseExplanations(t *testing.T) {
	out, err := parseExplanations("```json\n" + explanationsReply + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Summary 2 is tighter.", out.Conciseness)

	_, err = parseExplanations(`{}`)
	assert.Error(t, err)
	_, err = parseExplanations(`nope`)
	assert.Error(t, err)
}
