package evaluation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/pkg/ai"
)

type fakeMeetings struct {
	mu       sync.Mutex
	meetings []*entities.Meeting
}

func (f *fakeMeetings) Create(_ context.Context, m *entities.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.meetings = append(f.meetings, m)
	return nil
}

func (f *fakeMeetings) UpsertBySlug(ctx context.Context, m *entities.Meeting) error {
	return f.Create(ctx, m)
}

func (f *fakeMeetings) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.meetings {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetings) List(context.Context) ([]*entities.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entities.Meeting(nil), f.meetings...), nil
}

type evalKey struct {
	meetingID uuid.UUID
	mode      entities.Mode
}

type fakeEvaluations struct {
	mu   sync.Mutex
	rows map[evalKey]*entities.StoredEvaluation
	// upsertErrs are returned, in order, by the next Upsert calls
	upsertErrs []error
	upserts    int
}

func newFakeEvaluations() *fakeEvaluations {
	return &fakeEvaluations{rows: map[evalKey]*entities.StoredEvaluation{}}
}

func (f *fakeEvaluations) Upsert(_ context.Context, e *entities.StoredEvaluation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if len(f.upsertErrs) > 0 {
		err := f.upsertErrs[0]
		f.upsertErrs = f.upsertErrs[1:]
		return err
	}
	k := evalKey{e.MeetingID, e.Mode}
	if existing, ok := f.rows[k]; ok {
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
	} else {
		e.ID = uuid.New()
		e.CreatedAt = time.Now()
	}
	f.rows[k] = e
	return nil
}

func (f *fakeEvaluations) Find(_ context.Context, meetingID uuid.UUID, mode entities.Mode) (*entities.StoredEvaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[evalKey{meetingID, mode}], nil
}

func (f *fakeEvaluations) filter(keep func(*entities.StoredEvaluation) bool) []*entities.StoredEvaluation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.StoredEvaluation
	for _, e := range f.rows {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeEvaluations) FindByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.StoredEvaluation, error) {
	return f.filter(func(e *entities.StoredEvaluation) bool { return e.MeetingID == meetingID }), nil
}

func (f *fakeEvaluations) FindByMode(_ context.Context, mode entities.Mode) ([]*entities.StoredEvaluation, error) {
	return f.filter(func(e *entities.StoredEvaluation) bool { return e.Mode == mode }), nil
}

func (f *fakeEvaluations) FindAll(context.Context) ([]*entities.StoredEvaluation, error) {
	return f.filter(func(*entities.StoredEvaluation) bool { return true }), nil
}

func (f *fakeEvaluations) DeleteAll(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.rows))
	f.rows = map[evalKey]*entities.StoredEvaluation{}
	return n, nil
}

type fakeAnalyses struct {
	deleted int
}

func (f *fakeAnalyses) Save(context.Context, *entities.AnalysisSnapshot) error { return nil }

func (f *fakeAnalyses) FindLatest(context.Context, entities.Mode) (*entities.AnalysisSnapshot, error) {
	return nil, nil
}

func (f *fakeAnalyses) DeleteAll(context.Context) error {
	f.deleted++
	return nil
}

// fakeCompleter answers every request through respond and records what it saw
type fakeCompleter struct {
	mu       sync.Mutex
	requests []ai.ChatRequest
	inFlight int
	maxSeen  int
	delay    time.Duration
	respond  func(req ai.ChatRequest) (string, error)
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, req ai.ChatRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	return f.respond(req)
}

func (f *fakeCompleter) last() ai.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
