package handler

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/storage"
	evaluationUsecase "github.com/johnquangdev/summary-evaluator/internal/usecase/evaluation"
	"github.com/johnquangdev/summary-evaluator/internal/usecase/export"
	meetingUsecase "github.com/johnquangdev/summary-evaluator/internal/usecase/meeting"
)

type fakeMeetingService struct {
	meetings map[uuid.UUID]*entities.Meeting
	imported string
	createFn func(*entities.Meeting) error
}

func (f *fakeMeetingService) List(context.Context) ([]*entities.Meeting, error) {
	out := make([]*entities.Meeting, 0, len(f.meetings))
	for _, m := range f.meetings {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMeetingService) Get(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	if m, ok := f.meetings[id]; ok {
		return m, nil
	}
	return nil, errMeetingNotFound
}

func (f *fakeMeetingService) Create(_ context.Context, m *entities.Meeting) error {
	if f.createFn != nil {
		return f.createFn(m)
	}
	m.ID = uuid.New()
	m.Slug = "created"
	return nil
}

func (f *fakeMeetingService) Import(_ context.Context, r io.Reader) (int, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	f.imported = string(b)
	return 2, nil
}

func (f *fakeMeetingService) ImportFile(context.Context, string) (int, error) { return 0, nil }

func (f *fakeMeetingService) Turns(ctx context.Context, id uuid.UUID) (*meetingUsecase.Transcript, error) {
	if _, err := f.Get(ctx, id); err != nil {
		return nil, err
	}
	return &meetingUsecase.Transcript{MeetingID: id, Speakers: []string{"Me"}}, nil
}

type fakeEvaluationService struct {
	evaluateFn  func(uuid.UUID, entities.Mode) (*entities.StoredEvaluation, error)
	batchFn     func(entities.Mode, int) (*evaluationUsecase.BatchResult, error)
	listedMode  entities.Mode
	listAllHits int
}

func (f *fakeEvaluationService) Evaluate(_ context.Context, id uuid.UUID, mode entities.Mode) (*entities.StoredEvaluation, error) {
	return f.evaluateFn(id, mode)
}

func (f *fakeEvaluationService) Get(context.Context, uuid.UUID, entities.Mode) (*entities.StoredEvaluation, error) {
	return nil, errEvaluationNotFound
}

func (f *fakeEvaluationService) ListByMeeting(context.Context, uuid.UUID) ([]*entities.StoredEvaluation, error) {
	return nil, nil
}

func (f *fakeEvaluationService) ListAll(context.Context) ([]*entities.StoredEvaluation, error) {
	f.listAllHits++
	return nil, nil
}

func (f *fakeEvaluationService) ListByMode(_ context.Context, mode entities.Mode) ([]*entities.StoredEvaluation, error) {
	f.listedMode = mode
	return nil, nil
}

func (f *fakeEvaluationService) Clear(context.Context) (int64, error) { return 4, nil }

func (f *fakeEvaluationService) EvaluateAll(_ context.Context, mode entities.Mode, concurrency int) (*evaluationUsecase.BatchResult, error) {
	return f.batchFn(mode, concurrency)
}

type fakeAnalysisService struct {
	analyzeFn func([]entities.Mode) ([]*entities.Analysis, error)
}

func (f *fakeAnalysisService) Analyze(context.Context, entities.Mode) (*entities.Analysis, error) {
	return nil, nil
}

func (f *fakeAnalysisService) AnalyzeAll(_ context.Context, modes []entities.Mode) ([]*entities.Analysis, error) {
	return f.analyzeFn(modes)
}

func (f *fakeAnalysisService) Latest(context.Context, entities.Mode) (*entities.Analysis, error) {
	return nil, errAnalysisNotFound
}

type fakeExportService struct {
	err error
}

func (f *fakeExportService) ExportMode(_ context.Context, mode entities.Mode) (*export.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &export.Result{ObjectName: "exports/" + string(mode) + "/x.json", URL: "https://files/x", Mode: string(mode)}, nil
}

func (f *fakeExportService) List(context.Context, entities.Mode) ([]storage.ObjectInfo, error) {
	return nil, f.err
}
