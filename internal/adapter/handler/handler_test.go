package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	appErrors "github.com/johnquangdev/summary-evaluator/errors"
	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/summary-evaluator/internal/usecase/errors"
	evaluationUsecase "github.com/johnquangdev/summary-evaluator/internal/usecase/evaluation"
	"github.com/johnquangdev/summary-evaluator/pkg/config"
	"github.com/johnquangdev/summary-evaluator/pkg/scoring"
	"github.com/johnquangdev/summary-evaluator/pkg/validator"
)

var (
	errMeetingNotFound    = usecaseErrors.ErrMeetingNotFound
	errEvaluationNotFound = usecaseErrors.ErrEvaluationNotFound
	errAnalysisNotFound   = usecaseErrors.ErrAnalysisNotFound
)

type testServer struct {
	e           *echo.Echo
	meetings    *fakeMeetingService
	evaluations *fakeEvaluationService
	analyses    *fakeAnalysisService
	exports     *fakeExportService
}

func newTestServer() *testServer {
	ts := &testServer{
		meetings:    &fakeMeetingService{meetings: map[uuid.UUID]*entities.Meeting{}},
		evaluations: &fakeEvaluationService{},
		analyses:    &fakeAnalysisService{},
		exports:     &fakeExportService{},
	}

	e := echo.New()
	e.Validator = validator.New()
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(cfg,
		NewMeetingHandler(ts.meetings, nil),
		NewEvaluationHandler(ts.evaluations, nil),
		NewAnalysisHandler(ts.analyses, nil),
		NewExportHandler(ts.exports, nil),
	).Setup(e)
	ts.e = e
	return ts
}

func (ts *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
	Data    json.RawMessage   `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func sampleEvaluation(meetingID uuid.UUID, mode entities.Mode) *entities.StoredEvaluation {
	return &entities.StoredEvaluation{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Mode:      mode,
		Model:     "gpt-4.1",
		Results:   datatypes.NewJSONType(scoring.Result{Overall: scoring.Overall{Winner: scoring.WinnerV1}}),
	}
}

func TestHealth(t *testing.T) {
	rec := newTestServer().do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"environment":"test"`)
}

func TestMeetings(t *testing.T) {
	ts := newTestServer()
	id := uuid.New()
	ts.meetings.meetings[id] = &entities.Meeting{ID: id, Slug: "meeting-1", Title: "Roadmap", Notes: "n"}

	t.Run("list", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/v1/meetings", "")
		require.Equal(t, http.StatusOK, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, 200, env.Code)
		assert.Contains(t, string(env.Data), `"total":1`)
	})

	t.Run("get", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/v1/meetings/"+id.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"has_notes":true`)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/v1/meetings/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int(appErrors.ErrorCode_INVALID_ARGUMENT), decode(t, rec).Code)
	})

	t.Run("unknown", func(t *testing.T) {
		missing := uuid.New()
		rec := ts.do(http.MethodGet, "/v1/meetings/"+missing.String()+"/transcript", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, int(appErrors.ErrorCode_MEETING_NOT_FOUND), env.Code)
		assert.Equal(t, missing.String(), env.Details["meeting_id"])
	})

	t.Run("transcript", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/v1/meetings/"+id.String()+"/transcript", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"speakers":["Me"]`)
	})
}

func TestCreateMeeting(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/v1/meetings", `{"title":"Sync","transcript":"Me: hi","summary_v1":"a","summary_v2":"b"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"created"`)

	rec = ts.do(http.MethodPost, "/v1/meetings", `{"title":"Sync"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, int(appErrors.ErrorCode_INVALID_PAYLOAD), env.Code)
	assert.Equal(t, "is required", env.Details["transcript"])
	assert.Equal(t, "is required", env.Details["summary_v1"])

	ts.meetings.createFn = func(*entities.Meeting) error {
		return fmt.Errorf("%w: %w", usecaseErrors.ErrMeetingInvalid, entities.ErrTranscriptRequired)
	}
	rec = ts.do(http.MethodPost, "/v1/meetings", `{"title":"Sync","transcript":" ","summary_v1":"a","summary_v2":"b"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int(appErrors.ErrorCode_MEETING_INVALID), decode(t, rec).Code)
}

func TestImportMeetings(t *testing.T) {
	ts := newTestServer()
	body := "meetings:\n  - id: a\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/import", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, "application/yaml")
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":2`)
	assert.Equal(t, body, ts.meetings.imported)
}

func TestEvaluate(t *testing.T) {
	ts := newTestServer()
	id := uuid.New()
	path := "/v1/meetings/" + id.String() + "/evaluations"

	t.Run("ok", func(t *testing.T) {
		ts.evaluations.evaluateFn = func(mid uuid.UUID, mode entities.Mode) (*entities.StoredEvaluation, error) {
			return sampleEvaluation(mid, mode), nil
		}
		rec := ts.do(http.MethodPost, path, `{"mode":"o3-high"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"mode":"o3-high"`)
		assert.Contains(t, rec.Body.String(), `"winner":"v1"`)
	})

	t.Run("invalid mode rejected before the service", func(t *testing.T) {
		ts.evaluations.evaluateFn = func(uuid.UUID, entities.Mode) (*entities.StoredEvaluation, error) {
			t.Fatal("service must not be called")
			return nil, nil
		}
		rec := ts.do(http.MethodPost, path, `{"mode":"gpt-5"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "must be one of [4.1 o3-mini o3-high]", decode(t, rec).Details["mode"])
	})

	tests := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode appErrors.ErrorCode
	}{
		{"model failure", fmt.Errorf("%w: %w", usecaseErrors.ErrEvaluationFailed, errors.New("boom")), http.StatusBadGateway, appErrors.ErrorCode_EVALUATION_FAILED},
		{"rate limited", fmt.Errorf("%w: %w", usecaseErrors.ErrEvaluationFailed, &openai.APIError{HTTPStatusCode: 429}), http.StatusTooManyRequests, appErrors.ErrorCode_AI_QUOTA_EXCEEDED},
		{"parse failure", fmt.Errorf("%w: missing notes", usecaseErrors.ErrEvaluationParse), http.StatusBadGateway, appErrors.ErrorCode_EVALUATION_PARSE},
		{"provider down", fmt.Errorf("%w: %w", usecaseErrors.ErrEvaluationFailed, &openai.APIError{HTTPStatusCode: 503}), http.StatusServiceUnavailable, appErrors.ErrorCode_AI_SERVICE_UNAVAILABLE},
		{"provider rejected request", fmt.Errorf("%w: %w", usecaseErrors.ErrEvaluationFailed, &openai.APIError{HTTPStatusCode: 400}), http.StatusBadGateway, appErrors.ErrorCode_EVALUATION_FAILED},
		{"meeting missing", usecaseErrors.ErrMeetingNotFound, http.StatusNotFound, appErrors.ErrorCode_MEETING_NOT_FOUND},
		{"repository failure", usecaseErrors.Storage("store evaluation", errors.New("db down")), http.StatusInternalServerError, appErrors.ErrorCode_DB_QUERY_FAILED},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, appErrors.ErrorCode_INTERNAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.evaluations.evaluateFn = func(uuid.UUID, entities.Mode) (*entities.StoredEvaluation, error) {
				return nil, tt.err
			}
			rec := ts.do(http.MethodPost, path, `{"mode":"4.1"}`)
			assert.Equal(t, tt.wantHTTP, rec.Code)
			assert.Equal(t, int(tt.wantCode), decode(t, rec).Code)
		})
	}
}

func TestGetEvaluation(t *testing.T) {
	ts := newTestServer()
	id := uuid.New()

	rec := ts.do(http.MethodGet, "/v1/meetings/"+id.String()+"/evaluations/o3-mini", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "o3-mini", env.Details["mode"])

	rec = ts.do(http.MethodGet, "/v1/meetings/"+id.String()+"/evaluations/o4", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int(appErrors.ErrorCode_INVALID_MODE), decode(t, rec).Code)
}

func TestListAndClearEvaluations(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodGet, "/v1/evaluations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ts.evaluations.listAllHits)

	rec = ts.do(http.MethodGet, "/v1/evaluations?mode=o3-mini", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entities.ModeO3Mini, ts.evaluations.listedMode)

	rec = ts.do(http.MethodGet, "/v1/evaluations?mode=nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodDelete, "/v1/evaluations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":4`)
}

func TestBatch(t *testing.T) {
	ts := newTestServer()
	var gotConcurrency int
	ts.evaluations.batchFn = func(mode entities.Mode, concurrency int) (*evaluationUsecase.BatchResult, error) {
		gotConcurrency = concurrency
		return &evaluationUsecase.BatchResult{
			BatchID: uuid.New(),
			Mode:    mode,
			Failed:  1,
			Items:   []evaluationUsecase.BatchItem{{MeetingID: uuid.New(), Err: errors.New("bad json")}},
		}, nil
	}

	rec := ts.do(http.MethodPost, "/v1/evaluations/batch", `{"mode":"4.1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultBatchConcurrency, gotConcurrency)
	assert.Contains(t, rec.Body.String(), `"error":"bad json"`)

	rec = ts.do(http.MethodPost, "/v1/evaluations/batch", `{"mode":"4.1","concurrency":17}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysis(t *testing.T) {
	ts := newTestServer()

	t.Run("all modes", func(t *testing.T) {
		var got []entities.Mode
		ts.analyses.analyzeFn = func(modes []entities.Mode) ([]*entities.Analysis, error) {
			got = modes
			return []*entities.Analysis{{Mode: entities.ModeGPT41, Aggregate: scoring.AggregateResult{Count: 3}}}, nil
		}
		rec := ts.do(http.MethodPost, "/v1/analysis", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, got)
		assert.Contains(t, rec.Body.String(), `"count":3`)
	})

	t.Run("partial failure still answers", func(t *testing.T) {
		ts.analyses.analyzeFn = func([]entities.Mode) ([]*entities.Analysis, error) {
			return []*entities.Analysis{{Mode: entities.ModeO3Mini}}, errors.New("mode o3-high: timeout")
		}
		rec := ts.do(http.MethodPost, "/v1/analysis", `{"modes":["o3-mini","o3-high"]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("nothing to analyze", func(t *testing.T) {
		ts.analyses.analyzeFn = func([]entities.Mode) ([]*entities.Analysis, error) {
			return nil, usecaseErrors.ErrNoEvaluations
		}
		rec := ts.do(http.MethodPost, "/v1/analysis", `{"modes":["4.1"]}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, int(appErrors.ErrorCode_ANALYSIS_EMPTY), decode(t, rec).Code)
	})

	t.Run("latest missing", func(t *testing.T) {
		rec := ts.do(http.MethodGet, "/v1/analysis/4.1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, int(appErrors.ErrorCode_ANALYSIS_NOT_FOUND), decode(t, rec).Code)
	})
}

func TestExports(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/v1/exports/4.1", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"object_name":"exports/4.1/x.json"`)

	ts.exports.err = usecaseErrors.ErrExportDisabled
	rec = ts.do(http.MethodPost, "/v1/exports/4.1", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	ts.exports.err = errors.New("connection refused")
	rec = ts.do(http.MethodGet, "/v1/exports/4.1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, int(appErrors.ErrorCode_STORAGE_FAILED), decode(t, rec).Code)

	ts.exports.err = usecaseErrors.Storage("load evaluations", errors.New("connection refused"))
	rec = ts.do(http.MethodPost, "/v1/exports/4.1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, int(appErrors.ErrorCode_DB_QUERY_FAILED), env.Code)
	assert.Equal(t, "load evaluations", env.Details["query"])
}

func TestUnknownRoute(t *testing.T) {
	rec := newTestServer().do(http.MethodGet, "/v1/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, int(appErrors.ErrorCode_NOT_FOUND), env.Code)
	assert.Equal(t, "route not found", env.Message)
	assert.Equal(t, "/v1/nope", env.Details["path"])
}
