package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/common"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/evaluation"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/presenter"
	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	evaluationUsecase "github.com/johnquangdev/summary-evaluator/internal/usecase/evaluation"
)

// defaultBatchConcurrency applies when a batch request omits concurrency
const defaultBatchConcurrency = 3

// Evaluation handles evaluation requests
type Evaluation struct {
	evaluationService evaluationUsecase.Service
	logger            *zap.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluationService evaluationUsecase.Service, logger *zap.Logger) *Evaluation {
	return &Evaluation{evaluationService: evaluationService, logger: logger}
}

// Evaluate handles POST /meetings/:id/evaluations
// @Summary      Evaluate summaries
// @Description  Asks the model to score both summaries of a meeting and stores the result for the mode
// @Tags         Evaluations
// @Accept       json
// @Produce      json
// @Param        id    path   string  true  "Meeting ID (UUID)"
// @Param        request  body  evaluation.EvaluateRequest  true  "Evaluation mode"
// @Success      200  {object}  evaluation.EvaluationResponse  "Stored evaluation"
// @Failure      400  {object}  map[string]interface{}  "Invalid mode"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      429  {object}  map[string]interface{}  "AI quota exceeded"
// @Failure      502  {object}  map[string]interface{}  "Model call failed or reply unusable"
// @Failure      503  {object}  map[string]interface{}  "AI service unavailable"
// @Router       /meetings/{id}/evaluations [post]
func (h *Evaluation) Evaluate(c echo.Context) error {
	id, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req evaluation.EvaluateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	stored, err := h.evaluationService.Evaluate(c.Request().Context(), id, entities.Mode(req.Mode))
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, presenter.ToEvaluationResponse(stored))
}

// ListForMeeting handles GET /meetings/:id/evaluations
// @Summary      List meeting evaluations
// @Description  Lists the stored evaluations of a meeting, one per mode
// @Tags         Evaluations
// @Produce      json
// @Param        id    path   string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.ListResponse  "Evaluations"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/evaluations [get]
func (h *Evaluation) ListForMeeting(c echo.Context) error {
	id, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	list, err := h.evaluationService.ListByMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, presenter.ToEvaluationListResponse(list))
}

// Get handles GET /meetings/:id/evaluations/:mode
// @Summary      Get evaluation
// @Description  Gets the stored evaluation of a meeting for one mode
// @Tags         Evaluations
// @Produce      json
// @Param        id    path   string  true  "Meeting ID (UUID)"
// @Param        mode  path   string  true  "Evaluation mode (4.1/o3-mini/o3-high)"
// @Success      200  {object}  evaluation.EvaluationResponse  "Evaluation"
// @Failure      400  {object}  map[string]interface{}  "Invalid meeting ID or mode"
// @Failure      404  {object}  map[string]interface{}  "Evaluation not found"
// @Router       /meetings/{id}/evaluations/{mode} [get]
func (h *Evaluation) Get(c echo.Context) error {
	id, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	mode, err := modeParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	stored, err := h.evaluationService.Get(c.Request().Context(), id, mode)
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, presenter.ToEvaluationResponse(stored))
}

// List handles GET /evaluations?mode=
// @Summary      List evaluations
// @Description  Lists stored evaluations, optionally filtered by mode
// @Tags         Evaluations
// @Produce      json
// @Param        mode  query  string  false  "Evaluation mode filter"
// @Success      200  {object}  common.ListResponse  "Evaluations"
// @Failure      400  {object}  map[string]interface{}  "Invalid mode"
// @Router       /evaluations [get]
func (h *Evaluation) List(c echo.Context) error {
	var req evaluation.ListEvaluationsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	var (
		list []*entities.StoredEvaluation
		err  error
	)
	if req.Mode == "" {
		list, err = h.evaluationService.ListAll(ctx)
	} else {
		list, err = h.evaluationService.ListByMode(ctx, entities.Mode(req.Mode))
	}
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, presenter.ToEvaluationListResponse(list))
}

// Clear handles DELETE /evaluations
// @Summary      Clear evaluations
// @Description  Deletes every stored evaluation and analysis snapshot
// @Tags         Evaluations
// @Produce      json
// @Success      200  {object}  common.DeletedResponse  "Rows deleted"
// @Failure      500  {object}  map[string]interface{}  "Database query failed"
// @Router       /evaluations [delete]
func (h *Evaluation) Clear(c echo.Context) error {
	n, err := h.evaluationService.Clear(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, common.DeletedResponse{Deleted: n})
}

// Batch handles POST /evaluations/batch
// @Summary      Evaluate all meetings
// @Description  Evaluates every meeting under one mode with bounded concurrency; per-meeting failures are reported
// @Tags         Evaluations
// @Accept       json
// @Produce      json
// @Param        request  body  evaluation.BatchRequest  true  "Mode and concurrency"
// @Success      200  {object}  evaluation.BatchResponse  "Batch outcome"
// @Failure      400  {object}  map[string]interface{}  "Invalid mode or concurrency"
// @Router       /evaluations/batch [post]
func (h *Evaluation) Batch(c echo.Context) error {
	var req evaluation.BatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Concurrency == 0 {
		req.Concurrency = defaultBatchConcurrency
	}

	batch, err := h.evaluationService.EvaluateAll(c.Request().Context(), entities.Mode(req.Mode), req.Concurrency)
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, presenter.ToBatchResponse(batch))
}
