package handler

import (
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/summary-evaluator/errors"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/meeting"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/presenter"
	meetingUsecase "github.com/johnquangdev/summary-evaluator/internal/usecase/meeting"
)

// maxFixtureBytes bounds the body of a fixture import
const maxFixtureBytes = 5 << 20

// Meeting handles meeting catalogue requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{meetingService: meetingService, logger: logger}
}

// List handles GET /meetings
// @Summary      List meetings
// @Description  Lists every meeting in the catalogue
// @Tags         Meetings
// @Produce      json
// @Success      200  {object}  common.ListResponse  "Meetings"
// @Failure      500  {object}  map[string]interface{}  "Failed to list meetings"
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	meetings, err := h.meetingService.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings))
}

// Get handles GET /meetings/:id
// @Summary      Get meeting
// @Description  Gets a meeting with its transcript, notes and both summaries
// @Tags         Meetings
// @Produce      json
// @Param        id    path   string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse  "Meeting details"
// @Failure      400  {object}  map[string]interface{}  "Invalid meeting ID"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	id, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// Create handles POST /meetings
// @Summary      Create meeting
// @Description  Adds a meeting with two summary variants to evaluate
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body  meeting.CreateMeetingRequest  true  "Meeting"
// @Success      201  {object}  meeting.MeetingResponse  "Meeting created"
// @Failure      400  {object}  map[string]interface{}  "Invalid request or validation failed"
// @Router       /meetings [post]
func (h *Meeting) Create(c echo.Context) error {
	var req meeting.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m := presenter.ToMeetingEntity(&req)
	if err := h.meetingService.Create(c.Request().Context(), m); err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m))
}

// Import handles POST /meetings/import with a YAML fixture body
// @Summary      Import meetings
// @Description  Imports a YAML list of meetings, updating meetings whose id already exists
// @Tags         Meetings
// @Accept       application/x-yaml
// @Produce      json
// @Param        fixture  body  string  true  "YAML fixture"
// @Success      200  {object}  map[string]interface{}  "Number of meetings imported"
// @Failure      400  {object}  map[string]interface{}  "Invalid fixture"
// @Router       /meetings/import [post]
func (h *Meeting) Import(c echo.Context) error {
	body := c.Request().Body
	if body == nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("fixture body is required"))
	}

	n, err := h.meetingService.Import(c.Request().Context(), io.LimitReader(body, maxFixtureBytes))
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, map[string]int{"imported": n})
}

// Transcript handles GET /meetings/:id/transcript
// @Summary      Get transcript turns
// @Description  Splits the meeting transcript into Me/Them turns with per-speaker stats
// @Tags         Meetings
// @Produce      json
// @Param        id    path   string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.TranscriptResponse  "Transcript turns"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/transcript [get]
func (h *Meeting) Transcript(c echo.Context) error {
	id, err := meetingIDParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.meetingService.Turns(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, presenter.ToTranscriptResponse(t))
}
