package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/summary-evaluator/errors"
	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/summary-evaluator/internal/usecase/errors"
	"github.com/johnquangdev/summary-evaluator/pkg/ai"
	"github.com/johnquangdev/summary-evaluator/pkg/validator"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated is HandleSuccess with 201 Created
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError translates use case errors into their HTTP form
func toAppError(c echo.Context, err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return err
	}

	id, mode := c.Param("id"), c.Param("mode")

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrInvalidMode):
		return errors.ErrInvalidMode(mode)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidConcurrency):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingInvalid),
		stdErrors.Is(err, usecaseErrors.ErrFixtureInvalid):
		return errors.ErrMeetingInvalid(err)
	case stdErrors.Is(err, usecaseErrors.ErrEvaluationNotFound):
		return errors.ErrEvaluationNotFound(id, mode)
	case stdErrors.Is(err, usecaseErrors.ErrEvaluationFailed):
		if ai.IsRateLimited(err) {
			return errors.ErrAIQuotaExceeded()
		}
		// the provider kept answering 5xx through every client retry
		if ai.StatusCode(err) >= http.StatusInternalServerError {
			return errors.ErrAIServiceUnavailable("openai")
		}
		return errors.ErrEvaluationFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrEvaluationParse):
		return errors.ErrEvaluationParse(err)
	case stdErrors.Is(err, usecaseErrors.ErrNoEvaluations):
		return errors.ErrAnalysisEmpty(mode)
	case stdErrors.Is(err, usecaseErrors.ErrAnalysisNotFound):
		return errors.ErrAnalysisNotFound(mode)
	case stdErrors.Is(err, usecaseErrors.ErrExportDisabled):
		return errors.ErrServiceDisabled("storage")
	}

	var storageErr *usecaseErrors.StorageError
	if stdErrors.As(err, &storageErr) {
		return errors.ErrDBQueryFailed(storageErr.Op, err)
	}
	return errors.ErrInternal(err)
}

// bindAndValidate decodes the request into req and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrInvalidPayload(err)
		fields := validator.FieldErrors(err)
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msgs := make([]string, 0, len(keys))
		for _, k := range keys {
			appErr = appErr.WithDetail(k, fields[k])
			msgs = append(msgs, fmt.Sprintf("%s %s", k, fields[k]))
		}
		if len(msgs) > 0 {
			appErr.Raw = stdErrors.New(strings.Join(msgs, "; "))
		}
		return appErr
	}
	return nil
}

// meetingIDParam parses the :id path parameter
func meetingIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("invalid meeting id").WithDetail("id", c.Param("id"))
	}
	return id, nil
}

// modeParam parses the :mode path parameter
func modeParam(c echo.Context) (entities.Mode, error) {
	mode, err := entities.ParseMode(c.Param("mode"))
	if err != nil {
		return "", errors.ErrInvalidMode(c.Param("mode"))
	}
	return mode, nil
}
