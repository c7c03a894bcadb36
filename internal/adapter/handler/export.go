package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/summary-evaluator/errors"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/common"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/presenter"
	usecaseErrors "github.com/johnquangdev/summary-evaluator/internal/usecase/errors"
	exportUsecase "github.com/johnquangdev/summary-evaluator/internal/usecase/export"
)

// Export handles evaluation export requests
type Export struct {
	exportService exportUsecase.Service
	logger        *zap.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService exportUsecase.Service, logger *zap.Logger) *Export {
	return &Export{exportService: exportService, logger: logger}
}

// Create handles POST /exports/:mode
// @Summary      Export evaluations
// @Description  Uploads the evaluations and aggregate of a mode as JSON and returns a presigned URL
// @Tags         Exports
// @Produce      json
// @Param        mode  path   string  true  "Evaluation mode (4.1/o3-mini/o3-high)"
// @Success      201  {object}  evaluation.ExportResponse  "Export created"
// @Failure      500  {object}  map[string]interface{}  "Storage operation failed"
// @Failure      503  {object}  map[string]interface{}  "Storage not configured"
// @Router       /exports/{mode} [post]
func (h *Export) Create(c echo.Context) error {
	mode, err := modeParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.exportService.ExportMode(c.Request().Context(), mode)
	if err != nil {
		return HandleError(h.logger, c, exportError(c, err))
	}
	return HandleCreated(h.logger, c, presenter.ToExportResponse(res))
}

// List handles GET /exports/:mode
// @Summary      List exports
// @Description  Lists export objects stored for a mode
// @Tags         Exports
// @Produce      json
// @Param        mode  path   string  true  "Evaluation mode (4.1/o3-mini/o3-high)"
// @Success      200  {object}  common.ListResponse  "Export objects"
// @Failure      503  {object}  map[string]interface{}  "Storage not configured"
// @Router       /exports/{mode} [get]
func (h *Export) List(c echo.Context) error {
	mode, err := modeParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	files, err := h.exportService.List(c.Request().Context(), mode)
	if err != nil {
		return HandleError(h.logger, c, exportError(c, err))
	}
	return HandleSuccess(h.logger, c, common.ListResponse{Items: files, Total: len(files)})
}

// exportError reports object store failures as storage errors
func exportError(c echo.Context, err error) error {
	var storageErr *usecaseErrors.StorageError
	if stdErrors.Is(err, usecaseErrors.ErrExportDisabled) ||
		stdErrors.Is(err, usecaseErrors.ErrInvalidMode) ||
		stdErrors.As(err, &storageErr) {
		return toAppError(c, err)
	}
	return errors.ErrStorageFailed("export", err)
}
