package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/summary-evaluator/internal/adapter/dto/analysis"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/presenter"
	"github.com/johnquangdev/summary-evaluator/internal/domain/entities"
	analysisUsecase "github.com/johnquangdev/summary-evaluator/internal/usecase/analysis"
)

// Analysis handles aggregate analysis requests
type Analysis struct {
	analysisService analysisUsecase.Service
	logger          *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService analysisUsecase.Service, logger *zap.Logger) *Analysis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analysis{analysisService: analysisService, logger: logger}
}

// Analyze handles POST /analysis
// @Summary      Analyze results
// @Description  Aggregates stored evaluations per mode and explains each criterion
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request  body  analysis.AnalyzeRequest  false  "Modes (all when empty)"
// @Success      200  {object}  common.ListResponse  "Analyses"
// @Failure      400  {object}  map[string]interface{}  "Invalid mode"
// @Failure      404  {object}  map[string]interface{}  "No evaluations to analyze"
// @Router       /analysis [post]
func (h *Analysis) Analyze(c echo.Context) error {
	var req analysis.AnalyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	modes := make([]entities.Mode, len(req.Modes))
	for i, m := range req.Modes {
		modes[i] = entities.Mode(m)
	}

	analyses, err := h.analysisService.AnalyzeAll(c.Request().Context(), modes)
	if err != nil && len(analyses) == 0 {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	if err != nil {
		// partial success: report what was produced
		h.logger.Warn("⚠️ Some modes failed to analyze", zap.Error(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToAnalysisListResponse(analyses))
}

// Latest handles GET /analysis/:mode
// @Summary      Get latest analysis
// @Description  Gets the last analysis computed for a mode
// @Tags         Analysis
// @Produce      json
// @Param        mode  path   string  true  "Evaluation mode (4.1/o3-mini/o3-high)"
// @Success      200  {object}  analysis.AnalysisResponse  "Analysis"
// @Failure      404  {object}  map[string]interface{}  "Analysis not found"
// @Router       /analysis/{mode} [get]
func (h *Analysis) Latest(c echo.Context) error {
	mode, err := modeParam(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	a, err := h.analysisService.Latest(c.Request().Context(), mode)
	if err != nil {
		return HandleError(h.logger, c, toAppError(c, err))
	}
	return HandleSuccess(h.logger, c, presenter.ToAnalysisResponse(a))
}
