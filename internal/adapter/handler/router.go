package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/summary-evaluator/errors"
	"github.com/johnquangdev/summary-evaluator/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	meetingHandler    *Meeting
	evaluationHandler *Evaluation
	analysisHandler   *Analysis
	exportHandler     *Export
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, evaluationHandler *Evaluation, analysisHandler *Analysis, exportHandler *Export) *Router {
	return &Router{
		cfg:               cfg,
		meetingHandler:    meetingHandler,
		evaluationHandler: evaluationHandler,
		analysisHandler:   analysisHandler,
		exportHandler:     exportHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupEvaluationRoutes(v1)
	rt.setupAnalysisRoutes(v1)
	rt.setupExportRoutes(v1)

	v1.RouteNotFound("/*", rt.routeNotFound)
}

// setupMeetingRoutes configures the meeting catalogue and per-meeting evaluations
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.GET("", rt.meetingHandler.List)
	meetings.POST("", rt.meetingHandler.Create)
	meetings.POST("/import", rt.meetingHandler.Import)
	meetings.GET("/:id", rt.meetingHandler.Get)
	meetings.GET("/:id/transcript", rt.meetingHandler.Transcript)

	meetings.POST("/:id/evaluations", rt.evaluationHandler.Evaluate)
	meetings.GET("/:id/evaluations", rt.evaluationHandler.ListForMeeting)
	meetings.GET("/:id/evaluations/:mode", rt.evaluationHandler.Get)
}

func (rt *Router) setupEvaluationRoutes(g *echo.Group) {
	evaluations := g.Group("/evaluations")

	evaluations.GET("", rt.evaluationHandler.List)
	evaluations.DELETE("", rt.evaluationHandler.Clear)
	evaluations.POST("/batch", rt.evaluationHandler.Batch)
}

func (rt *Router) setupAnalysisRoutes(g *echo.Group) {
	analysis := g.Group("/analysis")

	analysis.POST("", rt.analysisHandler.Analyze)
	analysis.GET("/:mode", rt.analysisHandler.Latest)
}

// setupExportRoutes configures export routes. Without object storage they answer 503.
func (rt *Router) setupExportRoutes(g *echo.Group) {
	exports := g.Group("/exports")

	exports.POST("/:mode", rt.exportHandler.Create)
	exports.GET("/:mode", rt.exportHandler.List)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}

// routeNotFound answers unknown /v1 paths with the error envelope
func (rt *Router) routeNotFound(c echo.Context) error {
	return HandleError(nil, c, errors.ErrNotFound("route").WithDetail("path", c.Request().URL.Path))
}
