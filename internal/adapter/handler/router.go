package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prepdeck/interview-coach/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	interviewHandler *Interview
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, interviewHandler *Interview) *Router {
	return &Router{
		cfg:              cfg,
		interviewHandler: interviewHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupInterviewRoutes(v1)
}

// setupInterviewRoutes configures interview session routes
func (rt *Router) setupInterviewRoutes(g *echo.Group) {
	interviews := g.Group("/interviews")

	interviews.POST("", rt.interviewHandler.Start)
	interviews.GET("", rt.interviewHandler.List)
	interviews.GET("/:id", rt.interviewHandler.Get)
	interviews.POST("/:id/answers", rt.interviewHandler.SubmitAnswer)
	interviews.POST("/:id/end", rt.interviewHandler.End)
	interviews.GET("/:id/report", rt.interviewHandler.GetReport)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
