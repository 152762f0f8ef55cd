package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/innovators-table/followup-assistant/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	contacts *ContactsController
	followup *FollowupController
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, contacts *ContactsController, followup *FollowupController) *Router {
	return &Router{
		cfg:      cfg,
		contacts: contacts,
		followup: followup,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	rt.setupContactRoutes(v1)
	rt.setupRunRoutes(v1)
	rt.setupArtifactRoutes(v1)
}

// setupContactRoutes configures CRM lookup routes
func (rt *Router) setupContactRoutes(g *echo.Group) {
	contactGroup := g.Group("/contacts")

	if rt.contacts != nil {
		contactGroup.POST("/resolve", rt.contacts.Resolve)
		contactGroup.POST("/test", rt.contacts.Test)
	} else {
		contactGroup.POST("/resolve", rt.notImplemented)
		contactGroup.POST("/test", rt.notImplemented)
	}
}

// setupRunRoutes configures booklet generation routes
func (rt *Router) setupRunRoutes(g *echo.Group) {
	runGroup := g.Group("/runs")

	if rt.followup != nil {
		runGroup.POST("", rt.followup.Generate)
		runGroup.POST("/csv", rt.followup.GenerateCSV)
		runGroup.GET("/:id", rt.followup.GetRun)
		runGroup.GET("/:id/download", rt.followup.Download)
		runGroup.POST("/:id/publish", rt.followup.Publish)
	} else {
		runGroup.POST("", rt.notImplemented)
		runGroup.POST("/csv", rt.notImplemented)
		runGroup.GET("/:id", rt.notImplemented)
		runGroup.GET("/:id/download", rt.notImplemented)
		runGroup.POST("/:id/publish", rt.notImplemented)
	}
}

// setupArtifactRoutes configures archived artifact routes
func (rt *Router) setupArtifactRoutes(g *echo.Group) {
	artifactGroup := g.Group("/artifacts")

	if rt.followup != nil {
		artifactGroup.GET("", rt.followup.Artifacts)
		artifactGroup.GET("/:name", rt.followup.ArtifactLink)
	} else {
		artifactGroup.GET("", rt.notImplemented)
		artifactGroup.GET("/:name", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
