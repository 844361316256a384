package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/lecturebot-api-go/pkg/logging"
)

// Version is reported on the root route
const Version = "1.0.0"

// NewRouter wires every route onto a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(logging.Middleware(h.Log), gin.Recovery(), h.Metrics.Middleware())

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "LectureBot Timetable API",
			"version": Version,
		})
	})
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Timetable Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/catalog", h.GetCatalog)
		api.GET("/schedule", h.GetSchedule)
		api.GET("/next", h.GetNext)
		api.GET("/next/stream", h.StreamNext)
		api.POST("/resolve", h.Resolve)
		api.GET("/context", h.GetContext)
		api.POST("/validate", h.ValidateTimetable)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
