package http

import (
	"time"

	"taskboard/internal/ai"
	"taskboard/internal/config"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes wires every endpoint. The same API is mounted under
// /api/v1 and the legacy /api prefix.
func RegisterRoutes(r *gin.Engine, db *mongo.Database, cfg *config.Config, version string) *handlers.Handler {
	advisor := ai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.OpenAIModel)
	hub := ws.NewHub()
	h := handlers.NewHandler(db, advisor, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	rateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	rl := middleware.RedisRateLimit(cfg.APIRateLimit, rateWindow)
	if cfg.RedisAddr == "" {
		rl = middleware.SimpleRateLimit(cfg.APIRateLimit, rateWindow)
	}

	v1 := r.Group("/api/v1")
	v1.Use(rl)
	registerAPIRoutes(v1, h)

	// Legacy /api routes kept for backward compatibility
	api := r.Group("/api")
	api.Use(rl)
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h)

	// Board event stream
	r.GET("/ws", h.WS)

	return h
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	// Boards
	boards := api.Group("/boards")
	boards.Use(middleware.JWT())
	{
		boards.POST("", h.CreateBoard)
		boards.GET("", h.GetBoards)
		boards.GET("/:id", h.GetBoard)
		boards.PUT("/:id", h.UpdateBoard)
		boards.DELETE("/:id", h.DeleteBoard)
		boards.POST("/:id/members", h.AddMember)
		boards.POST("/:id/labels", h.CreateLabel)
		boards.GET("/:id/labels", h.GetLabels)
	}

	// Tasks
	tasks := api.Group("/tasks")
	tasks.Use(middleware.JWT())
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.GetTasks)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.POST("/:id/improve-description", h.ImproveDescription)
		tasks.GET("/:id/ai-suggestions", h.GetAISuggestions)
	}

	// Labels
	api.DELETE("/labels/:id", middleware.JWT(), h.DeleteLabel)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboard.Use(middleware.JWT())
	{
		dashboard.GET("/metrics", h.DashboardMetrics)
		dashboard.GET("/analytics", h.TaskAnalytics)
	}
}
