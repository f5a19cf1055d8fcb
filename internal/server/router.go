package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/udaan-app/udaan-backend/internal/handlers"
)

type RouterConfig struct {
	FrontendURL     string
	AuthOptional    gin.HandlerFunc
	RequireUser     gin.HandlerFunc
	RateLimit       gin.HandlerFunc
	CareerHandler   *handlers.CareerHandler
	ChatHandler     *handlers.ChatHandler
	MoodHandler     *handlers.MoodHandler
	JournalHandler  *handlers.JournalHandler
	TaskHandler     *handlers.TaskHandler
	InsightsHandler *handlers.InsightsHandler
	UserHandler     *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	if cfg.FrontendURL != "" {
		origins = append(origins, cfg.FrontendURL)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.RateLimit)
	api.Use(cfg.AuthOptional)
	{
		// Career and chat work anonymously; identity only adds persistence.
		api.POST("/career", cfg.CareerHandler.Suggest)
		api.POST("/chat", cfg.ChatHandler.Send)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.RequireUser)
	// Mood
	protected.POST("/mood", cfg.MoodHandler.Record)
	protected.GET("/mood", cfg.MoodHandler.List)
	protected.GET("/mood/latest", cfg.MoodHandler.Latest)
	protected.GET("/mood/stats", cfg.MoodHandler.Stats)
	// Journal
	protected.POST("/journal", cfg.JournalHandler.Create)
	protected.GET("/journal", cfg.JournalHandler.List)
	protected.GET("/journal/:id", cfg.JournalHandler.Get)
	protected.PUT("/journal/:id", cfg.JournalHandler.Update)
	protected.DELETE("/journal/:id", cfg.JournalHandler.Delete)
	// Tasks
	protected.POST("/tasks", cfg.TaskHandler.Create)
	protected.GET("/tasks", cfg.TaskHandler.List)
	protected.PATCH("/tasks/:id", cfg.TaskHandler.Update)
	protected.DELETE("/tasks/:id", cfg.TaskHandler.Delete)
	// Insights
	protected.GET("/insights", cfg.InsightsHandler.Generate)
	protected.GET("/insights/mood-trends", cfg.InsightsHandler.Trends)
	// User
	protected.GET("/user/profile", cfg.UserHandler.GetProfile)
	protected.PUT("/user/profile", cfg.UserHandler.UpdateProfile)

	return router
}
