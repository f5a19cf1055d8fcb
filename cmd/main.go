package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/udaan-app/udaan-backend/internal/db"
	"github.com/udaan-app/udaan-backend/internal/handlers"
	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/middleware"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/scheduler"
	"github.com/udaan-app/udaan-backend/internal/server"
	"github.com/udaan-app/udaan-backend/internal/services"
	"github.com/udaan-app/udaan-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := utils.GetEnv("PORT", "8080", log)
	frontendURL := utils.GetEnv("FRONTEND_URL", "", log)
	jwtSecret := utils.GetEnv("JWT_SECRET", "changeme", log)
	openAIModel := utils.GetEnv("OPENAI_MODEL", "gpt-4o-mini", log)
	careerTemp := utils.GetEnvAsFloat("CAREER_TEMP", 0.0, log)
	fallbackCacheTTL := utils.GetEnvAsInt("CAREER_FALLBACK_CACHE_TTL", 3600, log)
	chatCacheTTL := utils.GetEnvAsInt("CHAT_CACHE_TTL", 600, log)
	rateLimitPerMin := utils.GetEnvAsInt("RATE_LIMIT_PER_MIN", 60, log)
	insightCron := utils.GetEnv("INSIGHT_CRON", "@daily", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (optional; rate limiting degrades to a no-op without it)
	var rdb *redis.Client
	if redisURL := utils.GetEnv("REDIS_URL", "", log); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Warn("Invalid REDIS_URL, continuing without rate limiting", "error", err)
		} else {
			rdb = redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				log.Warn("Redis unreachable, continuing without rate limiting", "error", err)
				rdb = nil
			}
			cancel()
		}
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	moodRepo := repos.NewMoodRepo(thePG, log)
	journalRepo := repos.NewJournalRepo(thePG, log)
	taskRepo := repos.NewTaskRepo(thePG, log)
	moodInsightRepo := repos.NewMoodInsightRepo(thePG, log)
	careerSuggestionRepo := repos.NewCareerSuggestionRepo(thePG, log)
	conversationRepo := repos.NewConversationRepo(thePG, log)

	// Career fallback ruleset (built-in unless overridden)
	careerRules := services.DefaultFallbackRuleset()
	if rulesPath := utils.GetEnv("CAREER_RULES_PATH", "", log); rulesPath != "" {
		loaded, err := services.LoadFallbackRuleset(rulesPath)
		if err != nil {
			log.Warn("Failed to load fallback ruleset override, using built-in", "error", err)
		} else {
			careerRules = loaded
			log.Info("Loaded fallback ruleset override", "path", rulesPath, "rules", len(loaded.Rules))
		}
	}

	// OpenAI (optional; career and chat degrade to rule-based output)
	var openaiClient services.OpenAIClient
	if client, err := services.NewOpenAIClient(log); err != nil {
		log.Warn("OpenAI client unavailable, using rule-based responses", "error", err)
	} else {
		openaiClient = client
	}

	// Services
	log.Info("Setting up Services from main...")
	careerCache := services.NewTTLCache(time.Duration(fallbackCacheTTL) * time.Second)
	chatCache := services.NewTTLCache(time.Duration(chatCacheTTL) * time.Second)
	careerService := services.NewCareerService(thePG, log, openaiClient, careerCache, careerRules, careerSuggestionRepo, openAIModel, careerTemp)
	chatService := services.NewChatService(log, openaiClient, chatCache, conversationRepo, moodRepo, openAIModel)
	moodService := services.NewMoodService(log, moodRepo)
	journalService := services.NewJournalService(log, journalRepo, moodRepo)
	taskService := services.NewTaskService(log, taskRepo, moodRepo)
	insightsService := services.NewInsightsService(log, moodRepo, journalRepo, taskRepo, moodInsightRepo)
	userService := services.NewUserService(log, userRepo)

	// Handlers
	careerHandler := handlers.NewCareerHandler(log, careerService)
	chatHandler := handlers.NewChatHandler(log, chatService)
	moodHandler := handlers.NewMoodHandler(log, moodService)
	journalHandler := handlers.NewJournalHandler(log, journalService)
	taskHandler := handlers.NewTaskHandler(log, taskService)
	insightsHandler := handlers.NewInsightsHandler(log, insightsService)
	userHandler := handlers.NewUserHandler(log, userService)

	// Scheduler
	snapshotScheduler := scheduler.New(log, moodRepo, insightsService)
	if err := snapshotScheduler.Start(insightCron); err != nil {
		log.Warn("Failed to start insight scheduler", "error", err)
	}
	defer snapshotScheduler.Stop()

	// Router
	router := server.NewRouter(server.RouterConfig{
		FrontendURL:     frontendURL,
		AuthOptional:    middleware.AuthOptional(userRepo, jwtSecret, log),
		RequireUser:     middleware.RequireUser(),
		RateLimit:       middleware.RateLimit(rdb, rateLimitPerMin, log),
		CareerHandler:   careerHandler,
		ChatHandler:     chatHandler,
		MoodHandler:     moodHandler,
		JournalHandler:  journalHandler,
		TaskHandler:     taskHandler,
		InsightsHandler: insightsHandler,
		UserHandler:     userHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
