package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/prepdeck/interview-coach/pkg/validator"

	"github.com/prepdeck/interview-coach/internal/adapter/handler"
	"github.com/prepdeck/interview-coach/internal/adapter/repository"
	"github.com/prepdeck/interview-coach/internal/infrastructure/cache"
	"github.com/prepdeck/interview-coach/internal/infrastructure/database"
	"github.com/prepdeck/interview-coach/internal/usecase/interview"
	pkgai "github.com/prepdeck/interview-coach/pkg/ai"
	"github.com/prepdeck/interview-coach/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply sql-migrate migrations only when explicitly enabled in config.
	// Production deployments should run scripts/migrate.go in CI/CD instead.
	if cfg.Database.AutoMigrate {
		log.Println("🔄 Applying database migrations...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run scripts/migrate.go to manage schema")
	}

	// Initialize cache store (Redis when enabled, in-memory otherwise)
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
	} else {
		log.Println("⚠️  Redis disabled, using in-memory report cache")
		store = cache.NewMemoryStore()
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	interviewRepo := repository.NewInterviewRepository(db)

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	oracle := interview.NewGroqOracle(groqClient, cfg.Interview.OracleTimeout, logger)
	generator := interview.NewGroqGenerator(groqClient, logger)

	// Initialize interview service
	log.Println("✨ Initializing interview service...")
	interviewService := interview.NewInterviewService(
		interviewRepo,
		store,
		oracle,
		generator,
		cfg.Interview,
		logger,
	)
	interviewService.StartReaper(30 * time.Second)
	defer interviewService.StopReaper()

	// Initialize interview handler
	log.Println("🚀 Initializing interview handler...")
	interviewHandler := handler.NewInterviewHandler(interviewService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, interviewHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
