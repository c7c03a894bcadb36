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

	pkgvalidator "github.com/johnquangdev/summary-evaluator/pkg/validator"

	"github.com/johnquangdev/summary-evaluator/internal/adapter/handler"
	"github.com/johnquangdev/summary-evaluator/internal/adapter/repository"
	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/cache"
	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/summary-evaluator/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/storage"
	"github.com/johnquangdev/summary-evaluator/internal/usecase/analysis"
	"github.com/johnquangdev/summary-evaluator/internal/usecase/evaluation"
	"github.com/johnquangdev/summary-evaluator/internal/usecase/export"
	"github.com/johnquangdev/summary-evaluator/internal/usecase/meeting"
	pkgai "github.com/johnquangdev/summary-evaluator/pkg/ai"
	"github.com/johnquangdev/summary-evaluator/pkg/config"
)

// @title           Summary Evaluator API
// @version         1.0
// @description     Scores two summary variants of a meeting against its transcript and the user's notes, and aggregates results per evaluation mode.

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Structured request logging
	e.Use(httpmw.RequestLogger(logger))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run scripts/migrate.go.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Analysis cache: Redis when enabled, otherwise in-process
	var store cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient, "summary-evaluator:")
	} else {
		log.Println("⚠️  Redis disabled, using in-memory analysis cache")
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		store = memStore
	}

	// Object storage is optional; exports answer 503 without it
	var objects export.ObjectStore
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		objects = minioClient
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	log.Println("🤖 Initializing model client...")
	completer := pkgai.NewClient(&cfg.OpenAI, logger)

	// Initialize services
	meetingService := meeting.NewService(meetingRepo, logger)
	evaluationService := evaluation.NewService(meetingRepo, evaluationRepo, analysisRepo, completer, store, &cfg.OpenAI, logger)
	analysisService := analysis.NewService(evaluationRepo, analysisRepo, completer, store, cfg, logger)
	exportService := export.NewService(evaluationRepo, objects, logger)

	if cfg.Server.SeedFile != "" {
		log.Printf("🌱 Importing meetings from %s", cfg.Server.SeedFile)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := meetingService.ImportFile(ctx, cfg.Server.SeedFile)
		cancel()
		if err != nil {
			log.Fatalf("Failed to import meetings: %v", err)
		}
		log.Printf("✅ Imported %d meetings", n)
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg,
		handler.NewMeetingHandler(meetingService, logger),
		handler.NewEvaluationHandler(evaluationService, logger),
		handler.NewAnalysisHandler(analysisService, logger),
		handler.NewExportHandler(exportService, logger),
	)
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

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
