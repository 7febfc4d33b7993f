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

	pkgvalidator "github.com/MatheusBP09/sales-insight-buddy/pkg/validator"

	"github.com/MatheusBP09/sales-insight-buddy/internal/adapter/handler"
	"github.com/MatheusBP09/sales-insight-buddy/internal/adapter/repository"
	"github.com/MatheusBP09/sales-insight-buddy/internal/infrastructure/cache"
	"github.com/MatheusBP09/sales-insight-buddy/internal/infrastructure/database"
	"github.com/MatheusBP09/sales-insight-buddy/internal/infrastructure/storage"
	"github.com/MatheusBP09/sales-insight-buddy/internal/usecase/analysis"
	"github.com/MatheusBP09/sales-insight-buddy/internal/usecase/ingestion"
	pkgai "github.com/MatheusBP09/sales-insight-buddy/pkg/ai"
	"github.com/MatheusBP09/sales-insight-buddy/pkg/config"
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

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// Webhook producers call from arbitrary origins, so CORS stays open
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db, logger); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Ingest lock: redis when available, in-memory otherwise
	var locker ingestion.Locker
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		locker = cache.NewRedisLocker(redisClient)
	} else {
		log.Println("⚠️  Redis disabled, using in-memory ingest lock")
		locker = cache.NewMemoryLocker()
	}

	// Payload archive is optional
	var archiver ingestion.PayloadArchiver
	if cfg.Storage.Enabled {
		log.Println("📦 Connecting to object storage...")
		archive, err := storage.NewPayloadArchive(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archiver = archive
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	uow := repository.NewUnitOfWork(db)

	// Initialize analysis components
	log.Println("🤖 Initializing analysis components...")
	openAIClient := pkgai.NewOpenAIClient(&cfg.OpenAI)
	analysisService := analysis.NewService(openAIClient, logger)

	// Initialize ingestion service
	log.Println("✨ Initializing ingestion service...")
	ingestService := ingestion.NewService(
		uow,
		locker,
		archiver,
		analysisService,
		cfg.Ingest.HomeDomain,
		time.Duration(cfg.Ingest.LockTTLSecs)*time.Second,
		logger,
	)

	// Initialize handlers
	log.Println("🪝 Initializing handlers...")
	webhookHandler := handler.NewWebhook(ingestService, logger)
	meetingHandler := handler.NewMeeting(uow.Repos().Meetings, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, webhookHandler, meetingHandler)
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
