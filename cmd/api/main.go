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

	pkgvalidator "github.com/innovators-table/followup-assistant/pkg/validator"

	"github.com/innovators-table/followup-assistant/internal/adapter/handler"
	"github.com/innovators-table/followup-assistant/internal/infrastructure/cache"
	"github.com/innovators-table/followup-assistant/internal/infrastructure/external/gdocs"
	"github.com/innovators-table/followup-assistant/internal/infrastructure/external/ghl"
	"github.com/innovators-table/followup-assistant/internal/infrastructure/storage"
	"github.com/innovators-table/followup-assistant/internal/usecase/followup"
	pkgai "github.com/innovators-table/followup-assistant/pkg/ai"
	"github.com/innovators-table/followup-assistant/pkg/config"
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
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize run store: Redis when enabled, in-memory otherwise
	var runStore followup.RunStore
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis run store...")
		redisStore, err := cache.NewRedisRunStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		runStore = redisStore
	} else {
		log.Println("📦 Using in-memory run store")
		runStore = cache.NewMemoryRunStore(cfg.Followup.RunTTL)
	}

	// Initialize artifact archive (optional)
	var archiver followup.Archiver
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to artifact archive...")
		archive, err := storage.NewMinIOArchive(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize artifact archive: %v", err)
		}
		archiver = archive
	}

	// Initialize external clients
	log.Println("🤖 Initializing AI components...")
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)
	if !geminiClient.Configured() {
		log.Println("⚠️  Gemini API key not set; generation requests will be rejected")
	}

	var transcriber followup.AudioTranscriber
	asmTranscriber := pkgai.NewTranscriber(&cfg.Assembly)
	if asmTranscriber.Configured() {
		transcriber = asmTranscriber
	} else {
		log.Println("⚠️  AssemblyAI API key not set; recording URLs will be rejected")
	}

	log.Println("🔗 Initializing CRM client...")
	ghlClient := ghl.NewClient(&cfg.GHL)
	if !ghlClient.Configured() {
		log.Println("⚠️  GoHighLevel credentials not set; contact resolution disabled")
	}

	log.Println("📝 Initializing document store client...")
	docsClient := gdocs.NewClient(&cfg.GoogleDocs)
	if !docsClient.Configured() {
		log.Println("⚠️  Google Docs token not set; publication disabled")
	}

	// Initialize followup service
	log.Println("✨ Initializing followup service...")
	svc := followup.NewService(
		geminiClient,
		ghlClient,
		docsClient,
		archiver,
		transcriber,
		runStore,
		&cfg.Followup,
		logger,
	)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	contactsController := handler.NewContactsController(svc, logger)
	followupController := handler.NewFollowupController(svc, logger)

	router := handler.NewRouter(cfg, contactsController, followupController)
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
