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

	_ "github.com/stilessandgravel/backend/docs"
	"github.com/stilessandgravel/backend/internal/captcha"
	"github.com/stilessandgravel/backend/internal/config"
	"github.com/stilessandgravel/backend/internal/database"
	"github.com/stilessandgravel/backend/internal/logger"
	"github.com/stilessandgravel/backend/internal/notify"
	"github.com/stilessandgravel/backend/internal/repositories"
	"github.com/stilessandgravel/backend/internal/router"
	"github.com/stilessandgravel/backend/internal/services"
	"github.com/stilessandgravel/backend/internal/storage"
	"go.uber.org/zap"
)

// @title Stiles Sand & Gravel API
// @version 1.0
// @description Media catalog and quote request intake for the Stiles Sand & Gravel website

// @contact.name Stiles Sand & Gravel
// @contact.email info@stilessandgravel.com

// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Key required by the media refresh endpoint when MEDIA_REFRESH_KEY is set
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Stiles Sand & Gravel backend",
		zap.String("env", cfg.Env),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db, cfg.Database.Driver); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Media catalog
	mediaStorage := storage.NewLocalStorage(cfg.Media.Dir)
	mediaService := services.NewMediaService(mediaStorage, logger.Logger)
	mediaStorage.OnSkip(mediaService.ReportSkippedDir)
	mediaIndex := services.NewIndexCache(mediaService, cfg.Media.CacheTTL)
	mediaIndex.Get()

	// Quote intake
	var verifier services.CaptchaVerifier
	if cfg.Turnstile.Enabled() {
		verifier = captcha.NewTurnstile(cfg.Turnstile.Secret, cfg.Turnstile.VerifyURL, logger.Logger)
	} else {
		logger.Logger.Warn("TURNSTILE_SECRET not set, quote requests are accepted without captcha verification")
	}

	var notifier services.QuoteNotifier
	if cfg.SMTP.Enabled() {
		notifier = notify.NewMailer(cfg.SMTP, logger.Logger)
	} else {
		logger.Logger.Warn("SMTP not configured, quote notifications are disabled")
	}

	quoteRepo := repositories.NewQuoteRepository(db, logger.Logger)
	quoteService := services.NewQuoteService(quoteRepo, verifier, notifier, logger.Logger)

	// Setup router
	r := router.New(router.Dependencies{
		Config:     cfg,
		Logger:     logger.Logger,
		DB:         db,
		QuoteStore: quoteRepo,
		MediaIndex: mediaIndex,
		Quotes:     quoteService,
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("media_dir", mediaStorage.Root()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
