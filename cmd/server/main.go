package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/conference-service/internal/auth"
	"github.com/SAP-F-2025/conference-service/internal/cache"
	"github.com/SAP-F-2025/conference-service/internal/config"
	"github.com/SAP-F-2025/conference-service/internal/handlers"
	"github.com/SAP-F-2025/conference-service/internal/mailer"
	"github.com/SAP-F-2025/conference-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/conference-service/internal/scheduler"
	"github.com/SAP-F-2025/conference-service/internal/services"
	"github.com/SAP-F-2025/conference-service/internal/storage"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/SAP-F-2025/conference-service/internal/validator"
	"github.com/SAP-F-2025/conference-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := pkg.Migrate(db); err != nil {
		return err
	}

	cacheService := cache.NewNoopCache()
	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
	} else if redisClient != nil {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	store, err := storage.NewLocalFileStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	var sender mailer.Sender = mailer.NewLogSender(logger)
	if cfg.SMTP.Enabled() {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	clock := utils.SystemClock{}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL).WithRefreshTTL(cfg.RefreshTTL)

	notifier := services.NewNotificationService(repo, sender, publisher, clock, logger, services.NotifierConfig{
		FrontendURL: cfg.FrontendURL,
		Async:       cfg.NotifyAsync,
	})
	defer notifier.Close()

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      repo,
		Store:     store,
		Cache:     cacheService,
		CacheTTL:  cfg.CacheTTL,
		Notifier:  notifier,
		Tokens:    tokens,
		Validator: validator.New(),
		Clock:     clock,
		Logger:    logger,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.NewConferenceStatusJob(serviceManager.Conference(), clock, logger).Run(ctx)
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlerLogger := utils.NewSlogLogger(logger)
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(handlerLogger), utils.ContextLogger(handlerLogger))
	handlers.NewHandlerManager(serviceManager, tokens, handlerLogger).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		stop()
		wg.Wait()
		return err
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}

	wg.Wait()
	return nil
}
