package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/cafe-feedback/internal/api/http"
	"github.com/spec-kit/cafe-feedback/internal/api/http/handlers"
	"github.com/spec-kit/cafe-feedback/internal/config"
	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/events"
	"github.com/spec-kit/cafe-feedback/internal/observability"
	"github.com/spec-kit/cafe-feedback/internal/persistence"
	"github.com/spec-kit/cafe-feedback/internal/relay"
	"github.com/spec-kit/cafe-feedback/internal/repository"
	"github.com/spec-kit/cafe-feedback/internal/service"
	"github.com/spec-kit/cafe-feedback/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	store, closeStore := buildStore(cfg, logger)
	defer closeStore()

	rosterRepo := repository.NewRosterRepository(domain.SeedRoster())

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	relayClient := relay.NewClient(cfg.Relay, logger)
	if !relayClient.Enabled() {
		logger.Warn("RELAY_URL not provided; submissions stay local-only")
	}

	feedbackService := service.NewFeedbackService(ctx, cfg.Notification, service.FeedbackDependencies{
		Store:      store,
		Roster:     rosterRepo,
		Relay:      relayClient,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})
	rosterService := service.NewRosterService(cfg.Roster, rosterRepo, dispatcher, logger)
	adminService := service.NewAdminService(store, rosterRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store),
		Staff:    handlers.NewStaffHandler(rosterService),
		Feedback: handlers.NewFeedbackHandler(feedbackService),
		Admin:    handlers.NewAdminHandler(adminService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func buildStore(cfg *config.Config, logger *zap.Logger) (repository.FeedbackStore, func()) {
	switch strings.ToLower(cfg.Store.Backend) {
	case "redis":
		client := persistence.NewRedis(cfg.Redis, logger)
		return repository.NewRedisStore(client, cfg.Store.Key, logger), client.Close
	case "memory":
		logger.Warn("using in-memory feedback store; records vanish on restart")
		return repository.NewMemoryStore(), func() {}
	default:
		return repository.NewFileStore(cfg.Store.FilePath, cfg.Store.Key, logger), func() {}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
