package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/places-service/internal/api/http"
	"github.com/spec-kit/places-service/internal/api/http/handlers"
	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/events"
	"github.com/spec-kit/places-service/internal/observability"
	"github.com/spec-kit/places-service/internal/persistence"
	"github.com/spec-kit/places-service/internal/repository"
	"github.com/spec-kit/places-service/internal/service"
	"github.com/spec-kit/places-service/internal/storage"
	"github.com/spec-kit/places-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	files, err := storage.NewFileStore(cfg.Media.UploadDir)
	if err != nil {
		logger.Fatal("failed to init file store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	placeRepo := repository.NewPlaceRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartModerationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, userRepo, logger)
	userService := service.NewUserService(cfg.Auth, userRepo)
	placeService := service.NewPlaceService(placeRepo, files, dispatcher)
	favoriteService := service.NewFavoriteService(favoriteRepo)
	discoveryService := service.NewDiscoveryService(cfg.Google, redis, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService),
		Users:     handlers.NewUsersHandler(userService, authService),
		Places:    handlers.NewPlacesHandler(placeService, files),
		Favorites: handlers.NewFavoritesHandler(favoriteService),
		Discovery: handlers.NewDiscoveryHandler(discoveryService),
		Gate:      authMiddleware.Gate(httptransport.RoutePolicy()),
		MediaDir:  files.Dir(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
