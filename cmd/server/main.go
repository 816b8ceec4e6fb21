package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"gamecatalog/docs"
	"gamecatalog/internal/auth"
	"gamecatalog/internal/cache"
	"gamecatalog/internal/config"
	"gamecatalog/internal/db"
	"gamecatalog/internal/handler"
	"gamecatalog/internal/logger"
	"gamecatalog/internal/metrics"
	"gamecatalog/internal/middleware"
	"gamecatalog/internal/repository"
	"gamecatalog/internal/router"
	"gamecatalog/internal/service"
	"gamecatalog/internal/storage"
)

// @title Game Catalog API
// @version 1.0
// @description Browser game catalog with cookie sessions, likes, plays and rankings.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.App.Name, logger.ParseLevel(cfg.App.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.NewMySQL(cfg.MySQL.DSN)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn("redis unavailable, continuing without cache", "error", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	pictures, err := storage.NewPictureStore(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("picture store: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)

	// Auth
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, service.AuthSettings{
		BcryptCost:           cfg.Auth.BcryptCost,
		LoginHistory:         cfg.Auth.LoginHistory,
		SuspiciousDistanceKm: cfg.Geo.SuspiciousDistanceKm,
	}, log, m)
	listingService := service.NewListingService(listingRepo, userRepo, log, m)
	userService := service.NewUserService(userRepo, listingRepo, pictures, cacheClient, cfg.Auth.LoginHistory, log)

	guards, err := middleware.NewGuards(authService, listingService, cfg.Auth.CookieName)
	if err != nil {
		return fmt.Errorf("guards: %w", err)
	}

	if cfg.HTTP.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.HTTP.SwaggerHost
	}

	e := echo.New()
	router.Register(e, cfg.HTTP, router.Deps{
		Log:         log,
		Metrics:     m,
		Gatherer:    prometheus.DefaultGatherer,
		Guards:      guards,
		AuthLimiter: middleware.NewRedisRateLimiterStore(cacheClient, "auth", cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow),
	}, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, handler.CookieSettings{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}),
		Users:    handler.NewUserHandler(userService),
		Listings: handler.NewListingHandler(listingService),
		Rankings: handler.NewRankingHandler(listingService),
	})
	e.Server.ReadTimeout = cfg.HTTP.ReadTimeout
	e.Server.WriteTimeout = cfg.HTTP.WriteTimeout

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.HTTP.Port, "swagger", "/swagger/index.html")
		if err := e.Start(":" + cfg.HTTP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server start: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
