package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/SscSPs/demerit_registry/internal/adapters/database/pgsql"
	"github.com/SscSPs/demerit_registry/internal/adapters/flatfile"
	portsrepo "github.com/SscSPs/demerit_registry/internal/core/ports/repositories"
	"github.com/SscSPs/demerit_registry/internal/core/services"
	"github.com/SscSPs/demerit_registry/internal/handlers"
	"github.com/SscSPs/demerit_registry/internal/middleware"
	"github.com/SscSPs/demerit_registry/internal/platform/config"
	"github.com/SscSPs/demerit_registry/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

const shutdownTimeout = 10 * time.Second

// @title Demerit Registry API
// @version 1.0
// @description Person records, demerit points and licence suspension.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open record store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	container := services.NewServiceContainer(cfg, repos)

	switch cfg.Mode {
	case config.ModeDemo:
		err = runDemo(ctx, os.Stdout, container.Person)
	default:
		err = serve(ctx, cfg, logger, func(r *gin.Engine) error {
			return handlers.RegisterRoutes(r, cfg, container)
		})
	}
	if err != nil {
		logger.Error("Exiting with error", slog.String("mode", cfg.Mode), slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}
}

// openStore builds the configured repository and a func releasing it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if err := pgsql.EnsureSchema(ctx, pool); err != nil {
			database.ClosePgxPool(pool)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool, logger), func() { database.ClosePgxPool(pool) }, nil
	default:
		store := flatfile.NewPersonStore(afero.NewOsFs(), cfg.StorePath, logger)
		logger.Info("Using flat file store", slog.String("path", store.Path()))
		return portsrepo.RepositoryProvider{PersonRepo: store}, func() {}, nil
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, register func(*gin.Engine) error) error {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.SetupValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, metrics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.New(corsConfig(cfg)), middleware.Metrics())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	if err := register(r); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "X-Request-ID")
	c.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	if len(cfg.CORSAllowedOrigins) == 0 || slices.Contains(cfg.CORSAllowedOrigins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.CORSAllowedOrigins
	return c
}
