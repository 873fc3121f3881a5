package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"thesis-gallery/internal/config"
	"thesis-gallery/internal/observability"
	"thesis-gallery/internal/platform/keystore"
	"thesis-gallery/internal/platform/server"
	"thesis-gallery/internal/platform/source"
	"thesis-gallery/internal/web/handlers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	obsConfig := observability.LoadConfig()
	if err := obsConfig.Validate(); err != nil {
		panic(err)
	}
	logger := observability.NewLogger(obsConfig)
	otel.SetErrorHandler(otel.ErrorHandlerFunc(logger.OTELErrorHandler()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := observability.NewProvider(ctx, obsConfig)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("failed to initialize telemetry")
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx).Err(err).Msg("telemetry shutdown failed")
		}
	}()

	loader, err := source.NewLoaderFromConfig(cfg.Catalog, *logger.GetZerolog())
	if err != nil {
		logger.Error(ctx).Err(err).Msg("failed to configure catalog source")
		os.Exit(1)
	}

	items, facets, err := loader.Load(ctx)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("failed to load catalog")
		os.Exit(1)
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("failed to open preference store")
		os.Exit(1)
	}

	handler := handlers.New(items, facets, store, cfg, logger)
	if obsConfig.MetricsEnabled {
		metrics, err := observability.NewHTTPMetrics(provider.Meter("thesis-gallery/http"))
		if err != nil {
			logger.Error(ctx).Err(err).Msg("failed to create http metrics")
			os.Exit(1)
		}
		handler = handler.WithMetrics(metrics)
	}

	srv := server.New(cfg, handler.Routes())

	go func() {
		logger.Info(ctx).
			Str("addr", srv.Addr).
			Str("variant", cfg.Variant).
			Int("items", len(items)).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx).Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background()).Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx).Err(err).Msg("forced shutdown")
	}
}

// newStore picks the preference backend: Redis when caching is enabled,
// otherwise a file store under the state directory.
func newStore(cfg *config.Config, logger *observability.Logger) (*keystore.Adapter, error) {
	log := *logger.GetZerolog()

	if cfg.Cache.Enabled {
		redis, err := keystore.NewRedis(cfg.Cache)
		if err != nil {
			return nil, err
		}
		return keystore.NewAdapter(redis, log), nil
	}

	file, err := keystore.NewFile(cfg.StateDir)
	if err != nil {
		return nil, err
	}
	return keystore.NewAdapter(file, log), nil
}
