// Command pokedex-proxy serves PokeAPI resources as reshaped JSON over a
// small read-only HTTP API.
package main

import (
	"context"
	"net/http"

	"github.com/Sternrassler/pokedex-client/internal/config"
	"github.com/Sternrassler/pokedex-client/pkg/logging"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
	"github.com/Sternrassler/pokedex-client/pkg/tracing"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(appOptions(), fx.NopLogger).Run()
}

func appOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			// Config
			newConfig,
			newLogger,

			// Client
			newPokedex,

			// HTTP Server
			newRouter,
			newHTTPServer,
		),
		fx.Invoke(
			setupTracer,
			startServer,
		),
	)
}

// --- Providers ---

func newConfig() (*config.Config, error) {
	return config.Load()
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logging.Setup(cfg.Log)
	return logging.NewLogger("pokedex-proxy")
}

func newPokedex(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*pokedex.Pokedex, error) {
	dex, err := pokedex.New(cfg.API)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("base_url", cfg.API.BaseURL).
		Dur("timeout", cfg.API.Timeout).
		Int("page_size", cfg.API.PageSize).
		Msg("Pokedex client created")

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return dex.Close()
		},
	})
	return dex, nil
}

func newRouter(dex *pokedex.Pokedex, logger zerolog.Logger) *mux.Router {
	return NewRouter(dex, logger)
}

func newHTTPServer(cfg *config.Config, router *mux.Router) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// --- Invokers ---

func setupTracer(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) error {
	shutdown, err := tracing.InitTracer(context.Background(), cfg.Tracing)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracer")
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Shutting down tracer provider")
			return shutdown(ctx)
		},
	})
	return nil
}

func startServer(lc fx.Lifecycle, cfg *config.Config, server *http.Server, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info().Str("address", server.Addr).Msg("Starting pokedex proxy")
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error().Err(err).Msg("HTTP server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			logger.Info().Msg("Stopping pokedex proxy")
			return server.Shutdown(ctx)
		},
	})
}
