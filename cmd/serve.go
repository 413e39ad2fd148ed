package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/overhead/internal/api"
	"github.com/UnknownOlympus/overhead/internal/config"
	"github.com/UnknownOlympus/overhead/internal/flights"
	"github.com/UnknownOlympus/overhead/internal/metrics"
	"github.com/UnknownOlympus/overhead/internal/models"
	"github.com/UnknownOlympus/overhead/internal/service"
	"github.com/UnknownOlympus/overhead/internal/weather"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const shutdownTimeout = 10 * time.Second

// runServe loads the configuration, wires the providers into the aggregator and serves
// until SIGINT or SIGTERM.
func runServe(cmd *cobra.Command, _ []string) error {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	flightProvider := flights.NewAeroAPIProvider(
		cfg.Flight.BaseURL, cfg.APIKey, cfg.RequestTimeout, cfg.Flight.RateLimit, logger,
	)
	weatherProvider := weather.NewMicroserviceProvider(
		cfg.Weather.BaseURL, cfg.RequestTimeout, cfg.Weather.RateLimit, logger,
	)

	flightService := service.NewFlightService(
		logger,
		flightProvider,
		weatherProvider,
		appMetrics,
		cfg.Workers,
		models.Location{Latitude: cfg.Weather.Latitude, Longitude: cfg.Weather.Longitude},
	)

	mux := http.NewServeMux()
	api.NewHandler(logger, flightService, cfg.RadiusMiles).Register(mux, cfg.AllowedOrigins)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// One flight search plus the weather lookups, each bounded by the request timeout.
	server := api.NewServer(cfg.Port, mux, 3*cfg.RequestTimeout, logger, appMetrics)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.InfoContext(ctx, "Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.ErrorContext(ctx, "HTTP server failed", "error", err)
		return err
	}

	logger.InfoContext(ctx, "Application stopped gracefully.")
	return nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			tint.NewHandler(os.Stdout, &tint.Options{
				Level:      slog.LevelDebug,
				AddSource:  true,
				TimeFormat: time.Kitchen,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
