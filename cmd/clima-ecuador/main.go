package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	httpapi "github.com/i474232898/clima-ecuador/internal/api/http"
	"github.com/i474232898/clima-ecuador/internal/config"
	"github.com/i474232898/clima-ecuador/internal/dashboard"
	"github.com/i474232898/clima-ecuador/internal/scheduler"
	"github.com/i474232898/clima-ecuador/internal/store"
	"github.com/i474232898/clima-ecuador/internal/timezone"
	"github.com/i474232898/clima-ecuador/internal/weather"
	"github.com/i474232898/clima-ecuador/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if !cfg.DotEnvLoaded {
		zlog.Info("no .env file found; using environment and defaults")
	}
	if cfg.OpenWeather.APIKey == "" {
		zlog.Warn("openweather api key is empty; current conditions will fail")
	}

	// Shared outbound client and rate limiter for both providers.
	client := providers.NewRestyClient(cfg.HTTP.Timeout)
	limiter := rate.NewLimiter(rate.Limit(cfg.Outbound.RPS), cfg.Outbound.Burst)

	service := weather.NewService(
		providers.NewOpenWeatherProvider(client, limiter, cfg.OpenWeather.APIKey, cfg.OpenWeather.BaseURL),
		providers.NewOpenMeteoProvider(client, limiter, cfg.OpenMeteo.BaseURL),
		zlog,
	)

	var tz timezone.Resolver = timezone.UTC
	if cfg.Timezone.Enabled {
		if tz, err = timezone.NewResolver(); err != nil {
			zlog.Warn("timezone lookup unavailable; showing UTC", zap.Error(err))
			tz = timezone.UTC
		}
	}

	sessions := store.NewSessionStore(cfg.Session.MaxCount, cfg.Session.MaxIdle)

	// Keeps every open dashboard current.
	sched := scheduler.New(cfg.Refresh.Interval, func() []*dashboard.Controller {
		return sessions.Active(cfg.Refresh.ActiveWithin)
	}, zlog)
	sched.MaxConcurrent = cfg.Refresh.Concurrency
	if err := sched.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "clima-ecuador",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Sessions: sessions,
		NewDashboard: func() *dashboard.Controller {
			return dashboard.NewController(dashboard.New(), service, zlog)
		},
		TimeZones: tz,
		Logger:    zlog,
	})

	go func() {
		zlog.Info("listening", zap.String("addr", cfg.Addr()))
		if err := app.Listen(cfg.Addr()); err != nil {
			zlog.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}
