package main

import (
	"flag"
	"log"

	"github.com/rivo/tview"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/i474232898/clima-ecuador/internal/config"
	"github.com/i474232898/clima-ecuador/internal/dashboard"
	"github.com/i474232898/clima-ecuador/internal/scheduler"
	"github.com/i474232898/clima-ecuador/internal/timezone"
	"github.com/i474232898/clima-ecuador/internal/tui"
	"github.com/i474232898/clima-ecuador/internal/weather"
	"github.com/i474232898/clima-ecuador/internal/weather/providers"
)

func main() {
	logPath := flag.String("log", "clima-tui.log", "file to write logs to")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The terminal belongs to the UI; logs go to a file.
	zlog, err := cfg.NewLogger(*logPath)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

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

	ctrl := dashboard.NewController(dashboard.New(), service, zlog)

	app := tview.NewApplication()
	view := tui.New(app, ctrl, tz, zlog)

	sched := scheduler.New(cfg.Refresh.Interval, func() []*dashboard.Controller {
		return []*dashboard.Controller{ctrl}
	}, zlog)
	sched.OnRefreshed = view.Update
	if err := sched.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	view.Start()
	if err := app.SetRoot(view, true).Run(); err != nil {
		zlog.Fatal("terminal ui stopped", zap.Error(err))
	}
}
