package weather

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var errNoForecastSamples = errors.New("forecast list is empty")

// Service fetches and normalizes everything one dashboard needs. It never
// retries; failures are logged and handed back inside the Result.
type Service struct {
	conditions ConditionsProvider
	hourly     HourlyProvider
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a new Service.
func NewService(conditions ConditionsProvider, hourly HourlyProvider, logger *zap.Logger) *Service {
	return &Service{
		conditions: conditions,
		hourly:     hourly,
		logger:     logger.Named("weather"),
		now:        time.Now,
	}
}

// FetchCurrentAndForecast issues the current and forecast requests
// concurrently for city. The snapshot is only returned when both succeed.
func (s *Service) FetchCurrentAndForecast(ctx context.Context, city string) Result[Snapshot] {
	var (
		wg          sync.WaitGroup
		current     CurrentConditions
		forecast    []ForecastSample
		currentErr  error
		forecastErr error
	)

	s.logger.Debug("fetching current conditions and forecast",
		zap.String("city", city),
		zap.String("provider", s.conditions.Name()),
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = s.conditions.Current(ctx, city)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = s.conditions.Forecast(ctx, city)
		if forecastErr == nil && len(forecast) == 0 {
			forecastErr = NewFetchError("forecast", ReasonEmpty, errNoForecastSamples)
		}
	}()
	wg.Wait()

	fetchedAt := s.now()

	if err := errors.Join(currentErr, forecastErr); err != nil {
		s.logger.Warn("current/forecast fetch failed; keeping previous data",
			zap.String("city", city),
			zap.String("reason", string(ReasonOf(err))),
			zap.Error(err),
		)
		return Result[Snapshot]{Err: err, FetchedAt: fetchedAt}
	}

	return Result[Snapshot]{
		Value: Snapshot{
			Conditions: current,
			Forecast:   forecast,
		},
		FetchedAt: fetchedAt,
	}
}

// FetchHourlySeries fetches the 24-hour series for coords.
func (s *Service) FetchHourlySeries(ctx context.Context, coords Coordinates) Result[HourlySeries] {
	series, err := s.hourly.Hourly(ctx, coords)
	fetchedAt := s.now()
	if err != nil {
		s.logger.Warn("hourly fetch failed; keeping previous data",
			zap.Float64("lat", coords.Lat),
			zap.Float64("lon", coords.Lon),
			zap.String("reason", string(ReasonOf(err))),
			zap.Error(err),
		)
		return Result[HourlySeries]{Err: err, FetchedAt: fetchedAt}
	}
	return Result[HourlySeries]{Value: series, FetchedAt: fetchedAt}
}
