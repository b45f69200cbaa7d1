package weather

import (
	"context"
)

// ConditionsProvider abstracts the city-keyed source of current conditions and
// the 3-hour forecast (OpenWeatherMap).
type ConditionsProvider interface {
	Name() string
	Current(ctx context.Context, city string) (CurrentConditions, error)
	Forecast(ctx context.Context, city string) ([]ForecastSample, error)
}

// HourlyProvider abstracts the coordinate-keyed hourly source (Open-Meteo).
type HourlyProvider interface {
	Name() string
	Hourly(ctx context.Context, coords Coordinates) (HourlySeries, error)
}
