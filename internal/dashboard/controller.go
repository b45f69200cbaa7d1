package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

// Fetcher is the part of weather.Service the controller needs.
type Fetcher interface {
	FetchCurrentAndForecast(ctx context.Context, city string) weather.Result[weather.Snapshot]
	FetchHourlySeries(ctx context.Context, coords weather.Coordinates) weather.Result[weather.HourlySeries]
}

// Controller funnels every user action through the dashboard and triggers
// the fetches each action implies. All methods are safe for concurrent use;
// overlapping refreshes are resolved by the dashboard's sequence tokens.
type Controller struct {
	dash    *Dashboard
	fetcher Fetcher
	logger  *zap.Logger
}

func NewController(dash *Dashboard, fetcher Fetcher, logger *zap.Logger) *Controller {
	return &Controller{
		dash:    dash,
		fetcher: fetcher,
		logger:  logger.Named("dashboard"),
	}
}

func (c *Controller) View() State {
	return c.dash.View()
}

// SelectProvince switches province, resets the city and refreshes.
func (c *Controller) SelectProvince(ctx context.Context, province string) State {
	c.dash.SelectProvince(province)
	return c.Refresh(ctx)
}

// SelectCity switches city and refreshes when it changed.
func (c *Controller) SelectCity(ctx context.Context, city string) State {
	if _, changed := c.dash.SelectCity(city); !changed {
		return c.dash.View()
	}
	return c.Refresh(ctx)
}

// SelectDay changes the day shown by the table and the day-picker. It never
// fetches.
func (c *Controller) SelectDay(day string) State {
	c.dash.SelectDay(day)
	return c.dash.View()
}

// Refresh fetches current conditions and forecast for the selected city, then
// the hourly series for the resulting coordinates.
func (c *Controller) Refresh(ctx context.Context) State {
	city, token := c.dash.LocationRequest()

	res := c.fetcher.FetchCurrentAndForecast(ctx, city)
	if !c.dash.ApplySnapshot(token, res) {
		c.logger.Debug("discarding stale current/forecast response",
			zap.String("city", city),
			zap.Uint64("token", token),
		)
		return c.dash.View()
	}

	coords, htoken := c.dash.HourlyRequest()
	hres := c.fetcher.FetchHourlySeries(ctx, coords)
	if !c.dash.ApplyHourly(htoken, hres) {
		c.logger.Debug("discarding stale hourly response",
			zap.Float64("lat", coords.Lat),
			zap.Float64("lon", coords.Lon),
			zap.Uint64("token", htoken),
		)
	}

	return c.dash.View()
}
