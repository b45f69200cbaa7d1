package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/i474232898/clima-ecuador/internal/dashboard"
	"github.com/i474232898/clima-ecuador/internal/gazetteer"
	"github.com/i474232898/clima-ecuador/internal/timezone"
	"github.com/i474232898/clima-ecuador/internal/weather"
)

type staticFetcher struct{}

func (staticFetcher) FetchCurrentAndForecast(ctx context.Context, city string) weather.Result[weather.Snapshot] {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var forecast []weather.ForecastSample
	for i := 0; i < 8; i++ {
		forecast = append(forecast, weather.ForecastSample{
			Timestamp:            start.Add(time.Duration(i*6) * time.Hour),
			Temperature:          20 + float64(i),
			ConditionDescription: "light rain",
			IconCode:             "10d",
		})
	}
	return weather.Result[weather.Snapshot]{Value: weather.Snapshot{
		Conditions: weather.CurrentConditions{CityName: city, ConditionDescription: "clear sky", Coordinates: weather.DefaultCoordinates},
		Forecast:   forecast,
	}}
}

func (staticFetcher) FetchHourlySeries(ctx context.Context, coords weather.Coordinates) weather.Result[weather.HourlySeries] {
	var s weather.HourlySeries
	for i := range s.Hours {
		s.Hours[i] = i
		s.ApparentTemperature[i] = float64(i)
		s.Humidity[i] = 60
	}
	return weather.Result[weather.HourlySeries]{Value: s}
}

func newTestDashboard(t *testing.T) (*Dashboard, *dashboard.Controller) {
	t.Helper()
	ctrl := dashboard.NewController(dashboard.New(), staticFetcher{}, zap.NewNop())
	d := New(tview.NewApplication(), ctrl, timezone.UTC, zap.NewNop())
	return d, ctrl
}

func TestRenderLoadedState(t *testing.T) {
	d, ctrl := newTestDashboard(t)

	d.Render(ctrl.Refresh(context.Background()))

	assert.Equal(t, len(gazetteer.Provinces()), d.provinces.GetItemCount())
	assert.Equal(t, len(gazetteer.Cities("Guayas")), d.cities.GetItemCount())
	assert.Equal(t, 2, d.days.GetItemCount())

	assert.Contains(t, d.card.GetText(true), "Guayaquil")
	assert.Contains(t, d.card.GetText(true), "☀")

	assert.Equal(t, "Hora", d.table.GetCell(0, 0).Text)
	assert.Equal(t, "00:00", d.table.GetCell(1, 0).Text)
	assert.Equal(t, "🌦 light rain", d.table.GetCell(1, 1).Text)
	assert.Equal(t, 5, d.table.GetRowCount())

	assert.Contains(t, d.chart.GetText(false), "#4444FF")
}

func TestRenderEmptyState(t *testing.T) {
	d, ctrl := newTestDashboard(t)

	d.Render(ctrl.View())

	assert.Equal(t, 0, d.days.GetItemCount())
	assert.Equal(t, "No hay datos disponibles", d.table.GetCell(1, 0).Text)
	assert.Contains(t, d.card.GetText(true), "No hay datos disponibles")
}

func TestSeriesKeys(t *testing.T) {
	d, ctrl := newTestDashboard(t)
	d.Render(ctrl.Refresh(context.Background()))

	assert.Nil(t, d.handleKey(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.Contains(t, d.chart.GetText(false), "#44AA44")

	assert.Nil(t, d.handleKey(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone)))
	assert.Contains(t, d.chart.GetText(false), "#FF4444")

	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	assert.Same(t, ev, d.handleKey(ev))
}

func TestProvinceChangeRebuildsCities(t *testing.T) {
	d, ctrl := newTestDashboard(t)

	d.Render(ctrl.SelectProvince(context.Background(), "Santa Elena"))
	assert.Equal(t, 3, d.cities.GetItemCount())
	assert.Equal(t, indexOf(gazetteer.Provinces(), "Santa Elena"), d.provinces.GetCurrentItem())
}

func TestSparkline(t *testing.T) {
	values := []float64{0, 7, 14}
	line := []rune(sparkline(values, 0, 14))
	require.Len(t, line, 6)
	assert.Equal(t, '▁', line[0])
	assert.Equal(t, '█', line[5])

	flat := sparkline([]float64{5, 5}, 5, 5)
	assert.Equal(t, strings.Repeat("▅", 4), flat)

	axis := hourAxis(24)
	assert.Len(t, axis, 48)
	assert.True(t, strings.HasPrefix(axis, "0 "))
}
