package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConditions struct {
	current     CurrentConditions
	currentErr  error
	forecast    []ForecastSample
	forecastErr error
	cities      chan string
}

func (f *fakeConditions) Name() string { return "fake" }

func (f *fakeConditions) Current(ctx context.Context, city string) (CurrentConditions, error) {
	if f.cities != nil {
		f.cities <- city
	}
	return f.current, f.currentErr
}

func (f *fakeConditions) Forecast(ctx context.Context, city string) ([]ForecastSample, error) {
	return f.forecast, f.forecastErr
}

type fakeHourly struct {
	series HourlySeries
	err    error
	got    Coordinates
}

func (f *fakeHourly) Name() string { return "fake-hourly" }

func (f *fakeHourly) Hourly(ctx context.Context, coords Coordinates) (HourlySeries, error) {
	f.got = coords
	return f.series, f.err
}

func newTestService(c ConditionsProvider, h HourlyProvider) *Service {
	s := NewService(c, h, zap.NewNop())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestFetchCurrentAndForecast(t *testing.T) {
	cond := &fakeConditions{
		current:  CurrentConditions{CityName: "Guayaquil", Temperature: 30},
		forecast: twoDayForecast(),
		cities:   make(chan string, 1),
	}
	svc := newTestService(cond, &fakeHourly{})

	res := svc.FetchCurrentAndForecast(context.Background(), "Guayaquil")
	require.True(t, res.OK())
	assert.Equal(t, "Guayaquil", <-cond.cities)
	assert.Equal(t, 30.0, res.Value.Conditions.Temperature)
	assert.Len(t, res.Value.Forecast, 8)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), res.FetchedAt)
	assert.Equal(t, FailureReason(""), res.Reason())
}

func TestFetchCurrentAndForecastIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name   string
		cond   *fakeConditions
		reason FailureReason
	}{
		{
			name: "current fails",
			cond: &fakeConditions{
				currentErr: NewFetchError("current", ReasonUpstream, errors.New("404")),
				forecast:   twoDayForecast(),
			},
			reason: ReasonUpstream,
		},
		{
			name: "forecast fails",
			cond: &fakeConditions{
				current:     CurrentConditions{CityName: "Quito"},
				forecastErr: NewFetchError("forecast", ReasonMalformed, errors.New("bad json")),
			},
			reason: ReasonMalformed,
		},
		{
			name: "forecast empty",
			cond: &fakeConditions{
				current: CurrentConditions{CityName: "Quito"},
			},
			reason: ReasonEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.cond, &fakeHourly{})

			res := svc.FetchCurrentAndForecast(context.Background(), "Quito")
			assert.False(t, res.OK())
			assert.Equal(t, tt.reason, res.Reason())
			assert.Empty(t, res.Value.Forecast)
			assert.Empty(t, res.Value.Conditions.CityName)
		})
	}
}

func TestFetchHourlySeries(t *testing.T) {
	var series HourlySeries
	series.Humidity[5] = 88
	hourly := &fakeHourly{series: series}
	svc := newTestService(&fakeConditions{}, hourly)

	coords := Coordinates{Lat: -0.18, Lon: -78.47}
	res := svc.FetchHourlySeries(context.Background(), coords)
	require.True(t, res.OK())
	assert.Equal(t, coords, hourly.got)
	assert.Equal(t, 88.0, res.Value.Humidity[5])
}

func TestFetchHourlySeriesFailure(t *testing.T) {
	hourly := &fakeHourly{err: NewFetchError("hourly", ReasonUnavailable, errors.New("open"))}
	svc := newTestService(&fakeConditions{}, hourly)

	res := svc.FetchHourlySeries(context.Background(), DefaultCoordinates)
	assert.False(t, res.OK())
	assert.Equal(t, ReasonUnavailable, res.Reason())

	f := FailureFrom("hourly", res.Err, res.FetchedAt)
	require.NotNil(t, f)
	assert.Equal(t, ReasonUnavailable, f.Reason)
	assert.Contains(t, f.Message, "open")
}

func TestReasonOfPlainErrorDefaultsToNetwork(t *testing.T) {
	assert.Equal(t, ReasonNetwork, ReasonOf(errors.New("dial tcp")))
	assert.Nil(t, FailureFrom("x", nil, time.Time{}))
}
