package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(t time.Time, temp float64, icon, desc string) ForecastSample {
	return ForecastSample{
		Timestamp:            t,
		TimestampText:        t.UTC().Format("2006-01-02 15:04:05"),
		Temperature:          temp,
		ConditionDescription: desc,
		IconCode:             icon,
	}
}

func twoDayForecast() []ForecastSample {
	day1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	return []ForecastSample{
		sampleAt(day1.Add(0*time.Hour), 20, "10n", "light rain"),
		sampleAt(day1.Add(6*time.Hour), 22, "04d", "overcast clouds"),
		sampleAt(day1.Add(12*time.Hour), 24, "03d", "scattered clouds"),
		sampleAt(day1.Add(18*time.Hour), 26, "01n", "clear sky"),
		sampleAt(day2.Add(0*time.Hour), 18, "02n", "few clouds"),
		sampleAt(day2.Add(6*time.Hour), 19, "10d", "light rain"),
		sampleAt(day2.Add(12*time.Hour), 21, "10d", "moderate rain"),
		sampleAt(day2.Add(18*time.Hour), 23, "04n", "broken clouds"),
	}
}

func TestDayKeyUsesUTC(t *testing.T) {
	guayaquil := time.FixedZone("ECT", -5*3600)
	// 22:00 local on Apr 30 is 03:00 UTC on May 1.
	ts := time.Date(2024, 4, 30, 22, 0, 0, 0, guayaquil)
	assert.Equal(t, "2024-05-01", DayKey(ts))
}

func TestGroupByDay(t *testing.T) {
	samples := twoDayForecast()

	buckets := GroupByDay(samples)
	require.Len(t, buckets, 2)

	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, buckets.Dates())
	assert.Equal(t, []float64{20, 22, 24, 26}, buckets[0].SampleTemperatures)
	assert.InDelta(t, 23.0, buckets[0].MeanTemperature(), 1e-9)
	assert.InDelta(t, 20.25, buckets[1].MeanTemperature(), 1e-9)
	assert.Equal(t, len(samples), buckets.SampleCount())
}

func TestGroupByDayRepresentativeIsFirstSample(t *testing.T) {
	buckets := GroupByDay(twoDayForecast())

	first := buckets[0]
	assert.Equal(t, "10n", first.RepresentativeIcon)
	assert.Equal(t, "light rain", first.RepresentativeDescription)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), first.RepresentativeSampleTimestamp)
	assert.Equal(t, 20.0, first.Representative.Temperature)

	second, ok := buckets.Find("2024-05-02")
	require.True(t, ok)
	assert.Equal(t, "02n", second.RepresentativeIcon)
}

func TestGroupByDayKeepsFirstAppearanceOrder(t *testing.T) {
	samples := twoDayForecast()
	// Out-of-order input: a late sample for day 1 after day 2 began.
	late := sampleAt(time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC), 25, "01n", "clear sky")
	samples = append(samples[:5:5], append([]ForecastSample{late}, samples[5:]...)...)

	buckets := GroupByDay(samples)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-05-01", buckets[0].Date)
	assert.Equal(t, []float64{20, 22, 24, 26, 25}, buckets[0].SampleTemperatures)
	assert.Equal(t, 9, buckets.SampleCount())
}

func TestGroupByDayIsIdempotent(t *testing.T) {
	samples := twoDayForecast()
	assert.Equal(t, GroupByDay(samples), GroupByDay(samples))
}

func TestGroupByDayEmpty(t *testing.T) {
	buckets := GroupByDay(nil)
	assert.Empty(t, buckets)
	assert.Equal(t, 0, buckets.SampleCount())

	_, ok := buckets.Find("2024-05-01")
	assert.False(t, ok)
}

func TestFilterDay(t *testing.T) {
	samples := twoDayForecast()

	table := FilterDay(samples, "2024-05-02", time.UTC)
	assert.Equal(t, TableReady, table.Status)
	require.Len(t, table.Samples, 4)
	for _, s := range table.Samples {
		assert.Equal(t, "2024-05-02", DayKey(s.Timestamp))
	}
	assert.Equal(t, 18.0, table.Samples[0].Temperature)
}

func TestFilterDayStatuses(t *testing.T) {
	tests := []struct {
		name    string
		samples []ForecastSample
		day     string
		want    TableStatus
	}{
		{"no forecast loaded", nil, "2024-05-01", TableNoForecast},
		{"no day selected", twoDayForecast(), "", TableNoForecast},
		{"day outside forecast", twoDayForecast(), "2024-05-09", TableNoDataForDay},
		{"day inside forecast", twoDayForecast(), "2024-05-01", TableReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := FilterDay(tt.samples, tt.day, nil)
			assert.Equal(t, tt.want, table.Status)
			if tt.want != TableReady {
				assert.Empty(t, table.Samples)
			}
		})
	}
}

func TestFilterDaySortsByHourStably(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	samples := []ForecastSample{
		sampleAt(base.Add(15*time.Hour), 27, "01d", "a"),
		sampleAt(base.Add(3*time.Hour), 21, "01n", "b"),
		sampleAt(base.Add(3*time.Hour+30*time.Minute), 22, "01n", "c"),
		sampleAt(base.Add(9*time.Hour), 24, "02d", "d"),
	}

	table := FilterDay(samples, "2024-05-01", time.UTC)
	require.Equal(t, TableReady, table.Status)

	var got []string
	for _, s := range table.Samples {
		got = append(got, s.ConditionDescription)
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, got)
	// Input is untouched.
	assert.Equal(t, "a", samples[0].ConditionDescription)
}

func TestFilterDaySortsByDisplayedHour(t *testing.T) {
	guayaquil := time.FixedZone("ECT", -5*3600)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	var samples []ForecastSample
	for h := 0; h < 24; h += 3 {
		samples = append(samples, sampleAt(base.Add(time.Duration(h)*time.Hour), 20, "01d", ""))
	}

	table := FilterDay(samples, "2024-05-01", guayaquil)
	require.Equal(t, TableReady, table.Status)
	require.Len(t, table.Samples, 8, "membership stays on the UTC date")

	var hours []int
	for _, s := range table.Samples {
		hours = append(hours, s.Timestamp.In(guayaquil).Hour())
	}
	assert.Equal(t, []int{1, 4, 7, 10, 13, 16, 19, 22}, hours)
}

func TestDefaultDay(t *testing.T) {
	forecast := twoDayForecast()

	day, ok := DefaultDay(nil, forecast, "")
	assert.True(t, ok)
	assert.Equal(t, "2024-05-01", day)

	_, ok = DefaultDay(forecast, forecast, "")
	assert.False(t, ok, "refetch must not revise the selection")

	_, ok = DefaultDay(nil, forecast, "2024-05-02")
	assert.False(t, ok, "explicit selection wins")

	_, ok = DefaultDay(forecast, nil, "")
	assert.False(t, ok)
}
