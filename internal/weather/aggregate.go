package weather

import (
	"sort"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey returns the UTC calendar date of t, e.g. "2024-05-01".
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// DayBucket groups the forecast samples that share a UTC calendar date.
// The representative fields come from the first sample seen for the date.
type DayBucket struct {
	Date                          string         `json:"date"`
	SampleTemperatures            []float64      `json:"sampleTemperatures"`
	RepresentativeIcon            string         `json:"representativeIcon"`
	RepresentativeDescription     string         `json:"representativeDescription"`
	RepresentativeSampleTimestamp time.Time      `json:"representativeSampleTimestamp"`
	Representative                ForecastSample `json:"representative"`
}

// MeanTemperature is the arithmetic mean of every accumulated temperature.
func (b DayBucket) MeanTemperature() float64 {
	if len(b.SampleTemperatures) == 0 {
		return 0
	}
	var sum float64
	for _, t := range b.SampleTemperatures {
		sum += t
	}
	return sum / float64(len(b.SampleTemperatures))
}

// DayBuckets is ordered by the first appearance of each date in the forecast.
type DayBuckets []DayBucket

// Find returns the bucket for date.
func (bs DayBuckets) Find(date string) (DayBucket, bool) {
	for _, b := range bs {
		if b.Date == date {
			return b, true
		}
	}
	return DayBucket{}, false
}

func (bs DayBuckets) Dates() []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Date)
	}
	return out
}

// SampleCount is the number of samples across all buckets.
func (bs DayBuckets) SampleCount() int {
	n := 0
	for _, b := range bs {
		n += len(b.SampleTemperatures)
	}
	return n
}

// GroupByDay partitions samples into per-date buckets. It never reorders the
// input; a date's representative is the earliest-arriving sample for it.
func GroupByDay(samples []ForecastSample) DayBuckets {
	index := make(map[string]int)
	buckets := make(DayBuckets, 0)

	for _, s := range samples {
		k := DayKey(s.Timestamp)

		i, exists := index[k]
		if !exists {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, DayBucket{
				Date:                          k,
				RepresentativeIcon:            s.IconCode,
				RepresentativeDescription:     s.ConditionDescription,
				RepresentativeSampleTimestamp: s.Timestamp,
				Representative:                s,
			})
		}

		buckets[i].SampleTemperatures = append(buckets[i].SampleTemperatures, s.Temperature)
	}

	return buckets
}

// TableStatus distinguishes the two "nothing to show" cases of the hourly table.
type TableStatus string

const (
	TableNoForecast   TableStatus = "no_forecast"
	TableNoDataForDay TableStatus = "no_data_for_day"
	TableReady        TableStatus = "ready"
)

// DayTable is the filtered forecast for one selected day.
type DayTable struct {
	Status  TableStatus      `json:"status"`
	Day     string           `json:"day"`
	Samples []ForecastSample `json:"samples"`
}

// FilterDay keeps the samples whose UTC date equals day, ordered by their
// hour of day in loc, the zone the hours are shown in. Ties keep their
// original order. A nil loc orders by UTC hour.
func FilterDay(samples []ForecastSample, day string, loc *time.Location) DayTable {
	if len(samples) == 0 || day == "" {
		return DayTable{Status: TableNoForecast, Day: day}
	}

	matched := make([]ForecastSample, 0, 8)
	for _, s := range samples {
		if DayKey(s.Timestamp) == day {
			matched = append(matched, s)
		}
	}

	if len(matched) == 0 {
		return DayTable{Status: TableNoDataForDay, Day: day}
	}

	if loc == nil {
		loc = time.UTC
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.In(loc).Hour() < matched[j].Timestamp.In(loc).Hour()
	})

	return DayTable{Status: TableReady, Day: day, Samples: matched}
}

// DefaultDay reports the day to select after the forecast changes from
// previous to next. A day is only chosen on the empty to non-empty transition
// while nothing is selected; later refetches never revise the selection.
func DefaultDay(previous, next []ForecastSample, selected string) (string, bool) {
	if len(previous) != 0 || len(next) == 0 || selected != "" {
		return "", false
	}
	return DayKey(next[0].Timestamp), true
}
