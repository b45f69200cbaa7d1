package weather

import (
	"time"
)

// DefaultCoordinates point at Guayaquil and are used before any real
// coordinates have been fetched.
var DefaultCoordinates = Coordinates{Lat: -2.1962, Lon: -79.8862}

// Location is a province/city pair picked from the gazetteer.
// City must belong to the province's city list.
type Location struct {
	Province string `json:"province"`
	City     string `json:"city"`
}

// Key returns a canonical string key for logging and indexing.
func (l Location) Key() string {
	return l.Province + ":" + l.City
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentConditions is the normalized snapshot from the "current" endpoint.
// Units are the provider's (metric, wind in m/s).
type CurrentConditions struct {
	ObservedAt           time.Time   `json:"observedAt"`
	Temperature          float64     `json:"temperature"`
	FeelsLike            float64     `json:"feelsLike"`
	Humidity             float64     `json:"humidity"`
	Pressure             float64     `json:"pressure"`
	CloudCover           float64     `json:"cloudCover"`
	WindSpeed            float64     `json:"windSpeed"`
	WindDirection        float64     `json:"windDirection"`
	Rain                 float64     `json:"rain"`
	Visibility           float64     `json:"visibility"`
	TempMax              *float64    `json:"tempMax,omitempty"`
	TempMin              *float64    `json:"tempMin,omitempty"`
	ConditionMain        string      `json:"conditionMain"`
	ConditionDescription string      `json:"conditionDescription"`
	IconCode             string      `json:"iconCode"`
	Coordinates          Coordinates `json:"coordinates"`
	CityName             string      `json:"cityName"`
	Sunrise              time.Time   `json:"sunrise"`
	Sunset               time.Time   `json:"sunset"`
}

// ForecastSample is one 3-hour point of the 5-day forecast.
type ForecastSample struct {
	Timestamp            time.Time `json:"timestamp"` // always UTC
	TimestampText        string    `json:"timestampText"`
	Temperature          float64   `json:"temperature"`
	Humidity             float64   `json:"humidity"`
	ConditionDescription string    `json:"conditionDescription"`
	IconCode             string    `json:"iconCode"`
	CloudCoverPct        float64   `json:"cloudCoverPct"`
	WindSpeed            float64   `json:"windSpeed"`
	WindDirectionDeg     float64   `json:"windDirectionDeg"`
}

// HoursPerDay is the length of every HourlySeries.
const HoursPerDay = 24

// HourlySeries holds one local day of hourly values from the second provider.
type HourlySeries struct {
	Hours                    [HoursPerDay]int     `json:"hours"`
	Humidity                 [HoursPerDay]float64 `json:"humidity"`
	ApparentTemperature      [HoursPerDay]float64 `json:"apparentTemperature"`
	PrecipitationProbability [HoursPerDay]float64 `json:"precipitationProbability"`
}

// Snapshot is what one current+forecast fetch cycle yields.
// Forecast entries are ordered by Timestamp ascending, as delivered.
type Snapshot struct {
	Conditions CurrentConditions `json:"conditions"`
	Forecast   []ForecastSample  `json:"forecast"`
}
