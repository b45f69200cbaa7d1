package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

const defaultOpenMeteoBaseURL = "https://api.open-meteo.com"

// OpenMeteoProvider implements weather.HourlyProvider for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates the provider. An empty baseURL selects the
// public API.
func NewOpenMeteoProvider(client *resty.Client, limiter *rate.Limiter, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = defaultOpenMeteoBaseURL
	}

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Limiter: limiter,
		},
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type hourlyPayload struct {
	Hourly *struct {
		RelativeHumidity2m       []*float64 `json:"relative_humidity_2m"`
		ApparentTemperature      []*float64 `json:"apparent_temperature"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

// Hourly fetches today's hourly humidity, apparent temperature and
// precipitation probability in the location's own time zone.
func (p *OpenMeteoProvider) Hourly(ctx context.Context, coords weather.Coordinates) (weather.HourlySeries, error) {
	const op = "openmeteo hourly"

	params := map[string]string{
		"latitude":      strconv.FormatFloat(coords.Lat, 'f', -1, 64),
		"longitude":     strconv.FormatFloat(coords.Lon, 'f', -1, 64),
		"hourly":        "relative_humidity_2m,apparent_temperature,precipitation_probability",
		"timezone":      "auto",
		"forecast_days": "1",
	}

	body, err := doRequest(ctx, op, p.httpCfg, p.circuit, p.baseURL+"/v1/forecast", params)
	if err != nil {
		return weather.HourlySeries{}, err
	}

	var payload hourlyPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.HourlySeries{}, weather.NewFetchError(op, weather.ReasonMalformed, err)
	}
	return parseHourly(op, payload)
}

func parseHourly(op string, payload hourlyPayload) (weather.HourlySeries, error) {
	if payload.Hourly == nil {
		return weather.HourlySeries{}, weather.NewFetchError(op, weather.ReasonMalformed, fmt.Errorf("%w: hourly", errMissingField))
	}

	h := payload.Hourly
	for name, values := range map[string][]*float64{
		"relative_humidity_2m":      h.RelativeHumidity2m,
		"apparent_temperature":      h.ApparentTemperature,
		"precipitation_probability": h.PrecipitationProbability,
	} {
		if len(values) < weather.HoursPerDay {
			return weather.HourlySeries{}, weather.NewFetchError(op, weather.ReasonMalformed,
				fmt.Errorf("hourly.%s has %d values, want at least %d", name, len(values), weather.HoursPerDay))
		}
	}

	var series weather.HourlySeries
	for i := 0; i < weather.HoursPerDay; i++ {
		series.Hours[i] = i
	}
	fillHours(&series.Humidity, h.RelativeHumidity2m)
	fillHours(&series.ApparentTemperature, h.ApparentTemperature)
	fillHours(&series.PrecipitationProbability, h.PrecipitationProbability)

	return series, nil
}

// fillHours copies the first 24 values into dst. Open-Meteo sends null for
// hours it has no value for; those read as 0.
func fillHours(dst *[weather.HoursPerDay]float64, values []*float64) {
	for i := range dst {
		if v := values[i]; v != nil {
			dst[i] = *v
		}
	}
}
