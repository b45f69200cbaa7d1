package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

const defaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

var errMissingField = errors.New("payload is missing a required field")

// OpenWeatherProvider implements weather.ConditionsProvider for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates the provider. An empty baseURL selects the
// public API.
func NewOpenWeatherProvider(client *resty.Client, limiter *rate.Limiter, apiKey, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = defaultOpenWeatherBaseURL
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Limiter: limiter,
		},
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) params(city string) map[string]string {
	return map[string]string{
		"q":     city,
		"units": "metric",
		"appid": p.apiKey,
	}
}

// owmWeather is the shared shape of the "weather" array entries.
type owmWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentPayload struct {
	Dt   int64 `json:"dt"`
	Main *struct {
		Temp      float64  `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		Humidity  float64  `json:"humidity"`
		Pressure  float64  `json:"pressure"`
		TempMax   *float64 `json:"temp_max"`
		TempMin   *float64 `json:"temp_min"`
	} `json:"main"`
	Weather []owmWeather `json:"weather"`
	Clouds  struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Rain *struct {
		OneH *float64 `json:"1h"`
	} `json:"rain"`
	Visibility float64 `json:"visibility"`
	Coord      struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Name string `json:"name"`
	Sys  struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

type forecastPayload struct {
	List *[]struct {
		Dt    int64  `json:"dt"`
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []owmWeather `json:"weather"`
		Clouds  struct {
			All float64 `json:"all"`
		} `json:"clouds"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   float64 `json:"deg"`
		} `json:"wind"`
	} `json:"list"`
}

// Current fetches the current conditions for a free-text city name.
func (p *OpenWeatherProvider) Current(ctx context.Context, city string) (weather.CurrentConditions, error) {
	const op = "openweather current"

	body, err := doRequest(ctx, op, p.httpCfg, p.circuit, p.baseURL+"/weather", p.params(city))
	if err != nil {
		return weather.CurrentConditions{}, err
	}

	var payload currentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.CurrentConditions{}, weather.NewFetchError(op, weather.ReasonMalformed, err)
	}
	return parseCurrent(op, payload)
}

func parseCurrent(op string, payload currentPayload) (weather.CurrentConditions, error) {
	if payload.Main == nil || len(payload.Weather) == 0 {
		return weather.CurrentConditions{}, weather.NewFetchError(op, weather.ReasonMalformed,
			fmt.Errorf("%w: main/weather", errMissingField))
	}

	// Rain volume is zero, not absent, when the provider omits it.
	var rain float64
	if payload.Rain != nil && payload.Rain.OneH != nil {
		rain = *payload.Rain.OneH
	}

	return weather.CurrentConditions{
		ObservedAt:           unixSecondsToTime(payload.Dt),
		Temperature:          payload.Main.Temp,
		FeelsLike:            payload.Main.FeelsLike,
		Humidity:             payload.Main.Humidity,
		Pressure:             payload.Main.Pressure,
		CloudCover:           payload.Clouds.All,
		WindSpeed:            payload.Wind.Speed,
		WindDirection:        payload.Wind.Deg,
		Rain:                 rain,
		Visibility:           payload.Visibility,
		TempMax:              payload.Main.TempMax,
		TempMin:              payload.Main.TempMin,
		ConditionMain:        payload.Weather[0].Main,
		ConditionDescription: payload.Weather[0].Description,
		IconCode:             payload.Weather[0].Icon,
		Coordinates: weather.Coordinates{
			Lat: payload.Coord.Lat,
			Lon: payload.Coord.Lon,
		},
		CityName: payload.Name,
		Sunrise:  unixSecondsToTime(payload.Sys.Sunrise),
		Sunset:   unixSecondsToTime(payload.Sys.Sunset),
	}, nil
}

// Forecast fetches the 5-day/3-hour forecast, preserving the provider's order.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, city string) ([]weather.ForecastSample, error) {
	const op = "openweather forecast"

	body, err := doRequest(ctx, op, p.httpCfg, p.circuit, p.baseURL+"/forecast", p.params(city))
	if err != nil {
		return nil, err
	}

	var payload forecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, weather.NewFetchError(op, weather.ReasonMalformed, err)
	}
	return parseForecast(op, payload)
}

func parseForecast(op string, payload forecastPayload) ([]weather.ForecastSample, error) {
	if payload.List == nil {
		return nil, weather.NewFetchError(op, weather.ReasonMalformed, fmt.Errorf("%w: list", errMissingField))
	}

	samples := make([]weather.ForecastSample, 0, len(*payload.List))
	for i, item := range *payload.List {
		if len(item.Weather) == 0 {
			return nil, weather.NewFetchError(op, weather.ReasonMalformed,
				fmt.Errorf("%w: list[%d].weather", errMissingField, i))
		}

		samples = append(samples, weather.ForecastSample{
			Timestamp:            unixSecondsToTime(item.Dt),
			TimestampText:        item.DtTxt,
			Temperature:          item.Main.Temp,
			Humidity:             item.Main.Humidity,
			ConditionDescription: item.Weather[0].Description,
			IconCode:             item.Weather[0].Icon,
			CloudCoverPct:        item.Clouds.All,
			WindSpeed:            item.Wind.Speed,
			WindDirectionDeg:     item.Wind.Deg,
		})
	}
	return samples, nil
}

// unixSecondsToTime converts the provider's Unix seconds to a millisecond
// epoch timestamp in UTC.
func unixSecondsToTime(sec int64) time.Time {
	return time.UnixMilli(sec * 1000).UTC()
}
