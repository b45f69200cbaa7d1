package view

import (
	"fmt"
	"time"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

// ConditionsCard is the current-conditions panel.
type ConditionsCard struct {
	Available   bool   `json:"available"`
	City        string `json:"city"`
	IconURL     string `json:"iconUrl"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feelsLike"`
	TempMax     string `json:"tempMax"`
	TempMin     string `json:"tempMin"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
	WindDeg     string `json:"windDirection"`
	CloudCover  string `json:"cloudCover"`
	Pressure    string `json:"pressure"`
	Rain        string `json:"rain"`
	Visibility  string `json:"visibility"`
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
	ObservedAt  string `json:"observedAt"`
}

const missingValue = "--"

// BuildConditionsCard renders c; a nil c yields an unavailable card. Times
// are shown in loc.
func BuildConditionsCard(c *weather.CurrentConditions, loc *time.Location) ConditionsCard {
	if c == nil {
		return ConditionsCard{}
	}
	if loc == nil {
		loc = time.UTC
	}

	return ConditionsCard{
		Available:   true,
		City:        c.CityName,
		IconURL:     fmt.Sprintf(largeIconURL, c.IconCode),
		Main:        c.ConditionMain,
		Description: c.ConditionDescription,
		Temperature: oneDecimal(c.Temperature) + "°C",
		FeelsLike:   oneDecimal(c.FeelsLike) + "°C",
		TempMax:     optionalTemp(c.TempMax),
		TempMin:     optionalTemp(c.TempMin),
		Humidity:    number(c.Humidity) + "%",
		Wind:        oneDecimal(c.WindSpeed*msToKmh) + " km/h",
		WindDeg:     number(c.WindDirection) + "°",
		CloudCover:  number(c.CloudCover) + "%",
		Pressure:    number(c.Pressure) + " hPa",
		Rain:        number(c.Rain) + " mm",
		Visibility:  oneDecimal(c.Visibility/1000) + " km",
		Sunrise:     c.Sunrise.In(loc).Format(clockLayout),
		Sunset:      c.Sunset.In(loc).Format(clockLayout),
		ObservedAt:  c.ObservedAt.In(loc).Format(clockLayout),
	}
}

func optionalTemp(v *float64) string {
	if v == nil {
		return missingValue
	}
	return oneDecimal(*v) + "°C"
}
