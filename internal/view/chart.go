package view

import (
	"fmt"
	"strings"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

// Series names one of the chart's togglable data sets.
type Series string

const (
	SeriesTemperature   Series = "temperature"
	SeriesHumidity      Series = "humidity"
	SeriesPrecipitation Series = "precipitation"

	DefaultSeries = SeriesHumidity
)

// AllSeries lists the toggles in display order.
var AllSeries = []Series{SeriesTemperature, SeriesHumidity, SeriesPrecipitation}

// ParseSeries maps a toggle value to a Series. An empty value keeps the
// default; anything unrecognized shows temperature.
func ParseSeries(s string) Series {
	switch Series(s) {
	case "":
		return DefaultSeries
	case SeriesTemperature, SeriesHumidity, SeriesPrecipitation:
		return Series(s)
	default:
		return SeriesTemperature
	}
}

func (s Series) Label() string {
	switch s {
	case SeriesHumidity:
		return "Humidity (%)"
	case SeriesPrecipitation:
		return "Precipitation (%)"
	default:
		return "Temperature (°C)"
	}
}

func (s Series) Color() string {
	switch s {
	case SeriesHumidity:
		return "#4444FF"
	case SeriesPrecipitation:
		return "#44AA44"
	default:
		return "#FF4444"
	}
}

func (s Series) values(h *weather.HourlySeries) []float64 {
	var src [weather.HoursPerDay]float64
	switch s {
	case SeriesHumidity:
		src = h.Humidity
	case SeriesPrecipitation:
		src = h.PrecipitationProbability
	default:
		src = h.ApparentTemperature
	}
	return append([]float64(nil), src[:]...)
}

// Chart geometry for the server-rendered SVG.
const (
	ChartWidth  = 640
	ChartHeight = 300

	chartMarginLeft   = 50
	chartMarginRight  = 20
	chartMarginTop    = 20
	chartMarginBottom = 40
)

// HourlyChart is one series of the 24-hour chart.
type HourlyChart struct {
	Available bool      `json:"available"`
	Series    Series    `json:"series"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	Hours     []int     `json:"hours"`
	Values    []float64 `json:"values"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Points    string    `json:"points"`
}

// BuildHourlyChart renders the requested series of h. A nil h yields an
// unavailable chart that still reports which series is toggled.
func BuildHourlyChart(h *weather.HourlySeries, s Series) HourlyChart {
	s = ParseSeries(string(s))
	chart := HourlyChart{
		Series: s,
		Label:  s.Label(),
		Color:  s.Color(),
	}
	if h == nil {
		return chart
	}

	chart.Available = true
	chart.Hours = append([]int(nil), h.Hours[:]...)
	chart.Values = s.values(h)
	chart.Min, chart.Max = bounds(chart.Values)
	chart.Points = polyline(chart.Values, chart.Min, chart.Max)
	return chart
}

func bounds(values []float64) (lo, hi float64) {
	for i, v := range values {
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi
}

// polyline lays values out left to right over the plot area; a flat series
// is drawn at mid height.
func polyline(values []float64, lo, hi float64) string {
	if len(values) == 0 {
		return ""
	}

	plotW := float64(ChartWidth - chartMarginLeft - chartMarginRight)
	plotH := float64(ChartHeight - chartMarginTop - chartMarginBottom)

	step := 0.0
	if len(values) > 1 {
		step = plotW / float64(len(values)-1)
	}

	var b strings.Builder
	for i, v := range values {
		x := chartMarginLeft + float64(i)*step
		y := chartMarginTop + plotH/2
		if hi > lo {
			y = chartMarginTop + (hi-v)/(hi-lo)*plotH
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return b.String()
}
