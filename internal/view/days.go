package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

// DayOption is one button of the day-picker.
type DayOption struct {
	Date            string  `json:"date"`
	Label           string  `json:"label"`
	IconURL         string  `json:"iconUrl"`
	Description     string  `json:"description"`
	MeanTemperature int     `json:"meanTemperature"`
	WindSpeed       int     `json:"windSpeed"`
	CloudCover      float64 `json:"cloudCover"`
	Humidity        int     `json:"humidity"`
	Selected        bool    `json:"selected"`
}

// BuildDayPicker renders one option per bucket, in bucket order. Secondary
// stats come from each bucket's representative sample; wind stays in m/s.
func BuildDayPicker(buckets weather.DayBuckets, selected string) []DayOption {
	out := make([]DayOption, 0, len(buckets))
	for _, b := range buckets {
		rep := b.Representative
		out = append(out, DayOption{
			Date:            b.Date,
			Label:           dayLabel(b.Date),
			IconURL:         fmt.Sprintf(smallIconURL, b.RepresentativeIcon),
			Description:     b.RepresentativeDescription,
			MeanTemperature: round(b.MeanTemperature()),
			WindSpeed:       round(rep.WindSpeed),
			CloudCover:      rep.CloudCoverPct,
			Humidity:        round(rep.Humidity),
			Selected:        b.Date == selected,
		})
	}
	return out
}

// dayLabel turns "2024-05-01" into "WED, MAY 1".
func dayLabel(date string) string {
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return strings.ToUpper(date)
	}
	return strings.ToUpper(t.Format("Mon, Jan 2"))
}
