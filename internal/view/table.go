package view

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

// Messages shown instead of the table.
const (
	MessageNoForecast   = "No hay datos disponibles"
	MessageNoDataForDay = "No hay datos disponibles para este día"
)

// TableHeaders are the column titles of the hourly table.
var TableHeaders = []string{"Hora", "Condición", "Temperatura", "Humedad", "Nubosidad", "Viento"}

// TableRow is one forecast sample of the selected day.
type TableRow struct {
	Time          string  `json:"time" csv:"hora"`
	Condition     string  `json:"condition" csv:"condicion"`
	IconURL       string  `json:"iconUrl" csv:"icono"`
	Temperature   int     `json:"temperature" csv:"temperatura_c"`
	Humidity      float64 `json:"humidity" csv:"humedad_pct"`
	CloudCover    float64 `json:"cloudCover" csv:"nubosidad_pct"`
	WindKmh       int     `json:"windKmh" csv:"viento_kmh"`
	WindDirection float64 `json:"windDirection" csv:"viento_dir_deg"`
}

func (r TableRow) Cells() []string {
	return []string{
		r.Time,
		r.Condition,
		fmt.Sprintf("%d°C", r.Temperature),
		number(r.Humidity) + "%",
		number(r.CloudCover) + "%",
		fmt.Sprintf("%d km/h %s°", r.WindKmh, number(r.WindDirection)),
	}
}

// HourlyTable is the selected day's forecast, or a message explaining why
// there is nothing to show.
type HourlyTable struct {
	Status  weather.TableStatus `json:"status"`
	Day     string              `json:"day"`
	Message string              `json:"message,omitempty"`
	Headers []string            `json:"headers"`
	Rows    []TableRow          `json:"rows"`
}

// BuildHourlyTable filters forecast to day and renders the rows with times
// in loc.
func BuildHourlyTable(forecast []weather.ForecastSample, day string, loc *time.Location) HourlyTable {
	if loc == nil {
		loc = time.UTC
	}

	filtered := weather.FilterDay(forecast, day, loc)
	table := HourlyTable{
		Status:  filtered.Status,
		Day:     day,
		Headers: TableHeaders,
	}

	switch filtered.Status {
	case weather.TableNoForecast:
		table.Message = MessageNoForecast
		return table
	case weather.TableNoDataForDay:
		table.Message = MessageNoDataForDay
		return table
	}

	table.Rows = make([]TableRow, 0, len(filtered.Samples))
	for _, s := range filtered.Samples {
		table.Rows = append(table.Rows, TableRow{
			Time:          s.Timestamp.In(loc).Format(clockLayout),
			Condition:     s.ConditionDescription,
			IconURL:       fmt.Sprintf(smallIconURL, s.IconCode),
			Temperature:   round(s.Temperature),
			Humidity:      s.Humidity,
			CloudCover:    s.CloudCoverPct,
			WindKmh:       round(s.WindSpeed * msToKmh),
			WindDirection: s.WindDirectionDeg,
		})
	}
	return table
}

// WriteCSV writes the table rows as CSV with a header line. Tables without
// rows produce only the header.
func WriteCSV(w io.Writer, t HourlyTable) error {
	rows := t.Rows
	if rows == nil {
		rows = []TableRow{}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write table csv: %w", err)
	}
	return nil
}
