package view

import (
	"github.com/i474232898/clima-ecuador/internal/dashboard"
	"github.com/i474232898/clima-ecuador/internal/gazetteer"
	"github.com/i474232898/clima-ecuador/internal/timezone"
	"github.com/i474232898/clima-ecuador/internal/weather"
)

// Page is everything one render of the dashboard shows.
type Page struct {
	Province    string           `json:"province"`
	City        string           `json:"city"`
	Day         string           `json:"day"`
	Provinces   []string         `json:"provinces"`
	Cities      []string         `json:"cities"`
	TimeZone    string           `json:"timeZone"`
	Card        ConditionsCard   `json:"conditions"`
	Days        []DayOption      `json:"days"`
	Chart       HourlyChart      `json:"chart"`
	Table       HourlyTable      `json:"table"`
	LastFailure *weather.Failure `json:"lastFailure,omitempty"`
}

// Stale reports whether a newer fetch failed and the data shown is old.
func (p Page) Stale() bool {
	return p.LastFailure != nil
}

// Build renders every view of st. A nil tz shows times in UTC.
func Build(st dashboard.State, series Series, tz timezone.Resolver) Page {
	if tz == nil {
		tz = timezone.UTC
	}
	loc := tz.Location(st.Coordinates)

	return Page{
		Province:    st.Province,
		City:        st.City,
		Day:         st.Day,
		Provinces:   gazetteer.Provinces(),
		Cities:      gazetteer.Cities(st.Province),
		TimeZone:    loc.String(),
		Card:        BuildConditionsCard(st.Conditions, loc),
		Days:        BuildDayPicker(st.Buckets, st.Day),
		Chart:       BuildHourlyChart(st.Hourly, series),
		Table:       BuildHourlyTable(st.Forecast, st.Day, loc),
		LastFailure: st.LastFailure,
	}
}
