package dashboard

import (
	"sync"
	"time"

	"github.com/i474232898/clima-ecuador/internal/selection"
	"github.com/i474232898/clima-ecuador/internal/weather"
)

// Operation names recorded in State.LastFailure.
const (
	OpCurrentForecast = "current_forecast"
	OpHourly          = "hourly"
)

// State is an immutable copy of everything the views render.
type State struct {
	Province    string                     `json:"province"`
	City        string                     `json:"city"`
	Day         string                     `json:"day"`
	Conditions  *weather.CurrentConditions `json:"conditions"`
	Forecast    []weather.ForecastSample   `json:"forecast"`
	Buckets     weather.DayBuckets         `json:"buckets"`
	Hourly      *weather.HourlySeries      `json:"hourly"`
	Coordinates weather.Coordinates        `json:"coordinates"`
	LastFailure *weather.Failure           `json:"lastFailure,omitempty"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}

// Location returns the selected province/city.
func (s State) Location() weather.Location {
	return weather.Location{Province: s.Province, City: s.City}
}

// Stale reports whether the data on screen is older than the latest attempt.
func (s State) Stale() bool {
	return s.LastFailure != nil
}

// Dashboard owns the selection and the fetched data of one viewer. Fetch
// results are tagged with a sequence token when they are requested and only
// applied while the token is still current, so a slow response for an old
// location can never overwrite a newer one.
type Dashboard struct {
	mu sync.RWMutex

	sel        selection.Selection
	conditions *weather.CurrentConditions
	forecast   []weather.ForecastSample
	hourly     *weather.HourlySeries
	coords     weather.Coordinates

	locationSeq uint64
	hourlySeq   uint64

	lastFailure *weather.Failure
	updatedAt   time.Time
}

// New returns a dashboard at the default location with no data.
func New() *Dashboard {
	return &Dashboard{
		sel:    selection.New(),
		coords: weather.DefaultCoordinates,
	}
}

// SelectProvince changes the province (resetting the city) and returns the
// new location token.
func (d *Dashboard) SelectProvince(p string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sel.SetProvince(p)
	d.locationSeq++
	return d.locationSeq
}

// SelectCity changes the city. The token only advances when the city
// actually changed.
func (d *Dashboard) SelectCity(c string) (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.sel.SetCity(c) {
		return d.locationSeq, false
	}
	d.locationSeq++
	return d.locationSeq, true
}

func (d *Dashboard) SelectDay(day string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sel.SetSelectedDay(day)
}

// LocationRequest returns the city to fetch and the token to apply the
// result with.
func (d *Dashboard) LocationRequest() (city string, token uint64) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.sel.City, d.locationSeq
}

// HourlyRequest returns the coordinates to fetch and the token to apply the
// result with.
func (d *Dashboard) HourlyRequest() (weather.Coordinates, uint64) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.coords, d.hourlySeq
}

// ApplySnapshot applies a current+forecast result fetched under token. Stale
// results are dropped and reported as not applied. A failed result keeps the
// previous data and records the failure.
func (d *Dashboard) ApplySnapshot(token uint64, res weather.Result[weather.Snapshot]) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if token != d.locationSeq {
		return false
	}

	if !res.OK() {
		d.lastFailure = weather.FailureFrom(OpCurrentForecast, res.Err, res.FetchedAt)
		return true
	}

	previous := d.forecast
	conditions := res.Value.Conditions
	d.conditions = &conditions
	d.forecast = res.Value.Forecast
	d.updatedAt = res.FetchedAt
	d.clearFailure(OpCurrentForecast)

	if day, ok := weather.DefaultDay(previous, d.forecast, d.sel.Day); ok {
		d.sel.SetSelectedDay(day)
	}

	if conditions.Coordinates != d.coords {
		d.coords = conditions.Coordinates
		d.hourlySeq++
	}
	return true
}

// ApplyHourly applies an hourly result fetched under token.
func (d *Dashboard) ApplyHourly(token uint64, res weather.Result[weather.HourlySeries]) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if token != d.hourlySeq {
		return false
	}

	if !res.OK() {
		d.lastFailure = weather.FailureFrom(OpHourly, res.Err, res.FetchedAt)
		return true
	}

	series := res.Value
	d.hourly = &series
	d.clearFailure(OpHourly)
	return true
}

func (d *Dashboard) clearFailure(op string) {
	if d.lastFailure != nil && d.lastFailure.Op == op {
		d.lastFailure = nil
	}
}

// View returns a copy of the current state.
func (d *Dashboard) View() State {
	d.mu.RLock()
	defer d.mu.RUnlock()

	st := State{
		Province:    d.sel.Province,
		City:        d.sel.City,
		Day:         d.sel.Day,
		Coordinates: d.coords,
		UpdatedAt:   d.updatedAt,
	}
	if d.conditions != nil {
		c := *d.conditions
		st.Conditions = &c
	}
	if d.forecast != nil {
		st.Forecast = append([]weather.ForecastSample(nil), d.forecast...)
		st.Buckets = weather.GroupByDay(st.Forecast)
	}
	if d.hourly != nil {
		h := *d.hourly
		st.Hourly = &h
	}
	if d.lastFailure != nil {
		f := *d.lastFailure
		st.LastFailure = &f
	}
	return st
}
