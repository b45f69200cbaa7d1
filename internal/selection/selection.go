package selection

import (
	"github.com/i474232898/clima-ecuador/internal/gazetteer"
	"github.com/i474232898/clima-ecuador/internal/weather"
)

// FirstCityFunc returns the first city listed for a province.
type FirstCityFunc func(province string) string

// Selection is the province/city/day the user is looking at. It performs no
// validation: callers only pass combinations offered by the gazetteer.
type Selection struct {
	Province string `json:"province"`
	City     string `json:"city"`
	Day      string `json:"day"`

	firstCity FirstCityFunc
}

// New returns the default selection (Guayas/Guayaquil, no day) backed by the
// built-in gazetteer.
func New() Selection {
	return NewWithGazetteer(gazetteer.FirstCity)
}

// NewWithGazetteer is New with a custom first-city lookup.
func NewWithGazetteer(firstCity FirstCityFunc) Selection {
	return Selection{
		Province:  gazetteer.DefaultProvince,
		City:      gazetteer.DefaultCity,
		firstCity: firstCity,
	}
}

func (s *Selection) lookup(province string) string {
	if s.firstCity == nil {
		return gazetteer.FirstCity(province)
	}
	return s.firstCity(province)
}

// SetProvince selects p, or the default province when p is empty, and resets
// the city to the province's first city. The location always changes from the
// caller's point of view, so a refetch is always due.
func (s *Selection) SetProvince(p string) (refetch bool) {
	if p == "" {
		p = gazetteer.DefaultProvince
	}
	s.Province = p
	s.City = s.lookup(p)
	return true
}

// SetCity selects c. An empty c falls back to the first city of the current
// province. The province is never touched. It reports whether the city
// changed.
func (s *Selection) SetCity(c string) (changed bool) {
	if c == "" {
		if s.Province == "" {
			return false
		}
		c = s.lookup(s.Province)
	}
	changed = c != s.City
	s.City = c
	return changed
}

// SetSelectedDay overwrites the selected day key unconditionally.
func (s *Selection) SetSelectedDay(d string) {
	s.Day = d
}

func (s Selection) Location() weather.Location {
	return weather.Location{Province: s.Province, City: s.City}
}
