package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/clima-ecuador/internal/gazetteer"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, "Guayas", s.Province)
	assert.Equal(t, "Guayaquil", s.City)
	assert.Empty(t, s.Day)
}

func TestSetProvinceResetsCityForEveryProvince(t *testing.T) {
	for _, p := range gazetteer.Provinces() {
		t.Run(p, func(t *testing.T) {
			s := New()
			assert.True(t, s.SetProvince(p))
			assert.Equal(t, p, s.Province)
			assert.Equal(t, gazetteer.Cities(p)[0], s.City)
		})
	}
}

func TestSetProvinceGuayasToManab(t *testing.T) {
	s := New()
	s.SetProvince("Manab")
	assert.Equal(t, "Portoviejo", s.City)
}

func TestSetProvinceEmptyFallsBackToDefault(t *testing.T) {
	s := New()
	s.SetProvince("Pichincha")
	s.SetProvince("")
	assert.Equal(t, "Guayas", s.Province)
	assert.Equal(t, "Guayaquil", s.City)
}

func TestSetCity(t *testing.T) {
	s := New()
	s.SetProvince("Pichincha")

	assert.True(t, s.SetCity("Cayambe"))
	assert.Equal(t, "Cayambe", s.City)
	assert.Equal(t, "Pichincha", s.Province)

	assert.False(t, s.SetCity("Cayambe"))

	assert.True(t, s.SetCity(""))
	assert.Equal(t, "Quito", s.City)
}

func TestSetCityWithoutProvince(t *testing.T) {
	s := Selection{City: "Quito"}
	assert.False(t, s.SetCity(""))
	assert.Equal(t, "Quito", s.City)
}

func TestSetSelectedDayOverwrites(t *testing.T) {
	s := New()
	s.SetSelectedDay("2024-05-01")
	s.SetSelectedDay("not-a-day")
	assert.Equal(t, "not-a-day", s.Day)
}

func TestCustomGazetteer(t *testing.T) {
	s := NewWithGazetteer(func(p string) string { return p + "-capital" })
	s.SetProvince("Nowhere")
	assert.Equal(t, "Nowhere-capital", s.City)
	assert.Equal(t, "Nowhere", s.Location().Province)
}
