package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

func TestResolverEcuador(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)

	tests := []struct {
		name   string
		coords weather.Coordinates
		want   string
	}{
		{"Guayaquil", weather.DefaultCoordinates, "America/Guayaquil"},
		{"Quito", weather.Coordinates{Lat: -0.2299, Lon: -78.5249}, "America/Guayaquil"},
		{"Puerto Ayora", weather.Coordinates{Lat: -0.7432, Lon: -90.3157}, "Pacific/Galapagos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Location(tt.coords).String())
		})
	}
}

func TestResolverIsSingleton(t *testing.T) {
	a, err := NewResolver()
	require.NoError(t, err)
	b, err := NewResolver()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestFixed(t *testing.T) {
	assert.Equal(t, time.UTC, Fixed{}.Location(weather.DefaultCoordinates))
	assert.Equal(t, time.UTC, UTC.Location(weather.Coordinates{}))

	ect := time.FixedZone("ECT", -5*3600)
	assert.Equal(t, ect, Fixed{Loc: ect}.Location(weather.DefaultCoordinates))
}
