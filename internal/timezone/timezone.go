package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

// Resolver maps coordinates to the location used for displaying local times.
type Resolver interface {
	Location(coords weather.Coordinates) *time.Location
}

// finderResolver implements Resolver using tzf.
type finderResolver struct {
	finder tzf.F
	mu     sync.RWMutex
	cache  map[string]*time.Location
}

var (
	instance *finderResolver
	once     sync.Once
	initErr  error
)

// NewResolver creates or returns the singleton tzf-backed resolver.
// tzf loads its polygon data into memory once per process.
func NewResolver() (Resolver, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &finderResolver{
			finder: finder,
			cache:  make(map[string]*time.Location),
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// Location returns the IANA zone for coords, or UTC when the zone cannot be
// determined or loaded.
func (r *finderResolver) Location(coords weather.Coordinates) *time.Location {
	name := r.finder.GetTimezoneName(coords.Lon, coords.Lat)
	if name == "" {
		return time.UTC
	}

	r.mu.RLock()
	loc, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}

	r.mu.Lock()
	r.cache[name] = loc
	r.mu.Unlock()
	return loc
}

// Fixed always answers with the same location.
type Fixed struct {
	Loc *time.Location
}

func (f Fixed) Location(weather.Coordinates) *time.Location {
	if f.Loc == nil {
		return time.UTC
	}
	return f.Loc
}

// UTC is the resolver used when zone lookup is disabled.
var UTC Resolver = Fixed{Loc: time.UTC}
