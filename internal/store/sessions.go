package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/clima-ecuador/internal/dashboard"
)

var (
	// ErrNotFound is returned when no dashboard exists for a session ID.
	ErrNotFound = errors.New("no dashboard for session")
)

// Session is one viewer's dashboard plus bookkeeping for retention.
type Session struct {
	ID         string
	Controller *dashboard.Controller
	Series     string

	createdAt  time.Time
	lastAccess time.Time
}

// SessionStore is a concurrency-safe in-memory map of session ID to
// dashboard.
type SessionStore struct {
	mu sync.RWMutex

	data map[string]*Session

	// retention configuration
	maxCount int           // max number of live sessions
	maxIdle  time.Duration // sessions idle longer than this are dropped

	now func() time.Time
}

// NewSessionStore creates a new SessionStore with optional limits.
// If maxCount or maxIdle is <= 0, that limit is treated as unlimited.
func NewSessionStore(maxCount int, maxIdle time.Duration) *SessionStore {
	return &SessionStore{
		data:     make(map[string]*Session),
		maxCount: maxCount,
		maxIdle:  maxIdle,
		now:      time.Now,
	}
}

// Create registers a new session for ctrl and returns a copy of it. Retention is
// enforced before the new session is added, so it is never evicted itself.
func (s *SessionStore) Create(ctrl *dashboard.Controller) *Session {
	now := s.now()
	sess := &Session{
		ID:         uuid.NewString(),
		Controller: ctrl,
		createdAt:  now,
		lastAccess: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(now)

	// Enforce retention by count, oldest access first.
	if s.maxCount > 0 && len(s.data) >= s.maxCount {
		over := len(s.data) - s.maxCount + 1
		for _, id := range s.byAccessLocked()[:over] {
			delete(s.data, id)
		}
	}

	s.data[sess.ID] = sess
	cp := *sess
	return &cp
}

// Get returns a copy of the session for id and marks it as accessed.
func (s *SessionStore) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.maxIdle > 0 && now.Sub(sess.lastAccess) > s.maxIdle {
		delete(s.data, id)
		return nil, ErrNotFound
	}

	sess.lastAccess = now
	cp := *sess
	return &cp, nil
}

// SetSeries remembers the chart series toggled in a session.
func (s *SessionStore) SetSeries(id, series string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}
	sess.Series = series
	return nil
}

// Live returns the controllers of every non-expired session.
func (s *SessionStore) Live() []*dashboard.Controller {
	return s.Active(0)
}

// Active returns the controllers of sessions accessed within the last
// window, most recently used first. A window <= 0 returns every live session.
func (s *SessionStore) Active(window time.Duration) []*dashboard.Controller {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(now)

	ids := s.byAccessLocked()
	out := make([]*dashboard.Controller, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		sess := s.data[ids[i]]
		if window > 0 && now.Sub(sess.lastAccess) > window {
			break
		}
		out = append(out, sess.Controller)
	}
	return out
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// expireLocked enforces retention by idle age. Callers hold mu.
func (s *SessionStore) expireLocked(now time.Time) {
	if s.maxIdle <= 0 {
		return
	}
	cutoff := now.Add(-s.maxIdle)
	for id, sess := range s.data {
		if sess.lastAccess.Before(cutoff) {
			delete(s.data, id)
		}
	}
}

// byAccessLocked returns session IDs ordered by last access, oldest first.
func (s *SessionStore) byAccessLocked() []string {
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.data[ids[i]], s.data[ids[j]]
		if a.lastAccess.Equal(b.lastAccess) {
			return a.createdAt.Before(b.createdAt)
		}
		return a.lastAccess.Before(b.lastAccess)
	})
	return ids
}
