package httpapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/numbolt/internal/engine"
)

// ErrSessionNotFound is returned for unknown or expired round ids.
var ErrSessionNotFound = errors.New("round not found")

// session is one HTTP player's engine. mu serialises calls on the engine,
// which is not safe for concurrent use.
type session struct {
	mu       sync.Mutex
	id       string
	profile  string
	eng      *engine.Engine
	lastSeen time.Time
}

// touch records activity; callers hold s.mu.
func (s *session) touch(now time.Time) {
	s.lastSeen = now
}

// sessionStore keeps live rounds in memory. State is lost on restart.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// add stores an engine under a fresh id and drops idle sessions.
func (st *sessionStore) add(profile string, eng *engine.Engine) *session {
	now := st.now()
	s := &session{
		id:       uuid.NewString(),
		profile:  profile,
		eng:      eng,
		lastSeen: now,
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.evictLocked(now)
	st.sessions[s.id] = s
	return s
}

func (st *sessionStore) get(id string) (*session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (st *sessionStore) count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// evictLocked removes sessions idle for longer than the ttl.
// A session whose lock is held is in use and kept.
func (st *sessionStore) evictLocked(now time.Time) {
	if st.ttl <= 0 {
		return
	}
	for id, s := range st.sessions {
		if !s.mu.TryLock() {
			continue
		}
		idle := now.Sub(s.lastSeen)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
		}
	}
}
