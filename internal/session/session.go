package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/BruksfildServices01/palfi-booking/internal/store"
)

// Session is everything bound to one browser session. Callers hold the
// lock for the whole of an action so load, mutate and save never interleave
// with another request from the same session.
type Session struct {
	ID    string
	Store *store.Store

	mu       sync.Mutex
	feedback map[string]Feedback
	adminJTI string

	lastSeen atomic.Int64 // unix nanos, read without the lock
}

func newSession(id string, st *store.Store, now time.Time) *Session {
	s := &Session{
		ID:       id,
		Store:    st,
		feedback: map[string]Feedback{},
	}
	s.touch(now)
	return s
}

func (s *Session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

func (s *Session) idleSince(cutoff time.Time) bool {
	return s.lastSeen.Load() < cutoff.UnixNano()
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// The methods below expect the caller to hold the lock.

func (s *Session) SetFeedback(channel string, f Feedback) {
	s.feedback[channel] = f
}

// Feedback returns the channel's message if it has not been dismissed yet.
func (s *Session) Feedback(channel string, now time.Time) (Feedback, bool) {
	f, ok := s.feedback[channel]
	if !ok || !f.ActiveAt(now) {
		return Feedback{}, false
	}
	return f, true
}

// GrantAdmin marks the session as logged in under the given token id.
func (s *Session) GrantAdmin(tokenID string) {
	s.adminJTI = tokenID
}

func (s *Session) RevokeAdmin() {
	s.adminJTI = ""
}

func (s *Session) IsAdmin(tokenID string) bool {
	return s.adminJTI != "" && s.adminJTI == tokenID
}

func (s *Session) LoggedIn() bool {
	return s.adminJTI != ""
}
