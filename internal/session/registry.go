package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/palfi-booking/internal/slot"
	"github.com/BruksfildServices01/palfi-booking/internal/store"
)

// Registry owns the live sessions. A session created here is hydrated
// from its slot once; after that the store keeps itself in sync.
type Registry struct {
	backend slot.Backend
	ttl     time.Duration
	log     zerolog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(backend slot.Backend, ttl time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		backend:  backend,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// SetClock replaces the time source. Tests only.
func (r *Registry) SetClock(now func() time.Time) { r.now = now }

// Get returns the session for id, creating and hydrating it on first use.
// The slot is read without holding the registry lock, so a slow backend
// only delays the session being created.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	if s, ok := r.lookup(id); ok {
		return s
	}

	st := store.New(r.backend.Slot(id))
	if err := st.Hydrate(ctx); err != nil {
		r.log.Warn().Err(err).Str("session", id).Msg("slot hydrate failed, starting empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	// Another request for the same id may have won the race.
	if s, ok := r.sessions[id]; ok {
		s.touch(now)
		return s
	}

	s := newSession(id, st, now)
	r.sessions[id] = s
	return s
}

func (r *Registry) lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep forgets sessions idle for longer than the ttl.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.idleSince(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done. Backends that
// need explicit expiry are purged on the same tick.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

// tick runs one sweep and purges the backend when it needs explicit expiry.
func (r *Registry) tick(ctx context.Context) {
	if n := r.Sweep(); n > 0 {
		r.log.Debug().Int("sessions", n).Msg("swept idle sessions")
	}

	p, ok := r.backend.(slot.Purger)
	if !ok {
		return
	}
	n, err := p.PurgeExpired(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("purge expired slots failed")
		return
	}
	if n > 0 {
		r.log.Debug().Int64("slots", n).Msg("purged expired slots")
	}
}
