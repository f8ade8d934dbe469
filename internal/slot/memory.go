package slot

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend keeps slots in process memory. Entries expire after ttl
// without a save; a zero ttl keeps them until Close.
type MemoryBackend struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	data   map[string]memEntry
	closed bool
}

type memEntry struct {
	payload []byte
	expires time.Time
}

func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]memEntry),
	}
}

// SetClock replaces the time source. Tests only.
func (m *MemoryBackend) SetClock(now func() time.Time) { m.now = now }

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Slot(sessionID string) Slot {
	return bound{key: sessionID, load: m.load, save: m.save}
}

func (m *MemoryBackend) load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	e, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	if m.ttl > 0 && !m.now().Before(e.expires) {
		delete(m.data, key)
		return nil, nil
	}

	out := make([]byte, len(e.payload))
	copy(out, e.payload)
	return out, nil
}

func (m *MemoryBackend) save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	m.data[key] = memEntry{payload: buf, expires: m.now().Add(m.ttl)}
	return nil
}

// Put writes raw text into a slot. Used to seed state in tests and tooling.
func (m *MemoryBackend) Put(sessionID string, raw string) {
	_ = m.save(context.Background(), sessionID, []byte(raw))
}

// PurgeExpired drops every entry past its expiry, read or not.
func (m *MemoryBackend) PurgeExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.ttl <= 0 {
		return 0, nil
	}

	now := m.now()
	var n int64
	for key, e := range m.data {
		if !now.Before(e.expires) {
			delete(m.data, key)
			n++
		}
	}
	return n, nil
}

// Len is the number of stored slots, expired ones included.
func (m *MemoryBackend) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = map[string]memEntry{}
	return nil
}
