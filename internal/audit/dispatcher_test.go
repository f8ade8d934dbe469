package audit

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestDispatcherWritesEvents(t *testing.T) {
	out := &syncBuffer{}
	log := zerolog.New(out)
	d := NewDispatcher(New(log), log, 10)

	id := int64(42)
	d.Dispatch(Event{
		SessionID: "sid",
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &id,
		Metadata:  map[string]string{"date": "2025-01-01"},
	})
	d.Close()

	got := out.String()
	assert.Contains(t, got, `"action":"appointment_created"`)
	assert.Contains(t, got, `"entity_id":42`)
	assert.Contains(t, got, `"metadata":{"date":"2025-01-01"}`)
	assert.Contains(t, got, `"component":"audit"`)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	out := &syncBuffer{}
	log := zerolog.New(out)
	d := NewDispatcher(New(log), log, 1)
	d.Close()
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "late"})
	})
	assert.NotContains(t, out.String(), "late")
}
