package audit

import (
	"sync"

	"github.com/rs/zerolog"
)

type Event struct {
	SessionID string
	Action    string
	Entity    string
	EntityID  *int64
	Metadata  any
}

type Dispatcher struct {
	logger *Logger
	log    zerolog.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log zerolog.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 100
	}

	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, buffer),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.SessionID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn().Err(err).Str("action", ev.Action).Msg("audit error")
		}
	}
}

// Dispatch never blocks; a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
