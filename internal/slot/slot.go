// Package slot holds the per-session string slot the booking store
// serializes into. A slot lives as long as its session and no longer.
package slot

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends that were shut down.
var ErrClosed = errors.New("slot: backend closed")

// Slot is one session's storage location. Load returns nil when nothing
// has been saved yet.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Backend hands out the slot for a session.
type Backend interface {
	Slot(sessionID string) Slot
	Name() string
	Close() error
}

// Purger is implemented by backends whose expired slots must be removed
// explicitly.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// bound adapts a keyed backend to the Slot interface.
type bound struct {
	key  string
	load func(ctx context.Context, key string) ([]byte, error)
	save func(ctx context.Context, key string, data []byte) error
}

func (b bound) Load(ctx context.Context) ([]byte, error) {
	return b.load(ctx, b.key)
}

func (b bound) Save(ctx context.Context, data []byte) error {
	return b.save(ctx, b.key, data)
}
