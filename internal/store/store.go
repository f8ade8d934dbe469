// Package store keeps a session's appointments in memory and mirrors every
// change into the session slot as {"appointments":[...]}.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/palfi-booking/internal/models"
	"github.com/BruksfildServices01/palfi-booking/internal/slot"
)

var (
	// ErrStorageParse means the slot could not be read or did not hold a
	// usable payload. The in-memory collection is kept as is.
	ErrStorageParse = errors.New("storage parse failure")
	// ErrStorageWrite means the collection could not be written back. The
	// in-memory collection stays authoritative.
	ErrStorageWrite = errors.New("storage write failure")
)

var tracer = otel.Tracer("github.com/BruksfildServices01/palfi-booking/internal/store")

// Store is not safe for concurrent use; the owning session serializes access.
type Store struct {
	slot     slot.Slot
	records  []models.Appointment
	hydrated bool
}

func New(s slot.Slot) *Store {
	return &Store{slot: s, records: []models.Appointment{}}
}

// Hydrated reports whether Hydrate has run at least once.
func (s *Store) Hydrated() bool { return s.hydrated }

// Hydrate adopts the slot content when it parses and carries an
// appointments array. Any failure leaves the previous collection in place.
func (s *Store) Hydrate(ctx context.Context) error {
	s.hydrated = true

	recs, ok, err := s.read(ctx)
	if ok {
		s.records = recs
	}
	return err
}

// LoadAll re-reads the slot when it is well-formed and returns a copy of the
// collection. On a read or parse failure it returns the fallback collection
// together with an error wrapping ErrStorageParse.
func (s *Store) LoadAll(ctx context.Context) ([]models.Appointment, error) {
	err := s.Hydrate(ctx)
	return s.copyRecords(), err
}

// Append adds rec at the end and writes the whole collection back.
func (s *Store) Append(ctx context.Context, rec models.Appointment) error {
	ctx, span := tracer.Start(ctx, "store.append")
	defer span.End()
	span.SetAttributes(attribute.Int64("appointment.id", rec.ID))

	_, loadErr := s.LoadAll(ctx)
	s.records = append(s.records, rec)

	return errors.Join(loadErr, s.persist(ctx))
}

// Remove drops the first record with this id and writes the collection back.
// The bool only reports that the step ran; it is true even when nothing
// matched.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "store.remove")
	defer span.End()
	span.SetAttributes(attribute.Int64("appointment.id", id))

	_, loadErr := s.LoadAll(ctx)
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			break
		}
	}

	return true, errors.Join(loadErr, s.persist(ctx))
}

// Snapshot is the serialized form of the in-memory collection.
func (s *Store) Snapshot() ([]byte, error) {
	return json.Marshal(models.SlotPayload{Appointments: s.copyRecords()})
}

func (s *Store) persist(ctx context.Context) error {
	data, err := s.Snapshot()
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStorageWrite, err)
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

// read returns the slot's appointments and whether they should be adopted.
// Empty slots and text that is not a JSON object count as "nothing stored".
func (s *Store) read(ctx context.Context) ([]models.Appointment, bool, error) {
	data, err := s.slot.Load(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("%w: load: %w", ErrStorageParse, err)
	}
	if !bytes.HasPrefix(data, []byte("{")) {
		return nil, false, nil
	}

	var doc struct {
		Appointments json.RawMessage `json:"appointments"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStorageParse, err)
	}

	raw := bytes.TrimSpace(doc.Appointments)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false, nil
	}
	if raw[0] != '[' {
		return nil, false, fmt.Errorf("%w: appointments is not a list", ErrStorageParse)
	}

	recs := []models.Appointment{}
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStorageParse, err)
	}
	return recs, true, nil
}

func (s *Store) copyRecords() []models.Appointment {
	out := make([]models.Appointment, len(s.records))
	copy(out, s.records)
	return out
}
