package appointment

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/palfi-booking/internal/httperr"
)

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.backend.Put("sid", `{"appointments":[
		{"id":1,"date":"2025-01-02","time":"11:00"},
		{"id":2,"date":"2025-01-03","time":"09:00"}
	]}`)
	sess := f.reg.Get(ctx, "sid")
	uc := NewGetAvailability(f.cat, zerolog.New(io.Discard))

	opts, err := uc.Execute(ctx, sess, "2025-01-02")
	require.NoError(t, err)
	require.Len(t, opts, len(f.cat.TimeSlots))

	for _, o := range opts {
		if o.Time == "11:00" {
			assert.True(t, o.Disabled)
			assert.Equal(t, "11:00 (Foglalt)", o.Label)
			continue
		}
		assert.False(t, o.Booked, o.Time)
		assert.Equal(t, o.Time, o.Label)
	}

	_, err = uc.Execute(ctx, sess, "02/01/2025")
	assert.True(t, httperr.IsBusiness(err, CodeInvalidDate))
}
