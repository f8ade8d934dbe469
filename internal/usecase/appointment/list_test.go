package appointment

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/palfi-booking/internal/models"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
)

func TestListSorted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.backend.Put("sid", `{"appointments":[
		{"id":1,"date":"2025-01-02","time":"09:00"},
		{"id":2,"date":"2025-01-01","time":"10:00"},
		{"id":3,"date":"2025-01-01","time":"09:00"}
	]}`)
	sess := f.reg.Get(ctx, "sid")

	l := f.list.Execute(ctx, sess)
	require.Len(t, l.Appointments, 3)
	assert.Empty(t, l.Message)

	var order []int64
	for _, a := range l.Appointments {
		order = append(order, a.ID)
	}
	assert.Equal(t, []int64{3, 2, 1}, order)
}

func TestListEmptyAndRefresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	sess := f.reg.Get(ctx, "sid")

	l := f.list.Execute(ctx, sess)
	assert.Empty(t, l.Appointments)
	assert.Equal(t, MsgEmptyListing, l.Message)

	_, fb := f.list.Refresh(ctx, sess)
	assert.Equal(t, MsgRefreshed, fb.Message)

	sess.Lock()
	got, ok := sess.Feedback(session.ChannelAdmin, f.now)
	sess.Unlock()
	require.True(t, ok)
	assert.Equal(t, fb, got)
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	sess := f.reg.Get(ctx, "sid")

	res, err := f.create.Execute(ctx, sess, validInput())
	require.NoError(t, err)

	l, fb := f.delete.Execute(ctx, sess, res.Appointment.ID+1)
	assert.Len(t, l.Appointments, 1)
	assert.Equal(t, MsgDeleted, fb.Message)

	l, _ = f.delete.Execute(ctx, sess, res.Appointment.ID)
	assert.Empty(t, l.Appointments)
	assert.Equal(t, MsgEmptyListing, l.Message)

	raw, err := f.backend.Slot("sid").Load(ctx)
	require.NoError(t, err)
	var payload models.SlotPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Empty(t, payload.Appointments)
}

func TestExportMatchesSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	sess := f.reg.Get(ctx, "sid")

	_, err := f.create.Execute(ctx, sess, validInput())
	require.NoError(t, err)

	out, err := f.list.Export(sess)
	require.NoError(t, err)

	raw, err := f.backend.Slot("sid").Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}
