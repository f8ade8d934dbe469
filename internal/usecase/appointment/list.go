package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/palfi-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/palfi-booking/internal/models"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
)

const (
	MsgEmptyListing = "Még nincsenek foglalások."
	MsgRefreshed    = "Foglalások frissítve!"
)

type Listing struct {
	Appointments []models.Appointment
	// Message is set when there is nothing to show.
	Message string
}

type ListAppointments struct {
	loc         *time.Location
	now         func() time.Time
	feedbackTTL time.Duration
	log         zerolog.Logger
}

func NewListAppointments(loc *time.Location, feedbackTTL time.Duration, log zerolog.Logger) *ListAppointments {
	if loc == nil {
		loc = time.Local
	}
	return &ListAppointments{loc: loc, now: time.Now, feedbackTTL: feedbackTTL, log: log}
}

// Execute returns the session's bookings sorted by start instant.
func (uc *ListAppointments) Execute(ctx context.Context, sess *session.Session) Listing {
	sess.Lock()
	defer sess.Unlock()

	return uc.listLocked(ctx, sess)
}

// Refresh is Execute plus the admin confirmation message.
func (uc *ListAppointments) Refresh(ctx context.Context, sess *session.Session) (Listing, session.Feedback) {
	sess.Lock()
	defer sess.Unlock()

	l := uc.listLocked(ctx, sess)
	fb := session.NewFeedback(session.FeedbackSuccess, "", MsgRefreshed, uc.now(), uc.feedbackTTL)
	sess.SetFeedback(session.ChannelAdmin, fb)
	return l, fb
}

// Export is the serialized collection as it would be written to the slot.
func (uc *ListAppointments) Export(sess *session.Session) ([]byte, error) {
	sess.Lock()
	defer sess.Unlock()

	return sess.Store.Snapshot()
}

func (uc *ListAppointments) listLocked(ctx context.Context, sess *session.Session) Listing {
	records, err := sess.Store.LoadAll(ctx)
	noteStorageError(uc.log, sess.ID, "list", err)

	l := Listing{Appointments: domain.SortByStart(records, uc.loc)}
	if len(l.Appointments) == 0 {
		l.Message = MsgEmptyListing
	}
	return l
}
