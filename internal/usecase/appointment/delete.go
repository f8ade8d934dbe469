package appointment

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/palfi-booking/internal/audit"
	"github.com/BruksfildServices01/palfi-booking/internal/metrics"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
)

const (
	CodeConfirmationRequired = "confirmation_required"
	MsgConfirmDelete         = "Biztosan törölni szeretné ezt a foglalást?"
	MsgDeleted               = "Foglalás sikeresen törölve!"
)

type DeleteAppointment struct {
	list  *ListAppointments
	audit *audit.Dispatcher
}

func NewDeleteAppointment(list *ListAppointments, dispatcher *audit.Dispatcher) *DeleteAppointment {
	return &DeleteAppointment{list: list, audit: dispatcher}
}

// Execute removes the booking and returns the listing as reloaded from the
// store. An unknown id is not an error.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	sess *session.Session,
	id int64,
) (Listing, session.Feedback) {

	ctx, span := tracer.Start(ctx, "booking.delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("appointment.id", id))

	sess.Lock()
	defer sess.Unlock()

	if _, err := sess.Store.Remove(ctx, id); err != nil {
		noteStorageError(uc.list.log, sess.ID, "remove", err)
	}

	fb := session.NewFeedback(session.FeedbackSuccess, "", MsgDeleted, uc.list.now(), uc.list.feedbackTTL)
	sess.SetFeedback(session.ChannelAdmin, fb)

	metrics.IncDeletion()
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			SessionID: sess.ID,
			Action:    "appointment_deleted",
			Entity:    "appointment",
			EntityID:  &id,
		})
	}

	uc.list.log.Info().Str("session", sess.ID).Int64("id", id).Msg("appointment deleted")

	return uc.list.listLocked(ctx, sess), fb
}
