package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/palfi-booking/internal/audit"
	"github.com/BruksfildServices01/palfi-booking/internal/catalog"
	domain "github.com/BruksfildServices01/palfi-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/palfi-booking/internal/httperr"
	"github.com/BruksfildServices01/palfi-booking/internal/metrics"
	"github.com/BruksfildServices01/palfi-booking/internal/models"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/palfi-booking/internal/usecase/appointment")

const timestampLayout = "2006-01-02T15:04:05.000Z"

// ======================================================
// WORKFLOW STATES
// ======================================================

type State string

const (
	StateIdle          State = "idle"
	StateValidating    State = "validating"
	StateConflictCheck State = "conflict_check"
	StatePersisting    State = "persisting"
	StateFeedback      State = "feedback"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateAppointmentInput struct {
	Name    string
	Phone   string
	Email   string
	Service string
	Date    string
	Time    string
	Notes   string
}

type CreateAppointmentResult struct {
	Appointment *models.Appointment
	Feedback    session.Feedback
	// Availability is the time picker for the submitted date, recomputed
	// after the pass.
	Availability []SlotOption
	// Form is what the inputs should hold after the pass: empty after a
	// successful booking, the submitted values after a rejection.
	Form CreateAppointmentInput
	// States lists the workflow states the pass went through.
	States []State
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	catalog     *catalog.Catalog
	loc         *time.Location
	now         func() time.Time
	ids         *IDGenerator
	feedbackTTL time.Duration
	audit       *audit.Dispatcher
	log         zerolog.Logger
}

type CreateAppointmentDeps struct {
	Catalog     *catalog.Catalog
	Location    *time.Location
	Now         func() time.Time
	IDs         *IDGenerator
	FeedbackTTL time.Duration
	Audit       *audit.Dispatcher
	Log         zerolog.Logger
}

func NewCreateAppointment(d CreateAppointmentDeps) *CreateAppointment {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.IDs == nil {
		d.IDs = NewIDGenerator(d.Now)
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	return &CreateAppointment{
		catalog:     d.Catalog,
		loc:         d.Location,
		now:         d.Now,
		ids:         d.IDs,
		feedbackTTL: d.FeedbackTTL,
		audit:       d.Audit,
		log:         d.Log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs one submission from validation to feedback. The returned
// error is the business rule that stopped the pass, if any; the result is
// always filled in and its Feedback is stored on the session.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	sess *session.Session,
	in CreateAppointmentInput,
) (*CreateAppointmentResult, error) {

	ctx, span := tracer.Start(ctx, "booking.create")
	defer span.End()

	in = normalize(in)
	res := &CreateAppointmentResult{States: []State{StateIdle}}

	sess.Lock()
	defer sess.Unlock()

	now := uc.now()

	// --------------------------------------------------
	// 1. Validation
	// --------------------------------------------------
	res.States = append(res.States, StateValidating)
	if err := domain.Validate(domain.Fields{
		Name:  in.Name,
		Phone: in.Phone,
		Date:  in.Date,
		Time:  in.Time,
	}, now, uc.loc); err != nil {
		return uc.reject(ctx, sess, res, in, now, err)
	}

	// --------------------------------------------------
	// 2. Slot conflict
	// --------------------------------------------------
	res.States = append(res.States, StateConflictCheck)
	records, err := sess.Store.LoadAll(ctx)
	noteStorageError(uc.log, sess.ID, "load", err)

	if domain.HasConflict(in.Date, in.Time, records) {
		return uc.reject(ctx, sess, res, in, now, domain.ErrSlotConflict)
	}

	// --------------------------------------------------
	// 3. Persist
	// --------------------------------------------------
	res.States = append(res.States, StatePersisting)
	ap := models.Appointment{
		ID:        uc.ids.Next(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Service:   in.Service,
		Date:      in.Date,
		Time:      in.Time,
		Notes:     in.Notes,
		Timestamp: now.UTC().Format(timestampLayout),
	}

	// Write failures are not the client's problem; the booking stands for
	// the rest of the session.
	if err := sess.Store.Append(ctx, ap); err != nil {
		noteStorageError(uc.log, sess.ID, "append", err)
	}

	// --------------------------------------------------
	// 4. Feedback
	// --------------------------------------------------
	res.States = append(res.States, StateFeedback)
	res.Appointment = &ap
	res.Form = CreateAppointmentInput{}
	res.Feedback = session.NewFeedback(
		session.FeedbackSuccess,
		"",
		fmt.Sprintf("Köszönjük %s! Foglalása sikeresen rögzítve: %s %s", ap.Name, ap.Date, ap.Time),
		now,
		uc.feedbackTTL,
	)
	sess.SetFeedback(session.ChannelBooking, res.Feedback)
	res.Availability = uc.availabilityLocked(ctx, sess, in.Date)
	res.States = append(res.States, StateIdle)

	metrics.IncSubmission("success")
	span.SetAttributes(attribute.Int64("appointment.id", ap.ID))

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			SessionID: sess.ID,
			Action:    "appointment_created",
			Entity:    "appointment",
			EntityID:  &ap.ID,
			Metadata:  map[string]string{"date": ap.Date, "time": ap.Time, "service": ap.Service},
		})
	}

	uc.log.Info().
		Str("session", sess.ID).
		Int64("id", ap.ID).
		Str("date", ap.Date).
		Str("time", ap.Time).
		Msg("appointment saved")

	return res, nil
}

func (uc *CreateAppointment) reject(
	ctx context.Context,
	sess *session.Session,
	res *CreateAppointmentResult,
	in CreateAppointmentInput,
	now time.Time,
	err error,
) (*CreateAppointmentResult, error) {

	code, msg := err.Error(), err.Error()
	if be, ok := httperr.AsBusiness(err); ok {
		code, msg = be.Code, be.Message
	}

	res.States = append(res.States, StateFeedback)
	res.Form = in
	res.Feedback = session.NewFeedback(session.FeedbackError, code, msg, now, uc.feedbackTTL)
	sess.SetFeedback(session.ChannelBooking, res.Feedback)
	if in.Date != "" {
		res.Availability = uc.availabilityLocked(ctx, sess, in.Date)
	}
	res.States = append(res.States, StateIdle)

	metrics.IncSubmission(code)

	trace.SpanFromContext(ctx).SetStatus(codes.Error, code)

	if code == domain.CodeSlotConflict && uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			SessionID: sess.ID,
			Action:    "appointment_conflict",
			Entity:    "appointment",
			Metadata:  map[string]string{"date": in.Date, "time": in.Time},
		})
	}

	return res, err
}

func (uc *CreateAppointment) availabilityLocked(ctx context.Context, sess *session.Session, date string) []SlotOption {
	if uc.catalog == nil {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil
	}
	records, err := sess.Store.LoadAll(ctx)
	noteStorageError(uc.log, sess.ID, "availability", err)
	return slotOptions(uc.catalog, date, records)
}

// normalize trims the free-text fields the way the form does. Service,
// date and time come from fixed inputs and are taken verbatim.
func normalize(in CreateAppointmentInput) CreateAppointmentInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}
