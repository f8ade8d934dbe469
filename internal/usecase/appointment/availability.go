package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/palfi-booking/internal/catalog"
	domain "github.com/BruksfildServices01/palfi-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/palfi-booking/internal/httperr"
	"github.com/BruksfildServices01/palfi-booking/internal/models"
	"github.com/BruksfildServices01/palfi-booking/internal/session"
)

const bookedSuffix = " (Foglalt)"

const (
	CodeInvalidDate = "invalid_date"
	MsgInvalidDate  = "Érvénytelen dátum."
)

// SlotOption is one entry of the time picker for a given date.
type SlotOption struct {
	Time     string `json:"time"`
	Label    string `json:"label"`
	Booked   bool   `json:"booked"`
	Disabled bool   `json:"disabled"`
}

type GetAvailability struct {
	catalog *catalog.Catalog
	log     zerolog.Logger
}

func NewGetAvailability(cat *catalog.Catalog, log zerolog.Logger) *GetAvailability {
	return &GetAvailability{catalog: cat, log: log}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	sess *session.Session,
	date string,
) ([]SlotOption, error) {

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, httperr.ErrBusinessMsg(CodeInvalidDate, MsgInvalidDate)
	}

	sess.Lock()
	defer sess.Unlock()

	records, err := sess.Store.LoadAll(ctx)
	noteStorageError(uc.log, sess.ID, "availability", err)

	return slotOptions(uc.catalog, date, records), nil
}

func slotOptions(cat *catalog.Catalog, date string, records []models.Appointment) []SlotOption {
	booked := map[string]bool{}
	for _, hm := range domain.BookedTimes(date, records) {
		booked[hm] = true
	}

	out := make([]SlotOption, 0, len(cat.TimeSlots))
	for _, hm := range cat.TimeSlots {
		opt := SlotOption{Time: hm, Label: hm}
		if booked[hm] {
			opt.Booked = true
			opt.Disabled = true
			opt.Label = hm + bookedSuffix
		}
		out = append(out, opt)
	}
	return out
}
