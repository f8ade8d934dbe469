package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/palfi-booking/internal/models"
)

// SortByStart returns a copy of records ordered by their date+time instant.
// Equal instants keep store order. Records that do not parse go last.
func SortByStart(records []models.Appointment, loc *time.Location) []models.Appointment {
	type keyed struct {
		rec   models.Appointment
		start time.Time
		ok    bool
	}

	items := make([]keyed, len(records))
	for i, r := range records {
		start, err := StartOf(r.Date, r.Time, loc)
		items[i] = keyed{rec: r, start: start, ok: err == nil}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.start.Before(b.start)
	})

	out := make([]models.Appointment, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}
