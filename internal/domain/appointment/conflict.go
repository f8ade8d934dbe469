package appointment

import "github.com/BruksfildServices01/palfi-booking/internal/models"

// HasConflict reports whether any record holds exactly this date and time.
// Comparison is on the raw strings; callers pass the canonical form.
func HasConflict(date, hm string, records []models.Appointment) bool {
	for _, r := range records {
		if r.Date == date && r.Time == hm {
			return true
		}
	}
	return false
}

// BookedTimes lists the times already taken on date, in store order.
func BookedTimes(date string, records []models.Appointment) []string {
	var out []string
	for _, r := range records {
		if r.Date == date {
			out = append(out, r.Time)
		}
	}
	return out
}
