// Package timezone resolves the shop's wall clock. Booking dates and times
// are entered in shop time, never in the client's zone.
package timezone

import "time"

const DefaultTimezone = "Europe/Budapest"

// Location loads tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today returns the calendar date of now in loc, formatted YYYY-MM-DD.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("2006-01-02")
}
