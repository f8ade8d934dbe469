package appointment

import (
	"regexp"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	dateTimeLayout = DateLayout + " " + TimeLayout
)

// space matches what a browser counts as whitespace, NBSP and the other
// Unicode separators included. Go's \s is ASCII only.
const space = `\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	nameRe  = regexp.MustCompile(`^[A-Za-zÁÉÍÓÖŐÚÜŰáéíóöőúüű` + space + `]{2,50}$`)
	phoneRe = regexp.MustCompile(`^[\+]?[0-9` + space + `\-]{9,15}$`)
)

// Fields are the textual form values the rules look at.
type Fields struct {
	Name  string
	Phone string
	Date  string
	Time  string
}

// Validate checks name, phone and date/time in that order and returns the
// first violation. It has no side effects.
func Validate(in Fields, now time.Time, loc *time.Location) error {
	if !nameRe.MatchString(in.Name) {
		return ErrInvalidName
	}

	if !phoneRe.MatchString(in.Phone) {
		return ErrInvalidPhone
	}

	start, err := StartOf(in.Date, in.Time, loc)
	if err != nil || !start.After(now) {
		return ErrPastDateTime
	}

	return nil
}

// StartOf combines a date and a time-of-day into an instant in loc.
func StartOf(date, hm string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(dateTimeLayout, date+" "+hm, loc)
}
