package appointment

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/palfi-booking/internal/httperr"
)

var budapest = time.FixedZone("CET", 3600)

func validFields() Fields {
	return Fields{
		Name:  "Kovács János",
		Phone: "+36 30 123 4567",
		Date:  "2025-06-10",
		Time:  "10:00",
	}
}

func TestValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, budapest)

	tests := []struct {
		name   string
		mutate func(*Fields)
		want   error
	}{
		{"valid", func(*Fields) {}, nil},
		{"hungarian diacritics", func(f *Fields) { f.Name = "Őrsi Űrsula Éva" }, nil},
		{"non-breaking space in name", func(f *Fields) { f.Name = "Kovács\u00a0János" }, nil},
		{"narrow space in phone", func(f *Fields) { f.Phone = "+36\u202f30\u202f123\u202f4567" }, nil},
		{"digit in name", func(f *Fields) { f.Name = "J4" }, ErrInvalidName},
		{"single letter", func(f *Fields) { f.Name = "J" }, ErrInvalidName},
		{"name too long", func(f *Fields) { f.Name = strings.Repeat("a", 51) }, ErrInvalidName},
		{"name at max", func(f *Fields) { f.Name = strings.Repeat("á", 50) }, nil},
		{"empty name", func(f *Fields) { f.Name = "" }, ErrInvalidName},
		{"phone too short", func(f *Fields) { f.Phone = "12345678" }, ErrInvalidPhone},
		{"phone letters", func(f *Fields) { f.Phone = "06-30-ABC-4567" }, ErrInvalidPhone},
		{"phone dashes", func(f *Fields) { f.Phone = "06-30-123-4567" }, nil},
		{"phone plus in middle", func(f *Fields) { f.Phone = "36+301234567" }, ErrInvalidPhone},
		{"past date", func(f *Fields) { f.Date = "2025-05-31" }, ErrPastDateTime},
		{"exactly now", func(f *Fields) { f.Date, f.Time = "2025-06-01", "12:00" }, ErrPastDateTime},
		{"one minute later", func(f *Fields) { f.Date, f.Time = "2025-06-01", "12:01" }, nil},
		{"unparseable date", func(f *Fields) { f.Date = "10/06/2025" }, ErrPastDateTime},
		{"empty time", func(f *Fields) { f.Time = "" }, ErrPastDateTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)
			err := Validate(f, now, budapest)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidateStopsAtFirstFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, budapest)
	f := Fields{Name: "J4", Phone: "x", Date: "2000-01-01", Time: "09:00"}

	err := Validate(f, now, budapest)

	assert.True(t, httperr.IsBusiness(err, CodeInvalidName))
	be, _ := httperr.AsBusiness(err)
	assert.Equal(t, MsgInvalidName, be.Message)
}
