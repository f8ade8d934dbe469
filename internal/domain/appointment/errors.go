package appointment

import "github.com/BruksfildServices01/palfi-booking/internal/httperr"

// ===============================
// Error codes
// ===============================

const (
	CodeInvalidName  = "invalid_name"
	CodeInvalidPhone = "invalid_phone"
	CodePastDateTime = "past_date_time"
	CodeSlotConflict = "slot_conflict"
)

// Display strings are fixed-locale (hu).
const (
	MsgInvalidName  = "Kérjük, érvényes nevet adjon meg (csak betűk, 2-50 karakter)!"
	MsgInvalidPhone = "Kérjük, érvényes telefonszámot adjon meg!"
	MsgPastDateTime = "Kérjük, válasszon jövőbeli időpontot!"
	MsgSlotConflict = "Ez az időpont már foglalt! Kérjük, válasszon másik időpontot."
)

var (
	ErrInvalidName  = httperr.ErrBusinessMsg(CodeInvalidName, MsgInvalidName)
	ErrInvalidPhone = httperr.ErrBusinessMsg(CodeInvalidPhone, MsgInvalidPhone)
	ErrPastDateTime = httperr.ErrBusinessMsg(CodePastDateTime, MsgPastDateTime)
	ErrSlotConflict = httperr.ErrBusinessMsg(CodeSlotConflict, MsgSlotConflict)
)
