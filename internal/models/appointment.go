package models

// Appointment is one booking entry as it is kept in the session slot.
// The JSON shape is the persisted format, so the tags must not change.
type Appointment struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Service   string `json:"service"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
	Notes     string `json:"notes"`
	Timestamp string `json:"timestamp"`
}

// SlotPayload is the document serialized into the session slot.
type SlotPayload struct {
	Appointments []Appointment `json:"appointments"`
}
