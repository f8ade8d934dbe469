package session

import "time"

type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback channels. The booking form and the admin view each show their
// own message.
const (
	ChannelBooking = "booking"
	ChannelAdmin   = "admin"
)

// Feedback is the message shown after a single action. It is visible until
// DismissAt or until the next action on the same channel replaces it.
type Feedback struct {
	Kind      FeedbackKind `json:"type"`
	Code      string       `json:"code,omitempty"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"created_at"`
	DismissAt time.Time    `json:"dismiss_at"`
}

func NewFeedback(kind FeedbackKind, code, message string, now time.Time, ttl time.Duration) Feedback {
	return Feedback{
		Kind:      kind,
		Code:      code,
		Message:   message,
		CreatedAt: now,
		DismissAt: now.Add(ttl),
	}
}

func (f Feedback) ActiveAt(now time.Time) bool {
	return now.Before(f.DismissAt)
}
