package models

import "time"

// SessionSlot backs the per-session slot when the postgres backend is used.
// Rows are only meaningful until ExpiresAt.
type SessionSlot struct {
	SessionID string    `gorm:"primaryKey;size:64" json:"session_id"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
