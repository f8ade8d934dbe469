package audit

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Logger writes audit entries to the structured log. Booking data is not
// kept anywhere after the session ends, so the log is the only trail.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "audit").Logger()}
}

func (l *Logger) Log(
	sessionID string,
	action string,
	entity string,
	entityID *int64,
	metadata any,
) error {

	ev := l.log.Info().
		Str("session", sessionID).
		Str("action", action).
		Str("entity", entity)

	if entityID != nil {
		ev = ev.Int64("entity_id", *entityID)
	}

	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		ev = ev.RawJSON("metadata", b)
	}

	ev.Msg("audit")
	return nil
}
