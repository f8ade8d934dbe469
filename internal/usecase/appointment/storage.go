package appointment

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/palfi-booking/internal/metrics"
	"github.com/BruksfildServices01/palfi-booking/internal/store"
)

// noteStorageError logs and counts a slot failure. These never reach the
// user; the in-memory collection carries on.
func noteStorageError(log zerolog.Logger, sessionID, op string, err error) {
	if err == nil {
		return
	}

	if errors.Is(err, store.ErrStorageParse) {
		metrics.IncStorageFailure("parse")
	}
	if errors.Is(err, store.ErrStorageWrite) {
		metrics.IncStorageFailure("write")
	}

	log.Warn().
		Err(err).
		Str("session", sessionID).
		Str("op", op).
		Msg("session slot failure ignored")
}
