package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/palfi-booking/internal/models"
)

var (
	// ErrUnavailable marks connection-class postgres failures.
	ErrUnavailable = errors.New("slot: storage unavailable")
	// ErrSchema marks a missing table or column.
	ErrSchema = errors.New("slot: storage schema mismatch")
)

// GormBackend keeps slots in the session_slots table. Rows past expires_at
// are treated as absent and removed by PurgeExpired.
type GormBackend struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewGormBackend(db *gorm.DB, ttl time.Duration) *GormBackend {
	return &GormBackend{db: db, ttl: ttl, now: time.Now}
}

func (g *GormBackend) Name() string { return "postgres" }

func (g *GormBackend) Slot(sessionID string) Slot {
	return bound{key: sessionID, load: g.load, save: g.save}
}

func (g *GormBackend) load(ctx context.Context, key string) ([]byte, error) {
	var row models.SessionSlot
	err := g.db.WithContext(ctx).
		Where("session_id = ? AND expires_at > ?", key, g.now()).
		Take(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return []byte(row.Payload), nil
}

func (g *GormBackend) save(ctx context.Context, key string, data []byte) error {
	now := g.now()
	row := models.SessionSlot{
		SessionID: key,
		Payload:   string(data),
		ExpiresAt: now.Add(g.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
		}).
		Create(&row).Error

	return classify(err)
}

func (g *GormBackend) PurgeExpired(ctx context.Context) (int64, error) {
	res := g.db.WithContext(ctx).
		Where("expires_at <= ?", g.now()).
		Delete(&models.SessionSlot{})
	return res.RowsAffected, classify(res.Error)
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// classify tags postgres errors so callers can tell outages from schema
// problems. Other errors pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42P01" || pgErr.Code == "42703":
			return fmt.Errorf("%w: %s", ErrSchema, pgErr.Message)
		case len(pgErr.Code) >= 2 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "57"):
			return fmt.Errorf("%w: %s", ErrUnavailable, pgErr.Message)
		}
	}
	return err
}
