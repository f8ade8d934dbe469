package slot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*GormBackend, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	b := NewGormBackend(db, time.Hour)
	b.now = func() time.Time { return now }
	return b, mock
}

func TestGormBackendLoad(t *testing.T) {
	b, mock := newMockGorm(t)
	ts := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "session_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "payload", "expires_at", "created_at", "updated_at"}).
			AddRow("sid", `{"appointments":[]}`, ts.Add(2*time.Hour), ts, ts))

	data, err := b.Slot("sid").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"appointments":[]}`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBackendLoadMissing(t *testing.T) {
	b, mock := newMockGorm(t)

	mock.ExpectQuery(`SELECT \* FROM "session_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "payload", "expires_at", "created_at", "updated_at"}))

	data, err := b.Slot("sid").Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBackendSaveUpserts(t *testing.T) {
	b, mock := newMockGorm(t)

	mock.ExpectExec(`INSERT INTO "session_slots" .* ON CONFLICT \("session_id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := b.Slot("sid").Save(context.Background(), []byte(`{"appointments":[]}`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBackendClassifiesErrors(t *testing.T) {
	b, mock := newMockGorm(t)

	mock.ExpectExec(`INSERT INTO "session_slots"`).
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"})
	mock.ExpectQuery(`SELECT \* FROM "session_slots"`).
		WillReturnError(&pgconn.PgError{Code: "08006", Message: "connection failure"})

	err := b.Slot("sid").Save(context.Background(), []byte("{}"))
	assert.ErrorIs(t, err, ErrSchema)

	_, err = b.Slot("sid").Load(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBackendPurgeExpired(t *testing.T) {
	b, mock := newMockGorm(t)

	mock.ExpectExec(`DELETE FROM "session_slots" WHERE expires_at <=`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := b.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
