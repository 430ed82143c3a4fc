package limit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cashfold/checking/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_GetByUserAndCurrency(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := New(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "user_id", "currency", "daily_limit", "monthly_limit", "created_at", "updated_at"}).
			AddRow(id, "user-1", "USD", int64(50000), int64(500000), now, now)
		mock.ExpectQuery(`SELECT (.+) FROM "withdrawal_limits" WHERE user_id = (.+) AND currency = (.+)`).
			WithArgs("user-1", "USD", 1).
			WillReturnRows(rows)

		read, err := repo.GetByUserAndCurrency(ctx, "user-1", "USD")
		require.NoError(t, err)
		require.NotNil(t, read)
		assert.Equal(t, int64(50000), read.DailyMinor)
		assert.Equal(t, int64(500000), read.MonthlyMinor)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent caps are nil, not an error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM "withdrawal_limits" WHERE user_id = (.+) AND currency = (.+)`).
			WithArgs("user-1", "EUR", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		read, err := repo.GetByUserAndCurrency(ctx, "user-1", "EUR")
		require.NoError(t, err)
		assert.Nil(t, read)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Upsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "withdrawal_limits" (.+) ON CONFLICT \("user_id","currency"\) DO UPDATE SET (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), dto.LimitUpsert{
		ID:           uuid.New(),
		UserID:       "user-1",
		Currency:     "USD",
		DailyMinor:   50000,
		MonthlyMinor: 500000,
		UpdatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
