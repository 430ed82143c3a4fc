package transaction

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

func TestRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), dto.TransactionCreate{
		ID:          uuid.New(),
		AccountID:   uuid.New(),
		UserID:      "user-1",
		Currency:    "USD",
		AmountMinor: 3000,
		Type:        "withdrawal",
		Description: "ATM withdrawal",
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByUserAndCurrency(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := New(db)
	now := time.Now().UTC()

	t.Run("all types", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "account_id", "user_id", "currency", "amount", "type", "description", "created_at"}).
			AddRow(uuid.New(), uuid.New(), "user-1", "USD", int64(3000), "withdrawal", "ATM withdrawal", now).
			AddRow(uuid.New(), uuid.New(), "user-1", "USD", int64(10000), "deposit", "payroll", now.Add(-time.Hour))
		mock.ExpectQuery(`SELECT (.+) FROM "transactions" WHERE user_id = (.+) AND currency = (.+) ORDER BY created_at DESC LIMIT (.+)`).
			WithArgs("user-1", "USD", 100).
			WillReturnRows(rows)

		got, err := repo.ListByUserAndCurrency(context.Background(), "user-1", "USD", "", 100)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(3000), got[0].AmountMinor)
		assert.Equal(t, "withdrawal", got[0].Type)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("withdrawals only", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "account_id", "user_id", "currency", "amount", "type", "description", "created_at"}).
			AddRow(uuid.New(), uuid.New(), "user-1", "USD", int64(3000), "withdrawal", "ATM withdrawal", now)
		mock.ExpectQuery(`SELECT (.+) FROM "transactions" WHERE user_id = (.+) AND currency = (.+) AND type = (.+) ORDER BY created_at DESC LIMIT (.+)`).
			WithArgs("user-1", "USD", "withdrawal", 100).
			WillReturnRows(rows)

		got, err := repo.ListByUserAndCurrency(context.Background(), "user-1", "USD", "withdrawal", 100)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_SumWithdrawalsInWindow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := New(db)

	start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	t.Run("sums withdrawal rows in the window", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "transactions" WHERE user_id = (.+) AND currency = (.+) AND type = (.+) AND created_at >= (.+) AND created_at < (.+)`).
			WithArgs("user-1", "USD", "withdrawal", start, end).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(45000)))

		total, err := repo.SumWithdrawalsInWindow(context.Background(), "user-1", "USD", start, end)
		require.NoError(t, err)
		assert.Equal(t, int64(45000), total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty window sums to zero", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "transactions"`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

		total, err := repo.SumWithdrawalsInWindow(context.Background(), "user-1", "USD", start, end)
		require.NoError(t, err)
		assert.Zero(t, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
