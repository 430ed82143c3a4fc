package account_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/domain/events"
	"github.com/cashfold/checking/pkg/dto"
	"github.com/cashfold/checking/pkg/money"
	"github.com/cashfold/checking/pkg/service/account"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func usd(t *testing.T, amount string) money.Money {
	t.Helper()
	m, err := money.New(amount, "USD")
	require.NoError(t, err)
	return m
}

type fakeAccounts struct {
	row       *dto.AccountRead
	createErr error
	conflicts int
	creates   []dto.AccountCreate
}

func (f *fakeAccounts) Create(ctx context.Context, create dto.AccountCreate) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creates = append(f.creates, create)
	return nil
}

func (f *fakeAccounts) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	if f.row == nil {
		return nil, domain.ErrAccountNotFound
	}
	row := *f.row
	return &row, nil
}

func (f *fakeAccounts) GetByUserAndCurrency(ctx context.Context, userID, currency string) (*dto.AccountRead, error) {
	if f.row == nil || f.row.UserID != userID || f.row.Currency != currency {
		return nil, domain.ErrAccountNotFound
	}
	row := *f.row
	return &row, nil
}

func (f *fakeAccounts) UpdateBalance(ctx context.Context, update dto.AccountBalanceUpdate) error {
	if f.conflicts > 0 {
		f.conflicts--
		f.row.Version++
		return domain.ErrConcurrencyConflict
	}
	if update.ExpectedVersion != f.row.Version {
		return domain.ErrConcurrencyConflict
	}
	f.row.BalanceMinor = update.BalanceMinor
	f.row.Version++
	return nil
}

type fakeTransactions struct {
	created   []dto.TransactionCreate
	rows      []dto.TransactionRead
	createErr error
}

func (f *fakeTransactions) Create(ctx context.Context, create dto.TransactionCreate) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, create)
	return nil
}

func (f *fakeTransactions) ListByUserAndCurrency(ctx context.Context, userID, currency, txType string, limit int) ([]dto.TransactionRead, error) {
	var out []dto.TransactionRead
	for _, row := range f.rows {
		if txType != "" && row.Type != txType {
			continue
		}
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTransactions) SumWithdrawalsInWindow(ctx context.Context, userID, currency string, startInclusive, endExclusive time.Time) (int64, error) {
	return 0, nil
}

type fakeBus struct {
	published []events.Event
}

func (f *fakeBus) Publish(ctx context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func newService(accounts *fakeAccounts, transactions *fakeTransactions, bus *fakeBus) *account.Service {
	return account.New(accounts, transactions, bus, discardLogger())
}

func existingRow(balanceMinor int64) *dto.AccountRead {
	return &dto.AccountRead{
		ID:           uuid.New(),
		UserID:       "user-1",
		Currency:     "USD",
		BalanceMinor: balanceMinor,
		Version:      1,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions with zero balance", func(t *testing.T) {
		accounts := &fakeAccounts{}
		svc := newService(accounts, &fakeTransactions{}, &fakeBus{})

		acct, err := svc.CreateAccount(ctx, "user-1", "USD")
		require.NoError(t, err)
		assert.True(t, acct.Balance.IsZero())
		require.Len(t, accounts.creates, 1)
		assert.Equal(t, "USD", accounts.creates[0].Currency)
		assert.Zero(t, accounts.creates[0].BalanceMinor)
	})

	t.Run("duplicate pair", func(t *testing.T) {
		accounts := &fakeAccounts{createErr: domain.ErrAccountAlreadyExists}
		svc := newService(accounts, &fakeTransactions{}, &fakeBus{})

		_, err := svc.CreateAccount(ctx, "user-1", "USD")
		require.ErrorIs(t, err, domain.ErrAccountAlreadyExists)
	})

	t.Run("unsupported currency", func(t *testing.T) {
		svc := newService(&fakeAccounts{}, &fakeTransactions{}, &fakeBus{})
		_, err := svc.CreateAccount(ctx, "user-1", "ZZZ")
		require.Error(t, err)
	})
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("credits and records", func(t *testing.T) {
		accounts := &fakeAccounts{row: existingRow(1000)}
		transactions := &fakeTransactions{}
		bus := &fakeBus{}
		svc := newService(accounts, transactions, bus)

		tx, err := svc.Deposit(ctx, "user-1", "USD", usd(t, "99.00"), "payroll")
		require.NoError(t, err)
		assert.Equal(t, int64(10900), accounts.row.BalanceMinor)
		require.Len(t, transactions.created, 1)
		assert.Equal(t, string(domain.TransactionDeposit), transactions.created[0].Type)
		assert.Equal(t, int64(9900), tx.Amount.Amount())
		require.Len(t, bus.published, 1)
		assert.Equal(t, events.TypeDepositCompleted, bus.published[0].Type())
	})

	t.Run("retries stale version", func(t *testing.T) {
		accounts := &fakeAccounts{row: existingRow(1000), conflicts: 1}
		svc := newService(accounts, &fakeTransactions{}, &fakeBus{})

		_, err := svc.Deposit(ctx, "user-1", "USD", usd(t, "1.00"), "retry")
		require.NoError(t, err)
		assert.Equal(t, int64(1100), accounts.row.BalanceMinor)
	})

	t.Run("gives up after exhausted retries", func(t *testing.T) {
		accounts := &fakeAccounts{row: existingRow(1000), conflicts: 10}
		svc := newService(accounts, &fakeTransactions{}, &fakeBus{})

		_, err := svc.Deposit(ctx, "user-1", "USD", usd(t, "1.00"), "retry")
		require.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	})

	t.Run("account not found", func(t *testing.T) {
		svc := newService(&fakeAccounts{}, &fakeTransactions{}, &fakeBus{})
		_, err := svc.Deposit(ctx, "user-1", "USD", usd(t, "1.00"), "ghost")
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newService(&fakeAccounts{row: existingRow(1000)}, &fakeTransactions{}, &fakeBus{})

		_, err := svc.Deposit(ctx, "user-1", "USD", usd(t, "0"), "noop")
		require.ErrorIs(t, err, domain.ErrInvalidAmount)

		_, err = svc.Deposit(ctx, "user-1", "USD", usd(t, "1.00"), "")
		require.ErrorIs(t, err, domain.ErrDescriptionRequired)
	})

	t.Run("partial commit when ledger append fails", func(t *testing.T) {
		accounts := &fakeAccounts{row: existingRow(1000)}
		transactions := &fakeTransactions{createErr: errors.New("insert failed")}
		svc := newService(accounts, transactions, &fakeBus{})

		_, err := svc.Deposit(ctx, "user-1", "USD", usd(t, "1.00"), "payroll")
		require.ErrorIs(t, err, domain.ErrPartialCommit)
		assert.Equal(t, int64(1100), accounts.row.BalanceMinor)
	})
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the balance", func(t *testing.T) {
		svc := newService(&fakeAccounts{row: existingRow(12345)}, &fakeTransactions{}, &fakeBus{})
		balance, err := svc.GetBalance(ctx, "user-1", "USD")
		require.NoError(t, err)
		assert.Equal(t, "123.45", balance.StringAmount())
	})

	t.Run("not found", func(t *testing.T) {
		svc := newService(&fakeAccounts{}, &fakeTransactions{}, &fakeBus{})
		_, err := svc.GetBalance(ctx, "user-1", "USD")
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestListTransactions(t *testing.T) {
	rows := []dto.TransactionRead{
		{ID: uuid.New(), UserID: "user-1", Currency: "USD", AmountMinor: 100, Type: "deposit"},
		{ID: uuid.New(), UserID: "user-1", Currency: "USD", AmountMinor: 50, Type: "withdrawal"},
	}
	svc := newService(&fakeAccounts{}, &fakeTransactions{rows: rows}, &fakeBus{})
	ctx := context.Background()

	t.Run("all entries", func(t *testing.T) {
		got, err := svc.ListTransactions(ctx, "user-1", "USD", "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("withdrawals only", func(t *testing.T) {
		got, err := svc.ListTransactions(ctx, "user-1", "USD", domain.TransactionWithdrawal)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "withdrawal", got[0].Type)
	})

	t.Run("unknown type filter", func(t *testing.T) {
		_, err := svc.ListTransactions(ctx, "user-1", "USD", "transfer")
		require.ErrorIs(t, err, domain.ErrInvalidTransactionType)
	})
}
