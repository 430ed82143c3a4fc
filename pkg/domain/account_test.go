package domain_test

import (
	"testing"
	"time"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T, amount string) money.Money {
	t.Helper()
	m, err := money.New(amount, "USD")
	require.NoError(t, err)
	return m
}

func newAccount(t *testing.T, balanceMinor int64) *domain.Account {
	t.Helper()
	acct, err := domain.NewAccount().
		WithUserID("user-1").
		WithCurrency("USD").
		WithBalanceMinor(balanceMinor).
		Build()
	require.NoError(t, err)
	return acct
}

func TestAccountBuilder(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		acct, err := domain.NewAccount().WithUserID("user-1").Build()
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, acct.ID)
		assert.Equal(t, "user-1", acct.UserID)
		assert.Equal(t, currency.DefaultCurrency, acct.Balance.Currency())
		assert.True(t, acct.Balance.IsZero())
		assert.Zero(t, acct.Version)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := domain.NewAccount().Build()
		require.Error(t, err)
	})

	t.Run("unsupported currency", func(t *testing.T) {
		_, err := domain.NewAccount().WithUserID("user-1").WithCurrency("ZZZ").Build()
		require.ErrorIs(t, err, currency.ErrUnsupportedCurrency)
	})

	t.Run("malformed currency", func(t *testing.T) {
		_, err := domain.NewAccount().WithUserID("user-1").WithCurrency("usd").Build()
		require.ErrorIs(t, err, money.ErrInvalidCurrency)
	})

	t.Run("negative balance refused", func(t *testing.T) {
		_, err := domain.NewAccount().
			WithUserID("user-1").
			WithBalanceMinor(-1).
			Build()
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("rehydrate", func(t *testing.T) {
		id := uuid.New()
		created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		acct, err := domain.NewAccount().
			WithID(id).
			WithUserID("user-1").
			WithCurrency("EUR").
			WithBalanceMinor(12345).
			WithVersion(7).
			WithCreatedAt(created).
			WithUpdatedAt(created).
			Build()
		require.NoError(t, err)
		assert.Equal(t, id, acct.ID)
		assert.Equal(t, int64(12345), acct.Balance.Amount())
		assert.Equal(t, int64(7), acct.Version)
		assert.Equal(t, created, acct.CreatedAt)
	})
}

func TestAccount_Deposit(t *testing.T) {
	t.Run("credits balance", func(t *testing.T) {
		acct := newAccount(t, 0)
		before := acct.UpdatedAt
		require.NoError(t, acct.Deposit(usd(t, "100.50")))
		assert.Equal(t, int64(10050), acct.Balance.Amount())
		assert.True(t, !acct.UpdatedAt.Before(before))
	})

	t.Run("rejects zero", func(t *testing.T) {
		acct := newAccount(t, 0)
		require.ErrorIs(t, acct.Deposit(usd(t, "0")), domain.ErrInvalidAmount)
	})

	t.Run("rejects negative", func(t *testing.T) {
		acct := newAccount(t, 0)
		require.ErrorIs(t, acct.Deposit(usd(t, "-5.00")), domain.ErrInvalidAmount)
	})

	t.Run("rejects currency mismatch", func(t *testing.T) {
		acct := newAccount(t, 0)
		eur, err := money.New("10.00", "EUR")
		require.NoError(t, err)
		require.ErrorIs(t, acct.Deposit(eur), domain.ErrCurrencyMismatch)
	})
}

func TestAccount_Withdraw(t *testing.T) {
	t.Run("debits balance", func(t *testing.T) {
		acct := newAccount(t, 10000)
		require.NoError(t, acct.Withdraw(usd(t, "30.00")))
		assert.Equal(t, int64(7000), acct.Balance.Amount())
	})

	t.Run("allows withdrawing entire balance", func(t *testing.T) {
		acct := newAccount(t, 10000)
		require.NoError(t, acct.Withdraw(usd(t, "100.00")))
		assert.True(t, acct.Balance.IsZero())
	})

	t.Run("rejects overdraft by one cent", func(t *testing.T) {
		acct := newAccount(t, 10000)
		require.ErrorIs(t, acct.Withdraw(usd(t, "100.01")), domain.ErrInsufficientFunds)
		assert.Equal(t, int64(10000), acct.Balance.Amount())
	})

	t.Run("rejects zero and negative", func(t *testing.T) {
		acct := newAccount(t, 10000)
		require.ErrorIs(t, acct.Withdraw(usd(t, "0")), domain.ErrInvalidAmount)
		require.ErrorIs(t, acct.Withdraw(usd(t, "-1.00")), domain.ErrInvalidAmount)
	})

	t.Run("rejects currency mismatch", func(t *testing.T) {
		acct := newAccount(t, 10000)
		eur, err := money.New("10.00", "EUR")
		require.NoError(t, err)
		require.ErrorIs(t, acct.Withdraw(eur), domain.ErrCurrencyMismatch)
	})
}
