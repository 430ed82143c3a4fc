package domain

import (
	"time"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/money"
	"github.com/google/uuid"
)

// Account represents one (user, currency) checking balance. It owns its own
// mutation rules; persistence is a separate, explicit step performed by the
// workflow after a successful transition.
//
// Invariants:
//   - At most one account exists per (UserID, Currency); the stores enforce
//     the uniqueness, the workflow relies on it.
//   - The balance never goes negative as a result of a domain mutation.
//   - Every mutation bumps UpdatedAt.
type Account struct {
	ID      uuid.UUID
	UserID  string
	Balance money.Money

	// Version is the optimistic-concurrency token read from the store. The
	// store's conditional update succeeds only while it still matches.
	Version int64

	Audit
}

// AccountBuilder provides a fluent API for constructing Account values. It is
// used both for provisioning new accounts and for rehydrating persisted ones
// from a store row; no private-setter bypass exists.
type AccountBuilder struct {
	id           uuid.UUID
	userID       string
	code         currency.Code
	balanceMinor int64
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewAccount creates a builder with a fresh ID and the default currency.
func NewAccount() *AccountBuilder {
	now := time.Now().UTC()
	return &AccountBuilder{
		id:        uuid.New(),
		code:      currency.DefaultCurrency,
		createdAt: now,
		updatedAt: now,
	}
}

// WithID sets the account ID. Used when rehydrating from a store.
func (b *AccountBuilder) WithID(id uuid.UUID) *AccountBuilder {
	b.id = id
	return b
}

// WithUserID sets the owning user. Mandatory.
func (b *AccountBuilder) WithUserID(userID string) *AccountBuilder {
	b.userID = userID
	return b
}

// WithCurrency sets the account currency.
func (b *AccountBuilder) WithCurrency(code currency.Code) *AccountBuilder {
	b.code = code
	return b
}

// WithBalanceMinor sets the balance in the smallest currency unit. Only for
// rehydrating from a store or test setup.
func (b *AccountBuilder) WithBalanceMinor(balance int64) *AccountBuilder {
	b.balanceMinor = balance
	return b
}

// WithVersion sets the optimistic-concurrency token read from the store.
func (b *AccountBuilder) WithVersion(version int64) *AccountBuilder {
	b.version = version
	return b
}

// WithCreatedAt sets the creation timestamp when rehydrating.
func (b *AccountBuilder) WithCreatedAt(t time.Time) *AccountBuilder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-mutation timestamp when rehydrating.
func (b *AccountBuilder) WithUpdatedAt(t time.Time) *AccountBuilder {
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *AccountBuilder) Build() (*Account, error) {
	if b.userID == "" {
		return nil, ErrAccountNotFound
	}
	if !b.code.IsValidFormat() {
		return nil, money.ErrInvalidCurrency
	}
	if !currency.IsSupported(b.code) {
		return nil, currency.ErrUnsupportedCurrency
	}
	balance, err := money.NewFromSmallestUnit(b.balanceMinor, b.code)
	if err != nil {
		return nil, err
	}
	if balance.IsNegative() {
		return nil, ErrInsufficientFunds
	}
	return &Account{
		ID:      b.id,
		UserID:  b.userID,
		Balance: balance,
		Version: b.version,
		Audit:   Audit{CreatedAt: b.createdAt, UpdatedAt: b.updatedAt},
	}, nil
}

// Deposit credits the account. Fails with ErrInvalidAmount when the amount is
// not strictly positive and ErrCurrencyMismatch when currencies differ.
// There is no upper bound beyond int64 overflow protection.
func (a *Account) Deposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !a.Balance.IsSameCurrency(amount) {
		return ErrCurrencyMismatch
	}
	balance, err := a.Balance.Add(amount)
	if err != nil {
		return err
	}
	a.Balance = balance
	a.touch(time.Now().UTC())
	return nil
}

// Withdraw debits the account. Fails with ErrInvalidAmount when the amount is
// not strictly positive, ErrCurrencyMismatch when currencies differ, and
// ErrInsufficientFunds when the amount exceeds the balance.
func (a *Account) Withdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !a.Balance.IsSameCurrency(amount) {
		return ErrCurrencyMismatch
	}
	over, err := amount.GreaterThan(a.Balance)
	if err != nil {
		return err
	}
	if over {
		return ErrInsufficientFunds
	}
	balance, err := a.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	a.Balance = balance
	a.touch(time.Now().UTC())
	return nil
}
