package domain

import (
	"time"

	"github.com/cashfold/checking/pkg/money"
	"github.com/google/uuid"
)

// WithdrawalLimit holds the configured daily and monthly withdrawal caps for
// one (user, currency) pair. Absence of a record means no cap is enforced.
// Usage is always derived from the transaction log, never stored here.
type WithdrawalLimit struct {
	ID      uuid.UUID
	UserID  string
	Daily   money.Money
	Monthly money.Money
	Audit
}

// NewWithdrawalLimit creates caps for a (user, currency) pair. Both caps must
// be strictly positive and share a currency.
func NewWithdrawalLimit(userID string, daily, monthly money.Money) (*WithdrawalLimit, error) {
	if userID == "" {
		return nil, ErrAccountNotFound
	}
	if !daily.IsPositive() || !monthly.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !daily.IsSameCurrency(monthly) {
		return nil, ErrCurrencyMismatch
	}
	return &WithdrawalLimit{
		ID:      uuid.New(),
		UserID:  userID,
		Daily:   daily,
		Monthly: monthly,
		Audit:   newAudit(time.Now().UTC()),
	}, nil
}

// RehydrateWithdrawalLimit rebuilds a persisted limit record. Only for store
// adapters.
func RehydrateWithdrawalLimit(
	id uuid.UUID,
	userID string,
	daily, monthly money.Money,
	createdAt, updatedAt time.Time,
) *WithdrawalLimit {
	return &WithdrawalLimit{
		ID:      id,
		UserID:  userID,
		Daily:   daily,
		Monthly: monthly,
		Audit:   Audit{CreatedAt: createdAt, UpdatedAt: updatedAt},
	}
}

// UpdateLimits replaces both caps and bumps UpdatedAt. Derived usage counters
// are unaffected; they are recomputed from the ledger on demand.
func (l *WithdrawalLimit) UpdateLimits(daily, monthly money.Money) error {
	if !daily.IsPositive() || !monthly.IsPositive() {
		return ErrInvalidAmount
	}
	if !daily.IsSameCurrency(monthly) || !daily.IsSameCurrency(l.Daily) {
		return ErrCurrencyMismatch
	}
	l.Daily = daily
	l.Monthly = monthly
	l.touch(time.Now().UTC())
	return nil
}
