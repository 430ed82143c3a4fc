// Package events defines the domain notifications published after ledger
// movements commit or withdrawal requests are rejected.
package events

import (
	"time"

	"github.com/cashfold/checking/pkg/domain"
	"github.com/google/uuid"
)

// Event is the marker interface for all domain events.
type Event interface {
	Type() string
}

// Event type identifiers, also used as publish subject suffixes.
const (
	TypeWithdrawalCompleted = "withdrawal.completed"
	TypeWithdrawalRejected  = "withdrawal.rejected"
	TypeDepositCompleted    = "deposit.completed"
)

// WithdrawalCompleted is published after a withdrawal's balance mutation and
// ledger entry are both durable. Best-effort: a publish failure never fails
// the committed withdrawal.
type WithdrawalCompleted struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	AccountID     uuid.UUID `json:"account_id"`
	UserID        string    `json:"user_id"`
	CurrencyID    string    `json:"currency_id"`
	AmountMinor   int64     `json:"amount_minor"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewWithdrawalCompleted builds the completion event from the committed
// ledger entry.
func NewWithdrawalCompleted(tx *domain.Transaction) WithdrawalCompleted {
	return WithdrawalCompleted{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		UserID:        tx.UserID,
		CurrencyID:    tx.Amount.Currency().String(),
		AmountMinor:   tx.Amount.Amount(),
		Description:   tx.Description,
		CreatedAt:     tx.CreatedAt,
	}
}

func (WithdrawalCompleted) Type() string { return TypeWithdrawalCompleted }

// WithdrawalRejected is published when a withdrawal request is denied for
// business reasons (insufficient funds, limits, missing account).
type WithdrawalRejected struct {
	UserID      string    `json:"user_id"`
	CurrencyID  string    `json:"currency_id"`
	AmountMinor int64     `json:"amount_minor"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (WithdrawalRejected) Type() string { return TypeWithdrawalRejected }

// DepositCompleted is published after a deposit commits.
type DepositCompleted struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	AccountID     uuid.UUID `json:"account_id"`
	UserID        string    `json:"user_id"`
	CurrencyID    string    `json:"currency_id"`
	AmountMinor   int64     `json:"amount_minor"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewDepositCompleted builds the completion event from the committed ledger
// entry.
func NewDepositCompleted(tx *domain.Transaction) DepositCompleted {
	return DepositCompleted{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		UserID:        tx.UserID,
		CurrencyID:    tx.Amount.Currency().String(),
		AmountMinor:   tx.Amount.Amount(),
		Description:   tx.Description,
		CreatedAt:     tx.CreatedAt,
	}
}

func (DepositCompleted) Type() string { return TypeDepositCompleted }
