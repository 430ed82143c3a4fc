package domain

import (
	"time"

	"github.com/cashfold/checking/pkg/money"
	"github.com/google/uuid"
)

// TransactionType encodes the direction of a ledger movement. Amounts are
// always positive; direction lives here, never in the sign.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// IsValid reports whether the type is one of the known movements.
func (t TransactionType) IsValid() bool {
	return t == TransactionDeposit || t == TransactionWithdrawal
}

// Transaction is an immutable record of one committed ledger movement.
// The ledger is append-only: transactions are never updated or deleted.
// AccountID is an advisory back-reference, not an ownership relation.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	UserID      string
	Amount      money.Money
	Type        TransactionType
	Description string
	CreatedAt   time.Time
}

// NewTransaction creates a ledger entry for a committed movement.
// The amount must be strictly positive and the description non-empty.
func NewTransaction(
	accountID uuid.UUID,
	userID string,
	amount money.Money,
	txType TransactionType,
	description string,
) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !txType.IsValid() {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	return &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// RehydrateTransaction rebuilds a persisted ledger entry. Only for store
// adapters; it performs no invariant checks beyond construction.
func RehydrateTransaction(
	id, accountID uuid.UUID,
	userID string,
	amount money.Money,
	txType TransactionType,
	description string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		ID:          id,
		AccountID:   accountID,
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		CreatedAt:   createdAt,
	}
}
