package dto

import (
	"time"

	"github.com/google/uuid"
)

// TransactionRead is a read-optimized record for ledger queries.
type TransactionRead struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	UserID      string
	Currency    string
	AmountMinor int64
	Type        string
	Description string
	CreatedAt   time.Time
}

// TransactionCreate is the record for appending one ledger entry.
type TransactionCreate struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	UserID      string
	Currency    string
	AmountMinor int64
	Type        string
	Description string
	CreatedAt   time.Time
}
