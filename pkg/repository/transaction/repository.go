// Package transaction defines the store contract for the append-only ledger.
package transaction

import (
	"context"
	"time"

	"github.com/cashfold/checking/pkg/dto"
)

// Repository is the ledger store. Entries are append-only: there is no update
// or delete operation.
type Repository interface {
	// Create appends one ledger entry.
	Create(ctx context.Context, create dto.TransactionCreate) error

	// ListByUserAndCurrency returns the most recent entries for the pair,
	// newest first, up to limit. An empty txType returns all entry types;
	// otherwise only entries of that type.
	ListByUserAndCurrency(ctx context.Context, userID, currency, txType string, limit int) ([]dto.TransactionRead, error)

	// SumWithdrawalsInWindow sums withdrawal-type entries for the pair with
	// createdAt in [startInclusive, endExclusive), in minor units.
	SumWithdrawalsInWindow(ctx context.Context, userID, currency string, startInclusive, endExclusive time.Time) (int64, error)
}
