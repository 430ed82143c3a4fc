// Package account defines the store contract for checking accounts.
package account

import (
	"context"

	"github.com/cashfold/checking/pkg/dto"
	"github.com/google/uuid"
)

// Repository is the account store the workflow depends on. Implementations
// live under infra/repository.
type Repository interface {
	// Create provisions a new account. Returns
	// domain.ErrAccountAlreadyExists when the (user, currency) pair is taken.
	Create(ctx context.Context, create dto.AccountCreate) error

	// Get returns the account by ID, or domain.ErrAccountNotFound.
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// GetByUserAndCurrency returns the single account for the pair, or
	// domain.ErrAccountNotFound.
	GetByUserAndCurrency(ctx context.Context, userID, currency string) (*dto.AccountRead, error)

	// UpdateBalance applies the conditional balance update. Returns
	// domain.ErrConcurrencyConflict when the stored version no longer
	// matches update.ExpectedVersion.
	UpdateBalance(ctx context.Context, update dto.AccountBalanceUpdate) error
}
