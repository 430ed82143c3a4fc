// Package limit defines the store contract for withdrawal limits.
package limit

import (
	"context"

	"github.com/cashfold/checking/pkg/dto"
)

// Repository is the withdrawal-limit store.
type Repository interface {
	// GetByUserAndCurrency returns the caps for the pair, or (nil, nil) when
	// none are configured. Absence is not an error: it means no cap is
	// enforced.
	GetByUserAndCurrency(ctx context.Context, userID, currency string) (*dto.LimitRead, error)

	// Upsert creates or replaces the caps for the pair.
	Upsert(ctx context.Context, upsert dto.LimitUpsert) error
}
