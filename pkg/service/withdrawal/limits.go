package withdrawal

import (
	"context"
	"fmt"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/dto"
	"github.com/cashfold/checking/pkg/money"
)

// SetLimits creates or replaces the withdrawal caps for a (user, currency)
// pair. Updating caps resets UpdatedAt but never touches derived usage.
func (s *Service) SetLimits(
	ctx context.Context,
	userID string,
	code currency.Code,
	daily, monthly money.Money,
) (*domain.WithdrawalLimit, error) {
	existing, err := s.limits.GetByUserAndCurrency(ctx, userID, code.String())
	if err != nil {
		return nil, fmt.Errorf("%w: load withdrawal limits: %v", domain.ErrPersistence, err)
	}

	var limit *domain.WithdrawalLimit
	if existing == nil {
		limit, err = domain.NewWithdrawalLimit(userID, daily, monthly)
		if err != nil {
			return nil, err
		}
	} else {
		prevDaily, err := money.NewFromSmallestUnit(existing.DailyMinor, code)
		if err != nil {
			return nil, err
		}
		prevMonthly, err := money.NewFromSmallestUnit(existing.MonthlyMinor, code)
		if err != nil {
			return nil, err
		}
		limit = domain.RehydrateWithdrawalLimit(
			existing.ID, existing.UserID,
			prevDaily, prevMonthly,
			existing.CreatedAt, existing.UpdatedAt,
		)
		if err := limit.UpdateLimits(daily, monthly); err != nil {
			return nil, err
		}
	}

	if err := s.limits.Upsert(ctx, dto.LimitUpsert{
		ID:           limit.ID,
		UserID:       limit.UserID,
		Currency:     code.String(),
		DailyMinor:   limit.Daily.Amount(),
		MonthlyMinor: limit.Monthly.Amount(),
		UpdatedAt:    limit.UpdatedAt,
	}); err != nil {
		return nil, fmt.Errorf("%w: upsert withdrawal limits: %v", domain.ErrPersistence, err)
	}

	s.logger.Info("withdrawal limits updated",
		"user_id", userID,
		"currency", code,
		"daily_minor", limit.Daily.Amount(),
		"monthly_minor", limit.Monthly.Amount(),
	)
	return limit, nil
}
