package withdrawal

import (
	"context"
	"fmt"
	"time"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/money"
)

// LimitStatus reports the configured caps and the usage derived from the
// ledger for one (user, currency) pair at a given instant. When Limited is
// false no limit record exists and the caps are zero values.
type LimitStatus struct {
	Limited          bool
	DailyLimit       money.Money
	MonthlyLimit     money.Money
	DailyUsed        money.Money
	MonthlyUsed      money.Money
	DailyRemaining   money.Money
	MonthlyRemaining money.Money
}

// GetLimitStatus computes the limit status at now. Absence of a limit record
// is not an error: usage is still derived and the caps report as unlimited.
func (s *Service) GetLimitStatus(
	ctx context.Context,
	userID string,
	code currency.Code,
	now time.Time,
) (*LimitStatus, error) {
	dayStart, dayEnd := DayWindow(now)
	dailyUsed, err := s.transactions.SumWithdrawalsInWindow(ctx, userID, code.String(), dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: sum daily withdrawals: %v", domain.ErrPersistence, err)
	}
	monthStart, monthEnd := MonthWindow(now)
	monthlyUsed, err := s.transactions.SumWithdrawalsInWindow(ctx, userID, code.String(), monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: sum monthly withdrawals: %v", domain.ErrPersistence, err)
	}

	status := &LimitStatus{
		DailyUsed:   money.Zero(code),
		MonthlyUsed: money.Zero(code),
	}
	if status.DailyUsed, err = money.NewFromSmallestUnit(dailyUsed, code); err != nil {
		return nil, err
	}
	if status.MonthlyUsed, err = money.NewFromSmallestUnit(monthlyUsed, code); err != nil {
		return nil, err
	}

	limits, err := s.limits.GetByUserAndCurrency(ctx, userID, code.String())
	if err != nil {
		return nil, fmt.Errorf("%w: load withdrawal limits: %v", domain.ErrPersistence, err)
	}
	if limits == nil {
		return status, nil
	}

	status.Limited = true
	if status.DailyLimit, err = money.NewFromSmallestUnit(limits.DailyMinor, code); err != nil {
		return nil, err
	}
	if status.MonthlyLimit, err = money.NewFromSmallestUnit(limits.MonthlyMinor, code); err != nil {
		return nil, err
	}
	status.DailyRemaining = remaining(limits.DailyMinor, dailyUsed, code)
	status.MonthlyRemaining = remaining(limits.MonthlyMinor, monthlyUsed, code)
	return status, nil
}

// remaining clamps limit − used at zero: usage already past the cap reports
// zero allowance, never a negative one.
func remaining(limitMinor, usedMinor int64, code currency.Code) money.Money {
	left := limitMinor - usedMinor
	if left < 0 {
		left = 0
	}
	m, _ := money.NewFromSmallestUnit(left, code)
	return m
}
