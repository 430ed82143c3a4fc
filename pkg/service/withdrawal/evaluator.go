package withdrawal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/money"
	limitrepo "github.com/cashfold/checking/pkg/repository/limit"
	transactionrepo "github.com/cashfold/checking/pkg/repository/transaction"
)

// LimitEvaluator decides whether a proposed withdrawal fits within the
// remaining daily and monthly allowance. Usage is derived by summing
// withdrawal entries in the relevant window; nothing is cached between calls.
type LimitEvaluator struct {
	limits       limitrepo.Repository
	transactions transactionrepo.Repository
	logger       *slog.Logger
}

// NewLimitEvaluator wires the evaluator with its two stores.
func NewLimitEvaluator(
	limits limitrepo.Repository,
	transactions transactionrepo.Repository,
	logger *slog.Logger,
) *LimitEvaluator {
	return &LimitEvaluator{limits: limits, transactions: transactions, logger: logger}
}

// Evaluate checks the proposed amount against the configured caps at the
// given instant. Absence of a limit record means no cap is configured and the
// withdrawal is allowed. Limit boundaries are strict greater-than: usage that
// lands exactly on the cap is allowed.
//
// Day and month windows are half-open [start, end) in UTC, independent of the
// caller's timezone.
func (e *LimitEvaluator) Evaluate(
	ctx context.Context,
	userID string,
	code currency.Code,
	proposed money.Money,
	now time.Time,
) (Decision, error) {
	limits, err := e.limits.GetByUserAndCurrency(ctx, userID, code.String())
	if err != nil {
		return DecisionAllowed, fmt.Errorf("%w: load withdrawal limits: %v", domain.ErrPersistence, err)
	}
	if limits == nil {
		return DecisionAllowed, nil
	}

	dayStart, dayEnd := DayWindow(now)
	dailyUsed, err := e.transactions.SumWithdrawalsInWindow(ctx, userID, code.String(), dayStart, dayEnd)
	if err != nil {
		return DecisionAllowed, fmt.Errorf("%w: sum daily withdrawals: %v", domain.ErrPersistence, err)
	}
	if dailyUsed+proposed.Amount() > limits.DailyMinor {
		e.logger.Debug("daily limit rejection",
			"user_id", userID,
			"currency", code,
			"daily_used", dailyUsed,
			"proposed", proposed.Amount(),
			"daily_limit", limits.DailyMinor,
		)
		return DecisionRejectedDailyLimit, nil
	}

	monthStart, monthEnd := MonthWindow(now)
	monthlyUsed, err := e.transactions.SumWithdrawalsInWindow(ctx, userID, code.String(), monthStart, monthEnd)
	if err != nil {
		return DecisionAllowed, fmt.Errorf("%w: sum monthly withdrawals: %v", domain.ErrPersistence, err)
	}
	if monthlyUsed+proposed.Amount() > limits.MonthlyMinor {
		e.logger.Debug("monthly limit rejection",
			"user_id", userID,
			"currency", code,
			"monthly_used", monthlyUsed,
			"proposed", proposed.Amount(),
			"monthly_limit", limits.MonthlyMinor,
		)
		return DecisionRejectedMonthlyLimit, nil
	}

	return DecisionAllowed, nil
}

// DayWindow returns the half-open UTC day window [00:00, next 00:00)
// containing now.
func DayWindow(now time.Time) (start, end time.Time) {
	u := now.UTC()
	start = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// MonthWindow returns the half-open UTC month window [first of month, first
// of next month) containing now.
func MonthWindow(now time.Time) (start, end time.Time) {
	u := now.UTC()
	start = time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
