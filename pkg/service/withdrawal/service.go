// Package withdrawal implements the withdrawal authorization and
// ledger-update workflow: limit evaluation, the conditional balance commit,
// the append-only transaction record, and the completion/rejection events.
package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/domain/events"
	"github.com/cashfold/checking/pkg/dto"
	"github.com/cashfold/checking/pkg/eventbus"
	"github.com/cashfold/checking/pkg/money"
	accountrepo "github.com/cashfold/checking/pkg/repository/account"
	limitrepo "github.com/cashfold/checking/pkg/repository/limit"
	transactionrepo "github.com/cashfold/checking/pkg/repository/transaction"
)

// maxCommitAttempts bounds the optimistic-lock retry loop. After this many
// stale reads the workflow surfaces domain.ErrConcurrencyConflict, which is
// retryable from the caller's perspective.
const maxCommitAttempts = 3

// Service orchestrates withdrawals. It is stateless between calls: every
// invocation re-reads the account, and nothing is cached beyond a single
// request's lifetime.
type Service struct {
	accounts     accountrepo.Repository
	transactions transactionrepo.Repository
	limits       limitrepo.Repository
	evaluator    *LimitEvaluator
	bus          eventbus.Publisher
	clock        func() time.Time
	logger       *slog.Logger
}

// Option customizes the Service.
type Option func(*Service)

// WithClock replaces the time source. Test setup only.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// New wires the workflow with its collaborator stores and event sink.
func New(
	accounts accountrepo.Repository,
	transactions transactionrepo.Repository,
	limits limitrepo.Repository,
	bus eventbus.Publisher,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		accounts:     accounts,
		transactions: transactions,
		limits:       limits,
		evaluator:    NewLimitEvaluator(limits, transactions, logger),
		bus:          bus,
		clock:        time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanWithdraw reports whether the user may withdraw amount from their
// (user, currency) account right now, and the rejection reason when not.
// A nil error with allowed=false is a business rejection; a non-nil error is
// infrastructure failure.
func (s *Service) CanWithdraw(
	ctx context.Context,
	userID string,
	code currency.Code,
	amount money.Money,
) (allowed bool, reason string, err error) {
	if !amount.IsPositive() {
		return false, "", domain.ErrInvalidAmount
	}

	acct, err := s.accounts.GetByUserAndCurrency(ctx, userID, code.String())
	if errors.Is(err, domain.ErrAccountNotFound) {
		return false, ReasonAccountNotFound, nil
	}
	if err != nil {
		return false, "", fmt.Errorf("%w: load account: %v", domain.ErrPersistence, err)
	}

	if amount.Amount() > acct.BalanceMinor {
		return false, ReasonInsufficientFunds, nil
	}

	decision, err := s.evaluator.Evaluate(ctx, userID, code, amount, s.clock())
	if err != nil {
		return false, "", err
	}
	if !decision.Allowed() {
		return false, decision.Reason(), nil
	}
	return true, "", nil
}

// ProcessWithdrawal authorizes and commits one withdrawal:
//
//  1. Runs the CanWithdraw check; a rejection publishes WithdrawalRejected
//     and returns a *RejectionError (terminal, non-retryable).
//  2. Re-loads the account to defend against a race between check and commit.
//  3. Applies the in-memory debit; an InsufficientFunds at this point (still
//     possible under race) takes the same rejection path as step 1.
//  4. Persists the balance through the conditional update; a stale version
//     restarts from step 2, up to maxCommitAttempts.
//  5. Appends the ledger entry. A failure here, after the balance is already
//     durable, is a fatal inconsistency: logged at highest severity and
//     surfaced as domain.ErrPartialCommit. Never silently retried.
//  6. Publishes WithdrawalCompleted, best-effort: a publish failure is logged
//     and does not fail the committed withdrawal.
//
// Cancellation is checked before every durable write and never between the
// balance write and the transaction write.
func (s *Service) ProcessWithdrawal(
	ctx context.Context,
	userID string,
	code currency.Code,
	amount money.Money,
	description string,
) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if description == "" {
		return nil, domain.ErrDescriptionRequired
	}

	allowed, reason, err := s.CanWithdraw(ctx, userID, code, amount)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, s.reject(ctx, userID, code, amount, reason)
	}

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		read, err := s.accounts.GetByUserAndCurrency(ctx, userID, code.String())
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, s.reject(ctx, userID, code, amount, ReasonAccountNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: load account: %v", domain.ErrPersistence, err)
		}

		acct, err := rehydrateAccount(read)
		if err != nil {
			return nil, err
		}
		if err := acct.Withdraw(amount); err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return nil, s.reject(ctx, userID, code, amount, ReasonInsufficientFunds)
			}
			return nil, err
		}

		// Cancellation gate: nothing durable has been written yet.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err = s.accounts.UpdateBalance(ctx, dto.AccountBalanceUpdate{
			ID:              read.ID,
			BalanceMinor:    acct.Balance.Amount(),
			ExpectedVersion: read.Version,
			UpdatedAt:       acct.UpdatedAt,
		})
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			s.logger.Debug("stale balance on withdrawal commit, retrying",
				"user_id", userID,
				"currency", code,
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: update balance: %v", domain.ErrPersistence, err)
		}

		tx, err := domain.NewTransaction(read.ID, userID, amount, domain.TransactionWithdrawal, description)
		if err != nil {
			// The balance is already durable; this is the same
			// inconsistency class as a failed insert.
			return nil, s.partialCommit(userID, code, amount, err)
		}
		if err := s.transactions.Create(ctx, dto.TransactionCreate{
			ID:          tx.ID,
			AccountID:   tx.AccountID,
			UserID:      tx.UserID,
			Currency:    tx.Amount.Currency().String(),
			AmountMinor: tx.Amount.Amount(),
			Type:        string(tx.Type),
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		}); err != nil {
			return nil, s.partialCommit(userID, code, amount, err)
		}

		if err := s.bus.Publish(ctx, events.NewWithdrawalCompleted(tx)); err != nil {
			s.logger.Warn("failed to publish withdrawal completed event",
				"user_id", userID,
				"transaction_id", tx.ID,
				"error", err,
			)
		}
		return tx, nil
	}

	s.logger.Warn("withdrawal commit exhausted optimistic retries",
		"user_id", userID,
		"currency", code,
		"attempts", maxCommitAttempts,
	)
	return nil, domain.ErrConcurrencyConflict
}

// reject publishes the WithdrawalRejected event and returns the terminal
// rejection. A publish failure is logged without affecting the returned
// rejection.
func (s *Service) reject(
	ctx context.Context,
	userID string,
	code currency.Code,
	amount money.Money,
	reason string,
) error {
	event := events.WithdrawalRejected{
		UserID:      userID,
		CurrencyID:  code.String(),
		AmountMinor: amount.Amount(),
		Reason:      reason,
		OccurredAt:  s.clock().UTC(),
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish withdrawal rejected event",
			"user_id", userID,
			"reason", reason,
			"error", err,
		)
	}
	return newRejection(reason)
}

// partialCommit records the balance-written-but-no-ledger-entry state. No
// compensating write is attempted; the operator must reconcile.
func (s *Service) partialCommit(userID string, code currency.Code, amount money.Money, cause error) error {
	s.logger.Error("FATAL: balance debited but transaction record not written, reconciliation required",
		"user_id", userID,
		"currency", code,
		"amount_minor", amount.Amount(),
		"error", cause,
	)
	return fmt.Errorf("%w: %v", domain.ErrPartialCommit, cause)
}

// rehydrateAccount maps a store row to the domain entity through the builder;
// no hidden private-setter bypass.
func rehydrateAccount(read *dto.AccountRead) (*domain.Account, error) {
	return domain.NewAccount().
		WithID(read.ID).
		WithUserID(read.UserID).
		WithCurrency(currency.Code(read.Currency)).
		WithBalanceMinor(read.BalanceMinor).
		WithVersion(read.Version).
		WithCreatedAt(read.CreatedAt).
		WithUpdatedAt(read.UpdatedAt).
		Build()
}
