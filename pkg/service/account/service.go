// Package account implements account provisioning, deposits, and ledger
// queries. Withdrawals live in the withdrawal package; deposits share the
// same conditional-commit discipline but have no limit check.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/domain/events"
	"github.com/cashfold/checking/pkg/dto"
	"github.com/cashfold/checking/pkg/eventbus"
	"github.com/cashfold/checking/pkg/money"
	accountrepo "github.com/cashfold/checking/pkg/repository/account"
	transactionrepo "github.com/cashfold/checking/pkg/repository/transaction"
)

// maxCommitAttempts bounds the optimistic-lock retry loop on deposits.
const maxCommitAttempts = 3

// defaultHistoryLimit caps how many ledger entries a listing returns.
const defaultHistoryLimit = 100

// Service provides account provisioning, deposits, and read queries.
type Service struct {
	accounts     accountrepo.Repository
	transactions transactionrepo.Repository
	bus          eventbus.Publisher
	logger       *slog.Logger
}

// New wires the service with its stores and event sink.
func New(
	accounts accountrepo.Repository,
	transactions transactionrepo.Repository,
	bus eventbus.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		bus:          bus,
		logger:       logger,
	}
}

// CreateAccount provisions the single account for (userID, code) with a zero
// balance. Returns domain.ErrAccountAlreadyExists when the pair is taken.
func (s *Service) CreateAccount(
	ctx context.Context,
	userID string,
	code currency.Code,
) (*domain.Account, error) {
	acct, err := domain.NewAccount().
		WithUserID(userID).
		WithCurrency(code).
		Build()
	if err != nil {
		return nil, err
	}

	err = s.accounts.Create(ctx, dto.AccountCreate{
		ID:           acct.ID,
		UserID:       acct.UserID,
		Currency:     acct.Balance.Currency().String(),
		BalanceMinor: acct.Balance.Amount(),
	})
	if errors.Is(err, domain.ErrAccountAlreadyExists) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: create account: %v", domain.ErrPersistence, err)
	}

	s.logger.Info("account created",
		"account_id", acct.ID,
		"user_id", userID,
		"currency", code,
	)
	return acct, nil
}

// Deposit credits the (userID, code) account and appends the matching ledger
// entry. The commit path mirrors the withdrawal workflow: conditional balance
// update with bounded retry, ledger append, best-effort DepositCompleted
// event. There is no upper bound on deposits.
func (s *Service) Deposit(
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

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		read, err := s.accounts.GetByUserAndCurrency(ctx, userID, code.String())
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		if err != nil {
			return nil, fmt.Errorf("%w: load account: %v", domain.ErrPersistence, err)
		}

		acct, err := rehydrateAccount(read)
		if err != nil {
			return nil, err
		}
		if err := acct.Deposit(amount); err != nil {
			return nil, err
		}

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
			s.logger.Debug("stale balance on deposit commit, retrying",
				"user_id", userID,
				"currency", code,
				"attempt", attempt,
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: update balance: %v", domain.ErrPersistence, err)
		}

		tx, err := domain.NewTransaction(read.ID, userID, amount, domain.TransactionDeposit, description)
		if err != nil {
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

		if err := s.bus.Publish(ctx, events.NewDepositCompleted(tx)); err != nil {
			s.logger.Warn("failed to publish deposit completed event",
				"user_id", userID,
				"transaction_id", tx.ID,
				"error", err,
			)
		}
		return tx, nil
	}

	return nil, domain.ErrConcurrencyConflict
}

// GetBalance returns the current balance of the (userID, code) account.
func (s *Service) GetBalance(
	ctx context.Context,
	userID string,
	code currency.Code,
) (money.Money, error) {
	read, err := s.accounts.GetByUserAndCurrency(ctx, userID, code.String())
	if errors.Is(err, domain.ErrAccountNotFound) {
		return money.Money{}, err
	}
	if err != nil {
		return money.Money{}, fmt.Errorf("%w: load account: %v", domain.ErrPersistence, err)
	}
	return money.NewFromSmallestUnit(read.BalanceMinor, currency.Code(read.Currency))
}

// ListTransactions returns the most recent ledger entries for the pair,
// newest first. An empty txType lists all entry types; "withdrawal" or
// "deposit" narrows the history to that movement.
func (s *Service) ListTransactions(
	ctx context.Context,
	userID string,
	code currency.Code,
	txType domain.TransactionType,
) ([]dto.TransactionRead, error) {
	if txType != "" && !txType.IsValid() {
		return nil, domain.ErrInvalidTransactionType
	}
	rows, err := s.transactions.ListByUserAndCurrency(ctx, userID, code.String(), string(txType), defaultHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions: %v", domain.ErrPersistence, err)
	}
	return rows, nil
}

func (s *Service) partialCommit(userID string, code currency.Code, amount money.Money, cause error) error {
	s.logger.Error("FATAL: balance credited but transaction record not written, reconciliation required",
		"user_id", userID,
		"currency", code,
		"amount_minor", amount.Amount(),
		"error", cause,
	)
	return fmt.Errorf("%w: %v", domain.ErrPartialCommit, cause)
}

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
