package domain

import "errors"

var (
	// ErrInvalidAmount is returned when a non-positive amount is supplied to
	// a deposit, withdrawal, or withdrawal request.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when an account has insufficient funds
	// for a withdrawal at commit time.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDailyLimitExceeded is returned when a withdrawal would strictly
	// exceed the configured daily cap.
	ErrDailyLimitExceeded = errors.New("daily withdrawal limit exceeded")

	// ErrMonthlyLimitExceeded is returned when a withdrawal would strictly
	// exceed the configured monthly cap.
	ErrMonthlyLimitExceeded = errors.New("monthly withdrawal limit exceeded")

	// ErrAccountNotFound is returned when no account exists for the
	// (user, currency) pair.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists is returned when provisioning an account for a
	// (user, currency) pair that already has one.
	ErrAccountAlreadyExists = errors.New("account already exists for user and currency")

	// ErrConcurrencyConflict signals a stale read during an optimistic
	// update. Transient: the workflow retries a bounded number of times
	// before surfacing it.
	ErrConcurrencyConflict = errors.New("concurrent update conflict")

	// ErrPersistence is returned when a store operation fails for reasons
	// unrelated to business rules.
	ErrPersistence = errors.New("persistence failure")

	// ErrPartialCommit is returned when the balance write succeeded but the
	// transaction-log write failed. Fatal; requires operator reconciliation.
	ErrPartialCommit = errors.New("balance updated but transaction record not written")

	// ErrCurrencyMismatch is returned when there is a currency mismatch
	// between an account and a requested operation.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrDescriptionRequired is returned when a ledger movement is created
	// without a description.
	ErrDescriptionRequired = errors.New("description is required")

	// ErrInvalidTransactionType is returned when a ledger query names a
	// movement type that does not exist.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)
