package withdrawal

import "github.com/cashfold/checking/pkg/domain"

// Rejection reason strings returned to callers and carried on
// WithdrawalRejected events. Business rejections never expose internal store
// errors.
const (
	ReasonAccountNotFound   = "Account not found"
	ReasonInsufficientFunds = "Insufficient funds"
	ReasonDailyLimit        = "Daily withdrawal limit exceeded"
	ReasonMonthlyLimit      = "Monthly withdrawal limit exceeded"
)

// Decision is the outcome of a limit evaluation.
type Decision int

const (
	// DecisionAllowed means the proposed withdrawal fits within the
	// remaining allowance, or no limit record is configured.
	DecisionAllowed Decision = iota
	// DecisionRejectedDailyLimit means the withdrawal would strictly exceed
	// the daily cap.
	DecisionRejectedDailyLimit
	// DecisionRejectedMonthlyLimit means the withdrawal would strictly
	// exceed the monthly cap.
	DecisionRejectedMonthlyLimit
)

// Allowed reports whether the withdrawal may proceed.
func (d Decision) Allowed() bool {
	return d == DecisionAllowed
}

// Reason returns the human-readable rejection reason, or "" when allowed.
func (d Decision) Reason() string {
	switch d {
	case DecisionRejectedDailyLimit:
		return ReasonDailyLimit
	case DecisionRejectedMonthlyLimit:
		return ReasonMonthlyLimit
	default:
		return ""
	}
}

// RejectionError is the terminal, non-retryable outcome of a denied
// withdrawal. It wraps the matching domain sentinel so callers can branch
// with errors.Is while still receiving the human-readable reason.
type RejectionError struct {
	Reason string
	err    error
}

func (e *RejectionError) Error() string {
	return "withdrawal denied: " + e.Reason
}

func (e *RejectionError) Unwrap() error {
	return e.err
}

func newRejection(reason string) *RejectionError {
	var sentinel error
	switch reason {
	case ReasonAccountNotFound:
		sentinel = domain.ErrAccountNotFound
	case ReasonInsufficientFunds:
		sentinel = domain.ErrInsufficientFunds
	case ReasonDailyLimit:
		sentinel = domain.ErrDailyLimitExceeded
	case ReasonMonthlyLimit:
		sentinel = domain.ErrMonthlyLimitExceeded
	}
	return &RejectionError{Reason: reason, err: sentinel}
}
