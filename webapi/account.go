package webapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/dto"
	"github.com/cashfold/checking/pkg/money"
	"github.com/cashfold/checking/pkg/service/withdrawal"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccountService is the provisioning/deposit/query surface the handlers
// consume.
type AccountService interface {
	CreateAccount(ctx context.Context, userID string, code currency.Code) (*domain.Account, error)
	Deposit(ctx context.Context, userID string, code currency.Code, amount money.Money, description string) (*domain.Transaction, error)
	GetBalance(ctx context.Context, userID string, code currency.Code) (money.Money, error)
	ListTransactions(ctx context.Context, userID string, code currency.Code, txType domain.TransactionType) ([]dto.TransactionRead, error)
}

// WithdrawalService is the withdrawal workflow surface the handlers consume.
type WithdrawalService interface {
	ProcessWithdrawal(ctx context.Context, userID string, code currency.Code, amount money.Money, description string) (*domain.Transaction, error)
	GetLimitStatus(ctx context.Context, userID string, code currency.Code, now time.Time) (*withdrawal.LimitStatus, error)
	SetLimits(ctx context.Context, userID string, code currency.Code, daily, monthly money.Money) (*domain.WithdrawalLimit, error)
}

// AuthService resolves the verified user ID from the request token.
type AuthService interface {
	IssueToken(clientID, clientSecret, userID string) (string, error)
	CurrentUserID(token *jwt.Token) (string, error)
}

// CreateAccountRequest is the payload for provisioning an account.
type CreateAccountRequest struct {
	Currency string `json:"currency" validate:"required,len=3"`
}

// MoveMoneyRequest is the payload for deposits and withdrawals. Amount is a
// decimal string in the main currency unit.
type MoveMoneyRequest struct {
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// SetLimitsRequest is the payload for configuring withdrawal caps.
type SetLimitsRequest struct {
	DailyLimit   string `json:"daily_limit" validate:"required"`
	MonthlyLimit string `json:"monthly_limit" validate:"required"`
}

type accountResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Currency  string    `json:"currency"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type transactionResponse struct {
	ID          uuid.UUID `json:"id"`
	AccountID   uuid.UUID `json:"account_id"`
	UserID      string    `json:"user_id"`
	Currency    string    `json:"currency"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type limitStatusResponse struct {
	Limited          bool    `json:"limited"`
	DailyLimit       *string `json:"daily_limit,omitempty"`
	MonthlyLimit     *string `json:"monthly_limit,omitempty"`
	DailyUsed        string  `json:"daily_used"`
	MonthlyUsed      string  `json:"monthly_used"`
	DailyRemaining   *string `json:"daily_remaining,omitempty"`
	MonthlyRemaining *string `json:"monthly_remaining,omitempty"`
}

// AccountRoutes registers the account, ledger, and limit endpoints. All
// routes require a valid bearer token; mutations additionally pass the
// idempotency guard.
func AccountRoutes(
	app *fiber.App,
	accounts AccountService,
	withdrawals WithdrawalService,
	authSvc AuthService,
	jwtGuard fiber.Handler,
	idem fiber.Handler,
) {
	app.Post("/accounts", jwtGuard, CreateAccount(accounts, authSvc))
	app.Get("/accounts/:currency/balance", jwtGuard, GetBalance(accounts, authSvc))
	app.Post("/accounts/:currency/deposit", jwtGuard, idem, Deposit(accounts, authSvc))
	app.Post("/accounts/:currency/withdraw", jwtGuard, idem, Withdraw(withdrawals, authSvc))
	app.Get("/accounts/:currency/transactions", jwtGuard, ListTransactions(accounts, authSvc))
	app.Get("/accounts/:currency/limits", jwtGuard, GetLimitStatus(withdrawals, authSvc))
	app.Put("/accounts/:currency/limits", jwtGuard, SetLimits(withdrawals, authSvc))
}

// CreateAccount returns the handler provisioning the (user, currency)
// account.
// @Summary Create a checking account
// @Description Provisions the single checking account for the authenticated user in the given currency.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account currency"
// @Success 201 {object} Response "Account created"
// @Failure 400 {object} ProblemDetails "Invalid request"
// @Failure 401 {object} ProblemDetails "Unauthorized"
// @Failure 409 {object} ProblemDetails "Account already exists"
// @Router /accounts [post]
// @Security Bearer
func CreateAccount(accounts AccountService, authSvc AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		code := currency.Code(input.Currency)
		if !code.IsValidFormat() || !currency.IsSupported(code) {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Unsupported currency", input.Currency)
		}
		acct, err := accounts.CreateAccount(c.UserContext(), userID, code)
		if err != nil {
			return DomainErrorJSON(c, "Failed to create account", err)
		}
		slog.Info("account created", "account_id", acct.ID, "currency", code)
		return SuccessResponseJSON(c, fiber.StatusCreated, "Account created", accountResponse{
			ID:        acct.ID,
			UserID:    acct.UserID,
			Currency:  acct.Balance.Currency().String(),
			Balance:   acct.Balance.StringAmount(),
			CreatedAt: acct.CreatedAt,
			UpdatedAt: acct.UpdatedAt,
		})
	}
}

// GetBalance returns the handler reading the account balance.
// @Summary Get account balance
// @Tags accounts
// @Produce json
// @Param currency path string true "Currency code"
// @Success 200 {object} Response "Balance"
// @Failure 404 {object} ProblemDetails "Account not found"
// @Router /accounts/{currency}/balance [get]
// @Security Bearer
func GetBalance(accounts AccountService, authSvc AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		code, err := currencyParam(c)
		if err != nil {
			return err
		}
		balance, err := accounts.GetBalance(c.UserContext(), userID, code)
		if err != nil {
			return DomainErrorJSON(c, "Failed to get balance", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Balance", fiber.Map{
			"currency": code.String(),
			"balance":  balance.StringAmount(),
		})
	}
}

// Deposit returns the handler crediting the account.
// @Summary Deposit funds
// @Description Credits the account and appends the matching ledger entry.
// @Tags accounts
// @Accept json
// @Produce json
// @Param currency path string true "Currency code"
// @Param request body MoveMoneyRequest true "Deposit details"
// @Success 200 {object} Response "Deposit committed"
// @Failure 400 {object} ProblemDetails "Invalid request"
// @Failure 404 {object} ProblemDetails "Account not found"
// @Router /accounts/{currency}/deposit [post]
// @Security Bearer
func Deposit(accounts AccountService, authSvc AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		code, err := currencyParam(c)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[MoveMoneyRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount, code)
		if err != nil {
			return DomainErrorJSON(c, "Invalid amount", err)
		}
		tx, err := accounts.Deposit(c.UserContext(), userID, code, amount, input.Description)
		if err != nil {
			return DomainErrorJSON(c, "Failed to deposit", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposit committed", toTransactionResponse(tx))
	}
}

// Withdraw returns the handler running the withdrawal workflow.
// @Summary Withdraw funds
// @Description Authorizes the withdrawal against balance and limits, then commits the debit and the ledger entry.
// @Tags accounts
// @Accept json
// @Produce json
// @Param currency path string true "Currency code"
// @Param request body MoveMoneyRequest true "Withdrawal details"
// @Success 200 {object} Response "Withdrawal committed"
// @Failure 400 {object} ProblemDetails "Invalid request"
// @Failure 404 {object} ProblemDetails "Account not found"
// @Failure 422 {object} ProblemDetails "Business rejection"
// @Router /accounts/{currency}/withdraw [post]
// @Security Bearer
func Withdraw(withdrawals WithdrawalService, authSvc AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		code, err := currencyParam(c)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[MoveMoneyRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount, code)
		if err != nil {
			return DomainErrorJSON(c, "Invalid amount", err)
		}
		tx, err := withdrawals.ProcessWithdrawal(c.UserContext(), userID, code, amount, input.Description)
		if err != nil {
			return DomainErrorJSON(c, "Withdrawal denied", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal committed", toTransactionResponse(tx))
	}
}

// ListTransactions returns the handler listing recent ledger entries.
// @Summary List transactions
// @Tags accounts
// @Produce json
// @Param currency path string true "Currency code"
// @Param type query string false "Filter by movement type (deposit or withdrawal)"
// @Success 200 {object} Response "Transactions"
// @Router /accounts/{currency}/transactions [get]
// @Security Bearer
func ListTransactions(accounts AccountService, authSvc AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		code, err := currencyParam(c)
		if err != nil {
			return err
		}
		txType := domain.TransactionType(c.Query("type"))
		rows, err := accounts.ListTransactions(c.UserContext(), userID, code, txType)
		if err != nil {
			return DomainErrorJSON(c, "Failed to list transactions", err)
		}
		result := make([]transactionResponse, 0, len(rows))
		for i := range rows {
			result = append(result, readToTransactionResponse(&rows[i]))
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transactions", result)
	}
}

// GetLimitStatus returns the handler reporting caps and derived usage.
// @Summary Get withdrawal limit status
// @Description Returns configured caps and the usage derived from the ledger. An account without a limit record reports unlimited.
// @Tags limits
// @Produce json
// @Param currency path string true "Currency code"
// @Success 200 {object} Response "Limit status"
// @Router /accounts/{currency}/limits [get]
// @Security Bearer
func GetLimitStatus(withdrawals WithdrawalService, authSvc AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		code, err := currencyParam(c)
		if err != nil {
			return err
		}
		status, err := withdrawals.GetLimitStatus(c.UserContext(), userID, code, time.Now())
		if err != nil {
			return DomainErrorJSON(c, "Failed to get limit status", err)
		}
		resp := limitStatusResponse{
			Limited:     status.Limited,
			DailyUsed:   status.DailyUsed.StringAmount(),
			MonthlyUsed: status.MonthlyUsed.StringAmount(),
		}
		if status.Limited {
			resp.DailyLimit = stringPtr(status.DailyLimit.StringAmount())
			resp.MonthlyLimit = stringPtr(status.MonthlyLimit.StringAmount())
			resp.DailyRemaining = stringPtr(status.DailyRemaining.StringAmount())
			resp.MonthlyRemaining = stringPtr(status.MonthlyRemaining.StringAmount())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Limit status", resp)
	}
}

// SetLimits returns the handler configuring withdrawal caps.
// @Summary Set withdrawal limits
// @Tags limits
// @Accept json
// @Produce json
// @Param currency path string true "Currency code"
// @Param request body SetLimitsRequest true "Daily and monthly caps"
// @Success 200 {object} Response "Limits updated"
// @Failure 400 {object} ProblemDetails "Invalid request"
// @Router /accounts/{currency}/limits [put]
// @Security Bearer
func SetLimits(withdrawals WithdrawalService, authSvc AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		code, err := currencyParam(c)
		if err != nil {
			return err
		}
		input, err := BindAndValidate[SetLimitsRequest](c)
		if input == nil {
			return err
		}
		daily, err := money.New(input.DailyLimit, code)
		if err != nil {
			return DomainErrorJSON(c, "Invalid daily limit", err)
		}
		monthly, err := money.New(input.MonthlyLimit, code)
		if err != nil {
			return DomainErrorJSON(c, "Invalid monthly limit", err)
		}
		limit, err := withdrawals.SetLimits(c.UserContext(), userID, code, daily, monthly)
		if err != nil {
			return DomainErrorJSON(c, "Failed to set limits", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Limits updated", fiber.Map{
			"currency":      code.String(),
			"daily_limit":   limit.Daily.StringAmount(),
			"monthly_limit": limit.Monthly.StringAmount(),
			"updated_at":    limit.UpdatedAt,
		})
	}
}

func currentUserID(c *fiber.Ctx, authSvc AuthService) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "missing user context")
	}
	userID, err := authSvc.CurrentUserID(token)
	if err != nil {
		return "", ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "invalid token subject")
	}
	return userID, nil
}

func currencyParam(c *fiber.Ctx) (currency.Code, error) {
	code := currency.Code(c.Params("currency"))
	if !code.IsValidFormat() || !currency.IsSupported(code) {
		return "", ErrorResponseJSON(c, fiber.StatusBadRequest, "Unsupported currency", code.String())
	}
	return code, nil
}

func toTransactionResponse(tx *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		UserID:      tx.UserID,
		Currency:    tx.Amount.Currency().String(),
		Amount:      tx.Amount.StringAmount(),
		Type:        string(tx.Type),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

func readToTransactionResponse(row *dto.TransactionRead) transactionResponse {
	amount, _ := money.NewFromSmallestUnit(row.AmountMinor, currency.Code(row.Currency))
	return transactionResponse{
		ID:          row.ID,
		AccountID:   row.AccountID,
		UserID:      row.UserID,
		Currency:    row.Currency,
		Amount:      amount.StringAmount(),
		Type:        row.Type,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}

func stringPtr(s string) *string { return &s }
