package webapi

import (
	"errors"
	"log/slog"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/money"
	"github.com/cashfold/checking/pkg/service/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// ErrorResponseJSON writes a problem+json response.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorToStatusCode maps domain errors to HTTP status codes: business
// rejections to 4xx, infrastructure failures to 5xx.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAccountAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrDescriptionRequired),
		errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, money.ErrAmountExceedsMaxSafeInt),
		errors.Is(err, currency.ErrUnsupportedCurrency):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrDailyLimitExceeded),
		errors.Is(err, domain.ErrMonthlyLimitExceeded):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return fiber.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// DomainErrorJSON maps a service error to its HTTP response. Infrastructure
// failures are logged with full detail and returned as an opaque category;
// business rejections surface their human-readable reason.
func DomainErrorJSON(c *fiber.Ctx, title string, err error) error {
	status := ErrorToStatusCode(err)
	if status >= fiber.StatusInternalServerError {
		slog.Error(title, "path", c.OriginalURL(), "error", err)
		return ErrorResponseJSON(c, status, title, "internal error")
	}
	return ErrorResponseJSON(c, status, title, err.Error())
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns the populated struct, or writes an error
// response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
