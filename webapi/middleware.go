package webapi

import (
	"context"
	"log/slog"

	"github.com/cashfold/checking/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected guards a route with bearer-token validation. The verified
// token lands in c.Locals("user").
func JwtProtected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return ErrorResponseJSON(c, fiber.StatusBadRequest, "Missing or malformed JWT", nil)
	}
	return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Invalid or expired JWT", nil)
}

// IdempotencyStore reserves Idempotency-Key values so replayed mutation
// requests are refused before the workflow runs.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
}

// Idempotent refuses requests whose Idempotency-Key header was already seen.
// Requests without the header pass through. A store outage fails open: the
// workflow's own conditional update still protects the balance.
func Idempotent(store IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil {
			return c.Next()
		}
		key := c.Get("Idempotency-Key")
		if key == "" {
			return c.Next()
		}
		ok, err := store.Reserve(c.UserContext(), key)
		if err != nil {
			slog.Warn("idempotency store unavailable, passing request through", "error", err)
			return c.Next()
		}
		if !ok {
			return ErrorResponseJSON(c, fiber.StatusConflict, "Duplicate request",
				"Idempotency-Key was already used")
		}
		return c.Next()
	}
}
