// Package webapi provides the HTTP surface of the checking-account service:
// account provisioning, deposits, the withdrawal workflow, ledger queries,
// and withdrawal-limit management.
package webapi

import (
	"errors"
	"strings"

	"github.com/cashfold/checking/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gofiber/swagger"
)

// SetupApp initializes Fiber with the shared middleware stack and registers
// all routes. Pass a nil idem store to disable the idempotency guard.
func SetupApp(
	accounts AccountService,
	withdrawals WithdrawalService,
	authSvc AuthService,
	idem IdempotencyStore,
	cfg *config.App,
) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return ErrorResponseJSON(c, fe.Code, fe.Message, nil)
			}
			return DomainErrorJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	// Rate limiting keyed on the originating client IP. Uses X-Forwarded-For
	// when behind a proxy, falling back to X-Real-IP, then the direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests,
				"Too Many Requests", "rate limit exceeded")
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Checking API is running")
	})

	jwtGuard := JwtProtected(cfg.Jwt)
	idemGuard := Idempotent(idem)

	AuthRoutes(fiberApp, authSvc)
	AccountRoutes(fiberApp, accounts, withdrawals, authSvc, jwtGuard, idemGuard)
	return fiberApp
}
