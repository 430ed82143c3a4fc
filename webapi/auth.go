package webapi

import (
	"github.com/gofiber/fiber/v2"
)

// TokenRequest is the payload for minting a service token.
type TokenRequest struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
	UserID       string `json:"user_id" validate:"required"`
}

// AuthRoutes registers the token endpoint.
func AuthRoutes(app *fiber.App, authSvc AuthService) {
	app.Post("/auth/token", Token(authSvc))
}

// Token returns the handler minting a bearer token for the given user.
// @Summary Issue an access token
// @Description Exchanges the machine-client credential for a JWT whose subject is the acting user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Client credential and user"
// @Success 200 {object} Response "Token issued"
// @Failure 400 {object} ProblemDetails "Invalid request"
// @Failure 401 {object} ProblemDetails "Invalid credentials"
// @Router /auth/token [post]
func Token(authSvc AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[TokenRequest](c)
		if input == nil {
			return err
		}
		token, err := authSvc.IssueToken(input.ClientID, input.ClientSecret, input.UserID)
		if err != nil {
			return DomainErrorJSON(c, "Failed to issue token", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Token issued", fiber.Map{
			"access_token": token,
			"token_type":   "Bearer",
		})
	}
}
