// Package auth is the gate between the HTTP boundary and the workflow: it
// mints service tokens and resolves a verified user ID from a bearer token.
// User-profile management is out of scope; the only credential is the
// configured machine client.
package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/cashfold/checking/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when the client ID or secret does
	// not match the configured credential.
	ErrInvalidCredentials = errors.New("invalid client credentials")

	// ErrInvalidToken is returned when a token carries no usable subject.
	ErrInvalidToken = errors.New("invalid token")
)

// Service issues and inspects the JWTs protecting the API.
type Service struct {
	cfg    config.Jwt
	clock  func() time.Time
	logger *slog.Logger
}

// New creates the auth service from the JWT configuration.
func New(cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, clock: time.Now, logger: logger}
}

// IssueToken checks the machine-client credential and returns a signed token
// whose subject is the acting user ID.
func (s *Service) IssueToken(clientID, clientSecret, userID string) (string, error) {
	if clientID != s.cfg.ClientID || s.cfg.ClientSecretHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.ClientSecretHash), []byte(clientSecret)); err != nil {
		s.logger.Warn("token request with bad client secret", "client_id", clientID)
		return "", ErrInvalidCredentials
	}
	if userID == "" {
		return "", ErrInvalidToken
	}

	now := s.clock()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID extracts the verified user ID from a token already validated
// by the JWT middleware.
func (s *Service) CurrentUserID(token *jwt.Token) (string, error) {
	if token == nil {
		return "", ErrInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
