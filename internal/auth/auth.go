package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/unimind/unimind/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenValidator verifies bearer tokens issued by the identity provider and
// extracts the subject. Tokens are signed with a shared HS256 secret.
type TokenValidator struct {
	secret   []byte
	issuer   string
	audience string
}

func NewTokenValidator(cfg config.Auth) TokenValidator {
	return TokenValidator{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Enabled reports whether token validation is configured. Without a secret
// the middleware falls back to the X-User-Id development header.
func (v TokenValidator) Enabled() bool {
	return len(v.secret) > 0
}

// Subject validates the Authorization header value ("Bearer <token>") and
// returns the token's subject claim.
func (v TokenValidator) Subject(authorizationHeader string) (string, error) {
	raw, found := strings.CutPrefix(authorizationHeader, "Bearer ")
	if !found {
		return "", fmt.Errorf("%w: missing bearer prefix", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return subject, nil
}
