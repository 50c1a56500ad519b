// Package auth resolves staff identities from the signed access tokens that
// POS terminals attach to staff-side requests. Tokens are HS256 JWTs issued
// by the back office; the subject claim carries the staff id, the custom
// claims carry display name and role.
package auth

import (
	"context"
	"errors"
	"fmt"

	"pos/internal/core/ports"
	"pos/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenIsInvalid is returned when an access token is missing, malformed,
// expired or signed with the wrong key.
var ErrTokenIsInvalid = errors.New("access token is invalid")

// TokenIsInvalidError wraps the parse failure behind ErrTokenIsInvalid.
type TokenIsInvalidError struct {
	Cause error
}

// NewTokenIsInvalidError creates a TokenIsInvalidError with the given cause.
func NewTokenIsInvalidError(cause error) *TokenIsInvalidError {
	return &TokenIsInvalidError{Cause: cause}
}

// Error implements the error interface.
func (e *TokenIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", ErrTokenIsInvalid, e.Cause)
	}
	return ErrTokenIsInvalid.Error()
}

// Unwrap returns the sentinel so errors.Is(err, ErrTokenIsInvalid) works.
func (e *TokenIsInvalidError) Unwrap() error {
	return ErrTokenIsInvalid
}

// staffClaims are the claims the back office signs into staff tokens.
type staffClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIdentityProvider implements ports.IdentityProvider by validating HS256
// staff tokens locally, without a round trip to the back office.
type JWTIdentityProvider struct {
	secret []byte
}

// NewJWTIdentityProvider creates a provider validating tokens against the
// given shared secret.
func NewJWTIdentityProvider(secret string) (*JWTIdentityProvider, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("token secret")
	}
	return &JWTIdentityProvider{secret: []byte(secret)}, nil
}

// Identify parses and validates the token and returns the staff identity
// carried in its claims. Expiry is enforced by the JWT library.
func (p *JWTIdentityProvider) Identify(_ context.Context, token string) (ports.Identity, error) {
	if token == "" {
		return ports.Identity{}, NewTokenIsInvalidError(errs.NewValueIsRequiredError("access token"))
	}

	claims := &staffClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ports.Identity{}, NewTokenIsInvalidError(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return ports.Identity{}, NewTokenIsInvalidError(errors.New("missing subject claim"))
	}

	return ports.Identity{
		ID:   claims.Subject,
		Name: claims.Name,
		Role: claims.Role,
	}, nil
}
