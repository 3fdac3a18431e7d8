package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidToken flags any token failure: tampered, malformed,
	// or expired. The wire does not distinguish between them.
	TextCodeInvalidToken = "INVALID_TOKEN"
	// TextCodeInvalidCreds flags a rejected login.
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeEmptyPassword flags an empty password input.
	TextCodeEmptyPassword = "EMPTY_PASSWORD"
)

// ErrInvalidToken is returned for any session token that fails validation.
// Signature mismatch, malformed structure, and expiry all collapse into this
// one error; the underlying cause is only surfaced through logs.
var ErrInvalidToken = errors.New("invalid or expired session token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned when a login attempt does not match the
// configured admin identity.
var ErrInvalidCredentials = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// tokenFailureCause classifies a jwt validation error for logging. The
// distinction never reaches the wire.
func tokenFailureCause(err error) string {
	switch {
	case IsTokenExpiredError(err):
		return "expired"
	case IsMalformedError(err):
		return "malformed"
	default:
		return "invalid"
	}
}
