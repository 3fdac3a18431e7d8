package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Default admin identity. This is intentionally not a general user store:
// the back office has exactly one operator credential set, overridable
// through configuration.
const (
	DefaultAdminEmail    = "admin@jobfinder.com"
	DefaultAdminPassword = "admin123"
)

// Verifier checks submitted credentials against the single admin identity
// and mints a session token on success.
type Verifier struct {
	subjectID    string
	email        string
	passwordHash string
	tokens       TokenService
	logger       Logger
}

// VerifierOption customizes Verifier construction.
type VerifierOption func(*Verifier)

// WithVerifierLogger overrides the default logger.
func WithVerifierLogger(logger Logger) VerifierOption {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewVerifier builds a Verifier for the given admin credentials. Empty email
// or password fall back to the defaults. The cleartext password is hashed at
// construction and discarded.
func NewVerifier(email, password string, tokens TokenService, opts ...VerifierOption) (*Verifier, error) {
	if email == "" {
		email = DefaultAdminEmail
	}
	if password == "" {
		password = DefaultAdminPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	v := &Verifier{
		subjectID:    uuid.NewString(),
		email:        normalizeEmail(email),
		passwordHash: hash,
		tokens:       tokens,
		logger:       defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}

	return v, nil
}

// Authenticate compares the submitted pair against the admin identity and
// returns a signed session token on match.
func (v *Verifier) Authenticate(ctx context.Context, email, password string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if normalizeEmail(email) != v.email {
		v.logger.Info("login rejected", "reason", "unknown identifier")
		return "", ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, v.passwordHash); err != nil {
		v.logger.Info("login rejected", "reason", "password mismatch")
		return "", ErrInvalidCredentials
	}

	token, err := v.tokens.Generate(v.Identity())
	if err != nil {
		v.logger.Error("login token generation failed", "error", err)
		return "", err
	}

	return token, nil
}

// Identity returns the admin identity the verifier vouches for.
func (v *Verifier) Identity() Identity {
	return Identity{
		SubjectID: v.subjectID,
		Email:     v.email,
		Role:      RoleAdmin,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
