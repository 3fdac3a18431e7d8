package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/jobfinder/internal/auth"
)

var testIdentity = auth.Identity{
	SubjectID: "0b0c7e6e-7e87-4f4b-9a3f-5a4fbb0f0001",
	Email:     "admin@jobfinder.com",
	Role:      auth.RoleAdmin,
}

func newTokenService(t *testing.T) auth.TokenService {
	t.Helper()
	return auth.NewTokenService([]byte("test-signing-key"), 168, "jobfinder", nil, nil)
}

func TestTokenServiceRoundtrip(t *testing.T) {
	ts := newTokenService(t)

	token, err := ts.Generate(testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, testIdentity.SubjectID, claims.UserID())
	assert.Equal(t, testIdentity.Email, claims.Email)
	assert.Equal(t, auth.RoleAdmin, claims.Role())

	identity := claims.Identity()
	require.NotNil(t, identity)
	assert.True(t, identity.IsAdmin())
}

func TestTokenServiceExpiryWindow(t *testing.T) {
	ts := newTokenService(t)

	token, err := ts.Generate(testIdentity)
	require.NoError(t, err)

	claims, err := ts.Validate(token)
	require.NoError(t, err)

	lifetime := claims.Expires().Sub(claims.Issued())
	assert.Equal(t, 168*time.Hour, lifetime)
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	ts := auth.NewTokenService([]byte("test-signing-key"), 168, "jobfinder", nil, nil)
	signer := ts.(*auth.TokenServiceImpl)

	now := time.Now()
	token, err := signer.SignClaims(&auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "jobfinder",
			Subject:   testIdentity.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		},
		UID:      testIdentity.SubjectID,
		Email:    testIdentity.Email,
		UserRole: auth.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = ts.Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenServiceRejectsTamperedToken(t *testing.T) {
	ts := newTokenService(t)
	other := auth.NewTokenService([]byte("other-signing-key"), 168, "jobfinder", nil, nil)

	token, err := other.Generate(testIdentity)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	ts := newTokenService(t)

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not a jwt", "nope"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Validate(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestTokenServiceRejectsWrongIssuer(t *testing.T) {
	ts := newTokenService(t)
	other := auth.NewTokenService([]byte("test-signing-key"), 168, "someone-else", nil, nil)

	token, err := other.Generate(testIdentity)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
