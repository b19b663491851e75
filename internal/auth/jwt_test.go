package auth

import (
	"testing"
	"time"

	"clinic-perf-cache/internal/config"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewManager(
		config.JWTConfig{Secret: []byte("test-secret"), Issuer: "iss", Audience: "aud", TTL: time.Hour},
		config.AdminConfig{Username: "admin", PasswordHash: hash},
	)
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestManager(t)
	token, err := m.GenerateToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, RoleAdmin, claims.Role)
}

func TestValidateToken_Invalid(t *testing.T) {
	m := newTestManager(t)
	_, err := m.ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	m := newTestManager(t)
	other := NewManager(
		config.JWTConfig{Secret: []byte("test-secret"), Issuer: "iss", Audience: "someone-else"},
		config.AdminConfig{},
	)
	token, err := other.GenerateToken("admin")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	require.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	m := newTestManager(t)

	token, err := m.Authenticate("admin", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = m.Authenticate("admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = m.Authenticate("root", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
