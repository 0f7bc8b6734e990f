package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("admin", string(hash), "test-secret")
}

func TestLoginIssuesAdminToken(t *testing.T) {
	auth := newAuth(t, "s3cret")

	resp, err := auth.Login(&LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(tokenTTL), resp.ExpiresAt, time.Minute)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newAuth(t, "s3cret")

	_, err := auth.Login(&LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(&LoginRequest{Username: "root", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	unconfigured := NewAuthService("admin", "", "test-secret")
	_, err = unconfigured.Login(&LoginRequest{Username: "admin", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejections(t *testing.T) {
	auth := newAuth(t, "s3cret")
	resp, err := auth.Login(&LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	other := NewAuthService("admin", "", "another-secret")
	_, err = other.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	auth.now = func() time.Time { return time.Now().Add(tokenTTL + time.Hour) }
	_, err = auth.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	userToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{Role: "user"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = newAuth(t, "x").ValidateToken(userToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
