package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyWSTicket(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ticket, err := GenerateWSTicket(42, "user")
	require.NoError(t, err)
	require.NotEmpty(t, ticket)

	claims, err := VerifyToken(ticket)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestVerifyTokenMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateWSTicket(1, "user")
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	_, err = VerifyToken("whatever")
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestVerifyTokenRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	ticket, err := GenerateWSTicket(7, "admin")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = VerifyToken(ticket)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := Claims{
		UserID: 7,
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifyToken(expired)
	assert.Error(t, err)
}
