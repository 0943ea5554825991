package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key", "1h")

	token, expiresAt, err := svc.GenerateToken("emp-1", "hr")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "hr", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateTokenBadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret-key", "not-a-duration")

	_, _, err := svc.GenerateToken("emp-1", "employee")
	require.Error(t, err)
}
