package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 1)
	userID := uuid.New()

	token, err := svc.Generate(userID, "admin@example.com", "admin")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	token, err := NewJWTService("secret-a", 1).Generate(uuid.New(), "a@x.com", "admin")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 1).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTGarbageRejected(t *testing.T) {
	_, err := NewJWTService("secret", 1).Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
