package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallapp/recall-api/internal/config"
)

const testSecret = "test-secret-key-thats-32-chars-long!!"

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{JWTSecret: "too-short"})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.False(t, claims.ExpiresAt.IsZero())
}

func TestValidateTokenMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateTokenMalformed(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret: "another-secret-key-32-chars-long!!!!",
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Mint a token in the past, beyond the lifetime plus allowed clock skew
	past := time.Now().Add(-2 * time.Hour)
	svc.timeFunc = func() time.Time { return past }
	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
