package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/husseinbouik/task-manager-app-backend/internal/config"
	"github.com/husseinbouik/task-manager-app-backend/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-thats-at-least-32-chars"

func newTestJWTService(t *testing.T, lifetimeMinutes int) auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: lifetimeMinutes,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "too-short",
		TokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, 60)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestJWTService_ValidateToken_Failures(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, 60)
	userID := uuid.New()

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		t.Parallel()

		other, err := auth.NewJWTService(config.AuthConfig{
			JWTSecret:            "another-secret-key-also-32-characters!",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)

		token, err := other.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		tampered := token[:len(token)-2] + "xx"
		_, err = svc.ValidateToken(context.Background(), tampered)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		// A negative lifetime mints tokens that expired well beyond the
		// allowed clock skew.
		expiredSvc := newTestJWTService(t, -180)

		token, err := expiredSvc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("token without a user ID", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateToken(context.Background(), uuid.Nil)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
