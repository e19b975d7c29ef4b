package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := NewJWTService("secret", time.Hour, func() time.Time { return now })
	admin := &model.Admin{ID: uuid.New(), Email: "admin@primaqonita.id", Name: "Admin"}

	token, expiresAt, err := svc.GenerateToken(admin, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.Subject)
	assert.Equal(t, admin.Email, claims.Email)
}

func TestJWTService_Rejects(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := now
	svc := NewJWTService("secret", time.Hour, func() time.Time { return clock })
	admin := &model.Admin{ID: uuid.New(), Email: "admin@primaqonita.id"}
	token, _, err := svc.GenerateToken(admin, now)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		clock = now.Add(2 * time.Hour)
		defer func() { clock = now }()
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other", time.Hour, func() time.Time { return now })
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
