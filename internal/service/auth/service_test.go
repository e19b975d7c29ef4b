package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/memory"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/auth"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/security"
)

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, auth.JWTService) {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	jwtSvc := auth.NewJWTService("test-secret", time.Hour, clock)
	svc := NewService(memory.NewAdminRepository(), jwtSvc, security.NewBcryptHasher(bcrypt.MinCost), nil, clock)
	_, err := svc.CreateAdmin(context.Background(), "Admin@RSIA.id", "Admin", "rahasia123")
	require.NoError(t, err)
	return svc, jwtSvc
}

func TestLogin(t *testing.T) {
	svc, jwtSvc := newService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &model.LoginRequest{Email: " admin@rsia.id ", Password: "rahasia123"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(time.Hour), resp.ExpiresAt)
	require.NotNil(t, resp.Admin.LastLoginAt)
	assert.Equal(t, fixedNow, *resp.Admin.LastLoginAt)

	claims, err := jwtSvc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Admin.ID.String(), claims.Subject)

	me, err := svc.Me(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "admin@rsia.id", me.Email)
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &model.LoginRequest{Email: "admin@rsia.id"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, "Email dan password harus diisi", appErr.Message)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "admin@rsia.id", Password: "salah"})
	appErr, _ = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 401, appErr.StatusCode())
	assert.Equal(t, "Email atau password salah", appErr.Message)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "nobody@rsia.id", Password: "rahasia123"})
	appErr, _ = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Email atau password salah", appErr.Message)
}

func TestLogin_LocksOutAfterRepeatedFailures(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for i := 0; i < maxLoginAttempts; i++ {
		_, err := svc.Login(ctx, &model.LoginRequest{Email: "admin@rsia.id", Password: "salah"})
		require.Error(t, err)
	}
	_, err := svc.Login(ctx, &model.LoginRequest{Email: "admin@rsia.id", Password: "rahasia123"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, msgLockedOut, appErr.Message)
}

func TestCreateAdmin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "admin@rsia.id", "Lagi", "rahasia123")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))

	_, err = svc.CreateAdmin(ctx, "baru@rsia.id", "Baru", "pendek")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))

	admin, err := svc.CreateAdmin(ctx, "baru@rsia.id", "Baru", "panjang123")
	require.NoError(t, err)
	assert.NotEqual(t, "panjang123", admin.PasswordHash)
}
