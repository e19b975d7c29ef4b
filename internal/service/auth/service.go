package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/auth"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/security"
)

const (
	msgCredentialsRequired = "Email dan password harus diisi"
	msgInvalidCredentials  = "Email atau password salah"
	msgLockedOut           = "Terlalu banyak percobaan login, coba lagi nanti"

	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

type Service struct {
	admins   repository.AdminRepository
	jwt      auth.JWTService
	hasher   security.PasswordHasher
	attempts *cache.Cache
	log      *logger.Logger
	now      func() time.Time
}

func NewService(admins repository.AdminRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher,
	log *logger.Logger, now func() time.Time) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		admins:   admins,
		jwt:      jwtSvc,
		hasher:   hasher,
		attempts: cache.New(lockoutDuration, 2*lockoutDuration),
		log:      log,
		now:      now,
	}
}

// Login checks the credentials and issues a session token. Repeated failures
// for one email lock it out for a while.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.BadRequest(msgCredentialsRequired, nil)
	}
	if n, ok := s.attempts.Get(email); ok && n.(int) >= maxLoginAttempts {
		return nil, apperrors.Unauthorized(msgLockedOut, nil)
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recordFailure(email)
			return nil, apperrors.Unauthorized(msgInvalidCredentials, nil)
		}
		return nil, apperrors.Internal("", err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, req.Password); err != nil {
		s.recordFailure(email)
		if !errors.Is(err, security.ErrMismatch) {
			s.log.Error(err, "stored password hash is unusable", "admin_id", admin.ID)
		}
		return nil, apperrors.Unauthorized(msgInvalidCredentials, nil)
	}
	s.attempts.Delete(email)

	now := s.now()
	token, expiresAt, err := s.jwt.GenerateToken(admin, now)
	if err != nil {
		return nil, apperrors.Internal("", err)
	}
	// a failed stamp does not block the login
	if err := s.admins.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		s.log.Error(err, "failed to update last login", "admin_id", admin.ID)
	} else {
		admin.LastLoginAt = &now
	}

	s.log.Info("admin logged in", "admin_id", admin.ID)
	return &model.TokenResponse{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

func (s *Service) recordFailure(email string) {
	if _, err := s.attempts.IncrementInt(email, 1); err != nil {
		s.attempts.Set(email, 1, cache.DefaultExpiration)
	}
}

// Me loads the admin behind validated token claims.
func (s *Service) Me(ctx context.Context, claims *model.TokenClaims) (*model.Admin, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.Unauthorized("", err)
	}
	admin, err := s.admins.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("", err)
		}
		return nil, apperrors.Internal("", err)
	}
	return admin, nil
}

// CreateAdmin provisions an operator account. It is only reachable from the
// operator CLI.
func (s *Service) CreateAdmin(ctx context.Context, email, name, password string) (*model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return nil, apperrors.BadRequest(msgCredentialsRequired, nil)
	}

	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("Email admin sudah terdaftar")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.Validation(err.Error(), map[string]string{"password": err.Error()})
		}
		return nil, apperrors.Internal("", err)
	}

	now := s.now()
	admin := &model.Admin{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, apperrors.Internal("", err)
	}
	return admin, nil
}
