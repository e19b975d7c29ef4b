package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
)

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (id, email, name, password_hash, created_at, updated_at)
		VALUES (:id, :email, :name, :password_hash, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *adminRepository) Get(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	query := `SELECT id, email, name, password_hash, created_at, updated_at, last_login_at FROM admins WHERE id = $1`
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, notFound(err, "failed to get admin")
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	query := `SELECT id, email, name, password_hash, created_at, updated_at, last_login_at
		FROM admins WHERE LOWER(email) = $1`
	if err := r.db.GetContext(ctx, &admin, query, strings.ToLower(email)); err != nil {
		return nil, notFound(err, "failed to get admin by email")
	}
	return &admin, nil
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE admins SET last_login_at = $1, updated_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update admin last login: %w", err)
	}
	return mustAffect(result, "admin")
}
