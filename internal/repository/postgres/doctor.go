package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (id, name, specialization, status, created_at, last_updated)
		VALUES (:id, :name, :specialization, :status, :created_at, :last_updated)`

	if _, err := r.db.NamedExecContext(ctx, query, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	query := `SELECT id, name, specialization, status, created_at, last_updated FROM doctors WHERE id = $1`
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, notFound(err, "failed to get doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	query := `SELECT id, name, specialization, status, created_at, last_updated FROM doctors ORDER BY name`
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = :name, specialization = :specialization, last_updated = :last_updated
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, doctor)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return mustAffect(result, "doctor")
}

func (r *doctorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DoctorStatus, at time.Time) error {
	query := `UPDATE doctors SET status = $1, last_updated = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, at, id)
	if err != nil {
		return fmt.Errorf("failed to update doctor status: %w", err)
	}
	return mustAffect(result, "doctor")
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return mustAffect(result, "doctor")
}
