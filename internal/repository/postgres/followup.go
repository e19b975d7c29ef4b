package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
)

const followUpColumns = `id, patient_id, patient_name, doctor_name, appointment_date, appointment_time,
	notes, status, created_at, updated_at`

func (r *followUpRepository) Create(ctx context.Context, followUp *model.FollowUp) error {
	query := `
		INSERT INTO follow_up_appointments (` + followUpColumns + `)
		VALUES (:id, :patient_id, :patient_name, :doctor_name, :appointment_date, :appointment_time,
			:notes, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, followUp); err != nil {
		return fmt.Errorf("failed to create follow-up: %w", err)
	}
	return nil
}

func (r *followUpRepository) Get(ctx context.Context, id uuid.UUID) (*model.FollowUp, error) {
	var followUp model.FollowUp
	query := `SELECT ` + followUpColumns + ` FROM follow_up_appointments WHERE id = $1`
	if err := r.db.GetContext(ctx, &followUp, query, id); err != nil {
		return nil, notFound(err, "failed to get follow-up")
	}
	return &followUp, nil
}

func (r *followUpRepository) List(ctx context.Context) ([]*model.FollowUp, error) {
	var followUps []*model.FollowUp
	query := `SELECT ` + followUpColumns + ` FROM follow_up_appointments
		ORDER BY appointment_date, appointment_time`
	if err := r.db.SelectContext(ctx, &followUps, query); err != nil {
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}
	return followUps, nil
}

func (r *followUpRepository) Update(ctx context.Context, followUp *model.FollowUp) error {
	query := `
		UPDATE follow_up_appointments
		SET appointment_date = :appointment_date, appointment_time = :appointment_time,
			notes = :notes, status = :status, updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, followUp)
	if err != nil {
		return fmt.Errorf("failed to update follow-up: %w", err)
	}
	return mustAffect(result, "follow-up")
}

func (r *followUpRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.FollowUpStatus, at time.Time) error {
	query := `UPDATE follow_up_appointments SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, at, id)
	if err != nil {
		return fmt.Errorf("failed to update follow-up status: %w", err)
	}
	return mustAffect(result, "follow-up")
}

func (r *followUpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM follow_up_appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete follow-up: %w", err)
	}
	return mustAffect(result, "follow-up")
}
