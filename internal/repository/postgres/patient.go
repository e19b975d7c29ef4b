package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
)

const patientColumns = `id, nama, nik, telepon, jenis_kelamin, alamat, layanan, spesialisasi_dokter,
	dokter, tanggal, estimated_time, status, queue_status, queue_number, keluhan,
	booking_source, tanggal_daftar, updated_at`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (` + patientColumns + `)
		VALUES (:id, :nama, :nik, :telepon, :jenis_kelamin, :alamat, :layanan, :spesialisasi_dokter,
			:dokter, :tanggal, :estimated_time, :status, :queue_status, :queue_number, :keluhan,
			:booking_source, :tanggal_daftar, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, notFound(err, "failed to get patient")
	}
	return &patient, nil
}

// List returns newest registrations first.
func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	var patients []*model.Patient
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY tanggal_daftar DESC NULLS LAST`
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PatientStatus, at time.Time) error {
	query := `UPDATE patients SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, at, id)
	if err != nil {
		return fmt.Errorf("failed to update patient status: %w", err)
	}
	return mustAffect(result, "patient")
}
