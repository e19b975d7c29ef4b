package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
)

// scheduleRow is the table shape. Days and shifts live in JSONB columns.
type scheduleRow struct {
	ID               uuid.UUID      `db:"id"`
	DoctorID         uuid.UUID      `db:"doctor_id"`
	DoctorName       string         `db:"doctor_name"`
	Poly             string         `db:"poly"`
	Days             types.JSONText `db:"days"`
	Shifts           types.JSONText `db:"shifts"`
	Status           string         `db:"status"`
	HolidayReason    string         `db:"holiday_reason"`
	HolidayStartDate string         `db:"holiday_start_date"`
	HolidayEndDate   string         `db:"holiday_end_date"`
	CreatedAt        time.Time      `db:"created_at"`
	LastUpdated      time.Time      `db:"last_updated"`
}

const scheduleColumns = `id, doctor_id, doctor_name, poly, days, shifts, status, holiday_reason,
	holiday_start_date, holiday_end_date, created_at, last_updated`

func toScheduleRow(s *model.Schedule) (*scheduleRow, error) {
	days := s.Days
	if days == nil {
		days = []model.Weekday{}
	}
	shifts := s.Shifts
	if shifts == nil {
		shifts = []model.Shift{}
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal days: %w", err)
	}
	shiftsJSON, err := json.Marshal(shifts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shifts: %w", err)
	}
	return &scheduleRow{
		ID:               s.ID,
		DoctorID:         s.DoctorID,
		DoctorName:       s.DoctorName,
		Poly:             s.Poly,
		Days:             types.JSONText(daysJSON),
		Shifts:           types.JSONText(shiftsJSON),
		Status:           string(s.Status),
		HolidayReason:    s.HolidayReason,
		HolidayStartDate: s.HolidayStartDate,
		HolidayEndDate:   s.HolidayEndDate,
		CreatedAt:        s.CreatedAt,
		LastUpdated:      s.LastUpdated,
	}, nil
}

func (row *scheduleRow) toModel() (*model.Schedule, error) {
	s := &model.Schedule{
		ID:               row.ID,
		DoctorID:         row.DoctorID,
		DoctorName:       row.DoctorName,
		Poly:             row.Poly,
		Status:           model.ScheduleStatus(row.Status),
		HolidayReason:    row.HolidayReason,
		HolidayStartDate: row.HolidayStartDate,
		HolidayEndDate:   row.HolidayEndDate,
		CreatedAt:        row.CreatedAt,
		LastUpdated:      row.LastUpdated,
	}
	if err := row.Days.Unmarshal(&s.Days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal days: %w", err)
	}
	if err := row.Shifts.Unmarshal(&s.Shifts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shifts: %w", err)
	}
	return s, nil
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	row, err := toScheduleRow(schedule)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO schedules (` + scheduleColumns + `)
		VALUES (:id, :doctor_id, :doctor_name, :poly, :days, :shifts, :status, :holiday_reason,
			:holiday_start_date, :holiday_end_date, :created_at, :last_updated)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	var row scheduleRow
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, notFound(err, "failed to get schedule")
	}
	return row.toModel()
}

func (r *scheduleRepository) List(ctx context.Context) ([]*model.Schedule, error) {
	return r.selectSchedules(ctx, `SELECT `+scheduleColumns+` FROM schedules ORDER BY created_at`)
}

func (r *scheduleRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Schedule, error) {
	return r.selectSchedules(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE doctor_id = $1 ORDER BY created_at`, doctorID)
}

func (r *scheduleRepository) selectSchedules(ctx context.Context, query string, args ...interface{}) ([]*model.Schedule, error) {
	var rows []scheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	schedules := make([]*model.Schedule, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

// Update rewrites the whole record inside a transaction so the JSONB
// columns never land without their scalar fields.
func (r *scheduleRepository) Update(ctx context.Context, schedule *model.Schedule) error {
	row, err := toScheduleRow(schedule)
	if err != nil {
		return err
	}
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE schedules
			SET doctor_id = :doctor_id, doctor_name = :doctor_name, poly = :poly, days = :days,
				shifts = :shifts, status = :status, holiday_reason = :holiday_reason,
				holiday_start_date = :holiday_start_date, holiday_end_date = :holiday_end_date,
				last_updated = :last_updated
			WHERE id = :id`

		result, err := tx.NamedExecContext(ctx, query, row)
		if err != nil {
			return fmt.Errorf("failed to update schedule: %w", err)
		}
		return mustAffect(result, "schedule")
	})
}

func (r *scheduleRepository) UpdateHoliday(ctx context.Context, schedule *model.Schedule) error {
	query := `
		UPDATE schedules
		SET status = $1, holiday_reason = $2, holiday_start_date = $3, holiday_end_date = $4, last_updated = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		schedule.Status,
		schedule.HolidayReason,
		schedule.HolidayStartDate,
		schedule.HolidayEndDate,
		schedule.LastUpdated,
		schedule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule holiday: %w", err)
	}
	return mustAffect(result, "schedule")
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return mustAffect(result, "schedule")
}
