package schedule

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
)

func validRequest(doctorID uuid.UUID) *model.ScheduleRequest {
	return &model.ScheduleRequest{
		DoctorID: doctorID.String(),
		Poly:     "Anak",
		Days:     []model.Weekday{model.Monday, model.Wednesday},
		Shifts: []model.Shift{
			{Name: "Pagi", StartTime: "08:00", EndTime: "12:00"},
			{Name: "Siang", StartTime: "13:00", EndTime: "17:00", MaxPatients: 10},
		},
		Status: model.ScheduleStatusActive,
	}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, apperrors.ErrValidation, appErr.Code)
	return appErr.Fields
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)
	doctor := env.addDoctor(t, "dr. Sari", "")

	sch, err := env.svc.Create(context.Background(), validRequest(doctor.ID))
	require.NoError(t, err)

	assert.Equal(t, "dr. Sari", sch.DoctorName)
	assert.Equal(t, fixedNow, sch.CreatedAt)
	require.Len(t, sch.Shifts, 2)
	assert.NotEmpty(t, sch.Shifts[0].ID)
	assert.Equal(t, model.DefaultMaxPatients, sch.Shifts[0].MaxPatients)
	assert.Equal(t, 10, sch.Shifts[1].MaxPatients)

	assert.Equal(t, model.DoctorStatusActive, env.getDoctor(t, doctor.ID).Status)
	notes := env.notifications(t)
	require.Len(t, notes, 1)
	assert.Equal(t, model.NotificationScheduleCreated, notes[0].Type)
}

func TestCreate_LegacyTimesBecomeOneShift(t *testing.T) {
	env := newTestEnv(t)
	doctor := env.addDoctor(t, "dr. Sari", "")

	req := &model.ScheduleRequest{
		DoctorID:  doctor.ID.String(),
		Poly:      "Umum",
		Days:      []model.Weekday{"Friday"},
		StartTime: "09:00",
		EndTime:   "11:00",
	}
	sch, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, sch.Shifts, 1)
	assert.Equal(t, model.LegacyShiftName, sch.Shifts[0].Name)
	assert.Equal(t, []model.Weekday{model.Friday}, sch.Days)
	assert.Equal(t, model.ScheduleStatusActive, sch.Status)
}

func TestCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	doctor := env.addDoctor(t, "dr. Sari", "")

	tests := []struct {
		name   string
		mutate func(*model.ScheduleRequest)
		field  string
		msg    string
	}{
		{"missing doctor", func(r *model.ScheduleRequest) { r.DoctorID = "" }, "doctor_id", "Pilih dokter"},
		{"unknown doctor", func(r *model.ScheduleRequest) { r.DoctorID = uuid.NewString() }, "doctor_id", "Dokter tidak ditemukan"},
		{"missing poly", func(r *model.ScheduleRequest) { r.Poly = " " }, "poly", "Poli wajib diisi"},
		{"no days", func(r *model.ScheduleRequest) { r.Days = nil }, "days", "Pilih minimal satu hari"},
		{"bad day", func(r *model.ScheduleRequest) { r.Days = []model.Weekday{"funday"} }, "days", "Hari tidak valid"},
		{"no shifts", func(r *model.ScheduleRequest) { r.Shifts = nil }, "shifts", "Tambahkan minimal satu shift"},
		{"shift name", func(r *model.ScheduleRequest) { r.Shifts[0].Name = "" }, "shifts[0].name", "Nama shift wajib diisi"},
		{"shift start", func(r *model.ScheduleRequest) { r.Shifts[1].StartTime = "" }, "shifts[1].start_time", "Jam mulai wajib diisi"},
		{"shift end", func(r *model.ScheduleRequest) { r.Shifts[0].EndTime = "" }, "shifts[0].end_time", "Jam selesai wajib diisi"},
		{"shift order", func(r *model.ScheduleRequest) { r.Shifts[0].EndTime = "07:00" }, "shifts[0].end_time", "Jam mulai harus lebih awal dari jam selesai"},
		{"overlap", func(r *model.ScheduleRequest) { r.Shifts[1].StartTime = "11:30" }, "shifts", "Waktu shift tidak boleh bertumpang tindih"},
		{"holiday status", func(r *model.ScheduleRequest) { r.Status = model.ScheduleStatusHoliday }, "status", "Status harus aktif atau tidak aktif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(doctor.ID)
			tt.mutate(req)
			_, err := env.svc.Create(context.Background(), req)
			assert.Equal(t, tt.msg, validationFields(t, err)[tt.field])
		})
	}

	t.Run("touching shifts do not overlap", func(t *testing.T) {
		req := validRequest(doctor.ID)
		req.Shifts[1].StartTime = "12:00"
		_, err := env.svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestUpdate_KeepsHolidayFields(t *testing.T) {
	env := newTestEnv(t)
	doctor := env.addDoctor(t, "dr. Sari", model.DoctorStatusActive)
	sch := env.addSchedule(t, doctor, func(s *model.Schedule) {
		s.HolidayReason = "Cuti"
		s.HolidayStartDate = "2024-03-20"
		s.HolidayEndDate = "2024-03-22"
	})

	req := validRequest(doctor.ID)
	req.Status = model.ScheduleStatusInactive
	updated, err := env.svc.Update(context.Background(), sch.ID, req)
	require.NoError(t, err)

	assert.Equal(t, model.ScheduleStatusInactive, updated.Status)
	assert.Equal(t, "Cuti", updated.HolidayReason)
	assert.Equal(t, sch.CreatedAt, env.getSchedule(t, sch.ID).CreatedAt)
	assert.Equal(t, model.DoctorStatusInactive, env.getDoctor(t, doctor.ID).Status)
	assert.Equal(t, model.NotificationScheduleUpdated, env.notifications(t)[0].Type)

	_, err = env.svc.Update(context.Background(), uuid.New(), req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestDelete_LastScheduleDeactivatesDoctor(t *testing.T) {
	env := newTestEnv(t)
	doctor := env.addDoctor(t, "dr. Sari", model.DoctorStatusActive)
	first := env.addSchedule(t, doctor, nil)
	second := env.addSchedule(t, doctor, nil)
	ctx := context.Background()

	require.NoError(t, env.svc.Delete(ctx, first.ID))
	assert.Equal(t, model.DoctorStatusActive, env.getDoctor(t, doctor.ID).Status)

	require.NoError(t, env.svc.Delete(ctx, second.ID))
	assert.Equal(t, model.DoctorStatusInactive, env.getDoctor(t, doctor.ID).Status)
	assert.Len(t, env.notifications(t), 2)

	assert.True(t, apperrors.IsCode(env.svc.Delete(ctx, second.ID), apperrors.ErrNotFound))
}

func TestList_RemovesOrphansAndFilters(t *testing.T) {
	env := newTestEnv(t)
	sari := env.addDoctor(t, "dr. Sari", model.DoctorStatusActive)
	budi := env.addDoctor(t, "dr. Budi", model.DoctorStatusActive)
	env.addSchedule(t, sari, nil)
	env.addSchedule(t, budi, func(s *model.Schedule) {
		s.Poly = "Gigi"
		s.Status = model.ScheduleStatusInactive
	})
	expired := env.addSchedule(t, budi, func(s *model.Schedule) {
		s.Poly = "Umum"
		s.Status = model.ScheduleStatusHoliday
		s.HolidayReason = "Cuti"
		s.HolidayStartDate = "2024-03-01"
		s.HolidayEndDate = "2024-03-05"
	})
	orphan := env.addSchedule(t, &model.Doctor{ID: uuid.New(), Name: "dr. Lama"}, nil)

	list, err := env.svc.List(context.Background(), model.ScheduleFilter{})
	require.NoError(t, err)

	assert.Len(t, list.Schedules, 3)
	assert.Equal(t, model.ScheduleSummary{Total: 3, Active: 2, Inactive: 1}, list.Summary)
	assert.Equal(t, []string{"Anak", "Gigi", "Umum"}, list.PolyCategories)
	_, err = env.store.Schedules.Get(context.Background(), orphan.ID)
	assert.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.OrphanedSchedules))

	// the listing pass ended the expired holiday
	assert.Equal(t, model.ScheduleStatusActive, env.getSchedule(t, expired.ID).Status)

	list, err = env.svc.List(context.Background(), model.ScheduleFilter{Search: "BUDI", Status: "inactive"})
	require.NoError(t, err)
	require.Len(t, list.Schedules, 1)
	assert.Equal(t, "Gigi", list.Schedules[0].Poly)

	list, err = env.svc.List(context.Background(), model.ScheduleFilter{Poly: "Anak"})
	require.NoError(t, err)
	require.Len(t, list.Schedules, 1)
	assert.Equal(t, "dr. Sari", list.Schedules[0].DoctorName)
}

func TestList_RemainingHolidayDays(t *testing.T) {
	env := newTestEnv(t)
	doctor := env.addDoctor(t, "dr. Sari", model.DoctorStatusHoliday)
	env.addSchedule(t, doctor, func(s *model.Schedule) {
		s.Status = model.ScheduleStatusHoliday
		s.HolidayReason = "Cuti"
		s.HolidayStartDate = "2024-03-09"
		s.HolidayEndDate = "2024-03-13"
	})

	list, err := env.svc.List(context.Background(), model.ScheduleFilter{})
	require.NoError(t, err)
	require.Len(t, list.Schedules, 1)
	assert.Equal(t, 3, list.Schedules[0].RemainingHolidayDays)
}
