package followup

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/memory"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
)

var (
	wib = time.FixedZone("WIB", 7*3600)
	// Wednesday
	fixedNow = time.Date(2024, 3, 13, 10, 0, 0, 0, wib)
)

type fixture struct {
	svc       *Service
	followUps repository.FollowUpRepository
	patient   *model.Patient
}

func setup(t *testing.T) *fixture {
	t.Helper()
	patients := memory.NewPatientRepository()
	followUps := memory.NewFollowUpRepository()
	p := &model.Patient{ID: uuid.New(), Nama: "Ani", Dokter: "dr. Sari", Tanggal: "2024-03-13"}
	require.NoError(t, patients.Create(context.Background(), p))
	return &fixture{
		svc:       NewService(followUps, patients, func() time.Time { return fixedNow }),
		followUps: followUps,
		patient:   p,
	}
}

func (f *fixture) add(t *testing.T, name, date, clock string, status model.FollowUpStatus) *model.FollowUp {
	t.Helper()
	fu := &model.FollowUp{
		ID:              uuid.New(),
		PatientName:     name,
		DoctorName:      "dr. Sari",
		AppointmentDate: date,
		AppointmentTime: clock,
		Status:          status,
		CreatedAt:       fixedNow,
	}
	require.NoError(t, f.followUps.Create(context.Background(), fu))
	return fu
}

func patientNames(list []*model.FollowUp) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		out = append(out, f.PatientName)
	}
	return out
}

func TestCreateFromPatient(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.CreateFromPatient(ctx, f.patient.ID, &model.CreateFollowUpRequest{
		AppointmentDate: "2024-03-14",
		AppointmentTime: "09:30",
		Notes:           " cek luka ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ani", created.PatientName)
	assert.Equal(t, "dr. Sari", created.DoctorName)
	assert.Equal(t, model.FollowUpStatusScheduled, created.Status)
	assert.Equal(t, "cek luka", created.Notes)
	assert.Equal(t, fixedNow, created.CreatedAt)

	stored, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, f.patient.ID, stored.PatientID)
}

func TestCreateFromPatient_Rejects(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateFromPatient(ctx, f.patient.ID, &model.CreateFollowUpRequest{AppointmentDate: "2024-03-13", AppointmentTime: "23:00"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, "Tanggal kontrol paling cepat besok", appErr.Message)

	_, err = f.svc.CreateFromPatient(ctx, f.patient.ID, &model.CreateFollowUpRequest{AppointmentDate: "2024-03-20", AppointmentTime: "9:30"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))

	_, err = f.svc.CreateFromPatient(ctx, f.patient.ID, &model.CreateFollowUpRequest{AppointmentDate: "", AppointmentTime: "09:30"})
	appErr, _ = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Tanggal dan waktu kontrol harus diisi", appErr.Message)

	_, err = f.svc.CreateFromPatient(ctx, uuid.New(), &model.CreateFollowUpRequest{AppointmentDate: "2024-03-20", AppointmentTime: "09:30"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestList_FiltersAndOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.add(t, "Dina", "2024-03-14", "10:00", model.FollowUpStatusScheduled)
	f.add(t, "Cahya", "2024-03-14", "08:00", model.FollowUpStatusScheduled)
	f.add(t, "Budi", "2024-03-13", "13:00", "")
	f.add(t, "Eko", "2024-03-18", "09:00", model.FollowUpStatusCancelled)
	f.add(t, "Fajar", "2024-03-05", "09:00", model.FollowUpStatusCompleted)

	tests := []struct {
		name   string
		filter model.FollowUpFilter
		want   []string
	}{
		{"all", model.FollowUpFilter{}, []string{"Fajar", "Budi", "Cahya", "Dina", "Eko"}},
		{"today", model.FollowUpFilter{DateFilter: model.DateFilterToday}, []string{"Budi"}},
		{"tomorrow", model.FollowUpFilter{DateFilter: model.DateFilterTomorrow}, []string{"Cahya", "Dina"}},
		{"this week", model.FollowUpFilter{DateFilter: model.DateFilterThisWeek}, []string{"Budi", "Cahya", "Dina"}},
		{"custom", model.FollowUpFilter{DateFilter: model.DateFilterCustom, DateFrom: "2024-03-14", DateTo: "2024-03-31"}, []string{"Cahya", "Dina", "Eko"}},
		{"scheduled includes empty status", model.FollowUpFilter{Status: "scheduled"}, []string{"Budi", "Cahya", "Dina"}},
		{"completed", model.FollowUpFilter{Status: "completed"}, []string{"Fajar"}},
		{"search", model.FollowUpFilter{Search: "CAH"}, []string{"Cahya"}},
		{"search doctor", model.FollowUpFilter{Search: "sari"}, []string{"Fajar", "Budi", "Cahya", "Dina", "Eko"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := f.svc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, patientNames(list))
		})
	}
}

func TestSummary(t *testing.T) {
	f := setup(t)
	f.add(t, "Budi", "2024-03-13", "13:00", "")
	f.add(t, "Cahya", "2024-03-13", "08:00", model.FollowUpStatusCompleted)
	f.add(t, "Dina", "2024-03-20", "10:00", model.FollowUpStatusScheduled)
	f.add(t, "Eko", "2024-03-21", "10:00", model.FollowUpStatusScheduled)
	f.add(t, "Fajar", "2024-03-12", "10:00", model.FollowUpStatusScheduled)

	summary, err := f.svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 1, summary.Today)
	assert.Equal(t, 2, summary.UpcomingWeek)
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	fu := f.add(t, "Budi", "2024-03-14", "09:00", model.FollowUpStatusScheduled)

	updated, err := f.svc.Update(ctx, fu.ID, &model.UpdateFollowUpRequest{
		AppointmentDate: "2024-03-15",
		AppointmentTime: "11:00",
		Notes:           "bawa hasil lab",
		Status:          model.FollowUpStatusRescheduled,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", updated.AppointmentDate)
	assert.Equal(t, model.FollowUpStatusRescheduled, updated.Status)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, fixedNow, *updated.UpdatedAt)

	// earlier today is in the past
	_, err = f.svc.Update(ctx, fu.ID, &model.UpdateFollowUpRequest{AppointmentDate: "2024-03-13", AppointmentTime: "09:00"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Jadwal kontrol tidak boleh di masa lalu", appErr.Message)

	done, err := f.svc.Update(ctx, fu.ID, &model.UpdateFollowUpRequest{
		AppointmentDate: "2024-03-13",
		AppointmentTime: "09:00",
		Status:          model.FollowUpStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, model.FollowUpStatusCompleted, done.Status)

	_, err = f.svc.Update(ctx, fu.ID, &model.UpdateFollowUpRequest{AppointmentDate: "2024-03-20"})
	appErr, _ = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "Tanggal dan waktu kontrol harus diisi", appErr.Message)

	_, err = f.svc.Update(ctx, uuid.New(), &model.UpdateFollowUpRequest{AppointmentDate: "2024-03-20", AppointmentTime: "10:00"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestUpdateStatusAndDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	fu := f.add(t, "Budi", "2024-03-14", "09:00", model.FollowUpStatusScheduled)

	updated, err := f.svc.UpdateStatus(ctx, fu.ID, model.FollowUpStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.FollowUpStatusCancelled, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, fu.ID, "lost")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))

	require.NoError(t, f.svc.Delete(ctx, fu.ID))
	assert.True(t, apperrors.IsCode(f.svc.Delete(ctx, fu.ID), apperrors.ErrNotFound))
}
