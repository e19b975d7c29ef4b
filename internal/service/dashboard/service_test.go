package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/memory"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/patient"
)

func TestStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	store := memory.NewStore()

	for i := 0; i < 10; i++ {
		registered := now.Add(-time.Duration(i) * time.Hour)
		tanggal := "2024-03-20"
		if i%3 == 0 {
			tanggal = "13/03/2024"
		}
		require.NoError(t, store.Patients.Create(ctx, &model.Patient{
			ID:            uuid.New(),
			Nama:          fmt.Sprintf("Pasien %d", i),
			Tanggal:       tanggal,
			TanggalDaftar: &registered,
		}))
	}
	for _, status := range []model.ScheduleStatus{model.ScheduleStatusActive, model.ScheduleStatusHoliday, model.ScheduleStatusInactive} {
		require.NoError(t, store.Schedules.Create(ctx, &model.Schedule{ID: uuid.New(), Status: status, CreatedAt: now}))
	}
	require.NoError(t, store.Doctors.Create(ctx, &model.Doctor{ID: uuid.New(), Name: "dr. Sari"}))

	svc := NewService(patient.NewService(store.Patients, func() time.Time { return now }), store.Doctors, store.Schedules)
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalPatients)
	assert.Equal(t, 4, stats.TodayPatients)
	assert.Equal(t, 1, stats.TotalDoctors)
	assert.Equal(t, 2, stats.ActiveSchedules)
	require.Len(t, stats.RecentPatients, 8)
	assert.Equal(t, "Pasien 0", stats.RecentPatients[0].Nama)
	assert.Equal(t, "Pasien 7", stats.RecentPatients[7].Nama)
}
