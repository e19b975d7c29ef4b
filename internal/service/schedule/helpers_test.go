package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/memory"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/notification"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/metrics"
)

var wib = time.FixedZone("WIB", 7*3600)

// Sunday 10 March 2024, 10:00 WIB
var fixedNow = time.Date(2024, 3, 10, 10, 0, 0, 0, wib)

type testEnv struct {
	store   *repository.Store
	svc     *Service
	metrics *metrics.Metrics
}

// withClock returns a service over the same store whose clock reads now.
func (e *testEnv) withClock(now time.Time) *Service {
	clock := func() time.Time { return now }
	notifier := notification.NewService(e.store.Notifications, notification.Options{Metrics: e.metrics, Now: clock})
	return NewService(e.store.Schedules, e.store.Doctors, notifier, Options{
		Metrics:  e.metrics,
		Now:      clock,
		Location: wib,
	})
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	m := metrics.New("test")
	clock := func() time.Time { return fixedNow }
	notifier := notification.NewService(store.Notifications, notification.Options{Metrics: m, Now: clock})
	svc := NewService(store.Schedules, store.Doctors, notifier, Options{
		Metrics:  m,
		Now:      clock,
		Location: wib,
	})
	return &testEnv{store: store, svc: svc, metrics: m}
}

func (e *testEnv) addDoctor(t *testing.T, name string, status model.DoctorStatus) *model.Doctor {
	t.Helper()
	d := &model.Doctor{
		ID:             uuid.New(),
		Name:           name,
		Specialization: "Anak",
		Status:         status,
		CreatedAt:      fixedNow,
		LastUpdated:    fixedNow,
	}
	require.NoError(t, e.store.Doctors.Create(context.Background(), d))
	return d
}

func (e *testEnv) addSchedule(t *testing.T, doctor *model.Doctor, mutate func(*model.Schedule)) *model.Schedule {
	t.Helper()
	s := &model.Schedule{
		ID:         uuid.New(),
		DoctorID:   doctor.ID,
		DoctorName: doctor.Name,
		Poly:       "Anak",
		Days:       []model.Weekday{model.Monday},
		Shifts:     []model.Shift{{ID: "s1", Name: "Pagi", StartTime: "08:00", EndTime: "12:00", MaxPatients: 20}},
		Status:     model.ScheduleStatusActive,
		CreatedAt:  fixedNow.Add(-24 * time.Hour),
	}
	if mutate != nil {
		mutate(s)
	}
	require.NoError(t, e.store.Schedules.Create(context.Background(), s))
	return s
}

func (e *testEnv) getSchedule(t *testing.T, id uuid.UUID) *model.Schedule {
	t.Helper()
	s, err := e.store.Schedules.Get(context.Background(), id)
	require.NoError(t, err)
	return s
}

func (e *testEnv) getDoctor(t *testing.T, id uuid.UUID) *model.Doctor {
	t.Helper()
	d, err := e.store.Doctors.Get(context.Background(), id)
	require.NoError(t, err)
	return d
}

func (e *testEnv) notifications(t *testing.T) []*model.Notification {
	t.Helper()
	n, err := e.store.Notifications.List(context.Background(), model.NotificationFilter{})
	require.NoError(t, err)
	return n
}
