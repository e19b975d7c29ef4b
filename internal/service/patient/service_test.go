package patient

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

func queue(n int) *int { return &n }

func registered(d int) *time.Time {
	t := time.Date(2024, 3, d, 8, 0, 0, 0, wib)
	return &t
}

type fixture struct {
	svc  *Service
	repo repository.PatientRepository
	ids  map[string]uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewPatientRepository()
	f := &fixture{
		svc:  NewService(repo, func() time.Time { return fixedNow }),
		repo: repo,
		ids:  map[string]uuid.UUID{},
	}
	add := func(p model.Patient) {
		p.ID = uuid.New()
		f.ids[p.Nama] = p.ID
		require.NoError(t, repo.Create(context.Background(), &p))
	}
	add(model.Patient{Nama: "Ani", NIK: "3201001", Telepon: "081200000811", Layanan: "Poli Anak",
		Tanggal: "13/03/2024", Status: model.PatientStatusScheduled, QueueNumber: queue(2), TanggalDaftar: registered(1)})
	add(model.Patient{Nama: "Budi", NIK: "3201002", Telepon: "081200000812", Layanan: "Poli Gigi",
		Tanggal: "2024-03-13", Status: "Confirmed", QueueNumber: queue(1), TanggalDaftar: registered(2)})
	add(model.Patient{Nama: "Citra", NIK: "3201003", Telepon: "081200000813", Layanan: "Poli Anak",
		Tanggal: "2024-03-12", Status: model.PatientStatusCompleted, TanggalDaftar: registered(3)})
	add(model.Patient{Nama: "Dewi", NIK: "3201004", Telepon: "081200000814", Layanan: "Poli Kandungan",
		Tanggal: "2024-02-20", Status: model.PatientStatusCancelled, TanggalDaftar: registered(4)})
	add(model.Patient{Nama: "Eka", NIK: "3201005", Telepon: "081200000815", Layanan: "Poli Anak",
		Tanggal: "kemarin", Status: model.PatientStatusScheduled})
	return f
}

func names(views []model.PatientView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Nama)
	}
	return out
}

func TestList_SortsByVisitDateThenQueue(t *testing.T) {
	f := setup(t)
	views, err := f.svc.List(context.Background(), model.PatientFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dewi", "Citra", "Budi", "Ani", "Eka"}, names(views))
	assert.Equal(t, "Terjadwal", views[3].StatusLabel)
}

func TestList_Filters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter model.PatientFilter
		want   []string
	}{
		{"search name", model.PatientFilter{Search: "ani"}, []string{"Ani"}},
		{"search nik", model.PatientFilter{Search: "3201003"}, []string{"Citra"}},
		{"search phone", model.PatientFilter{Search: "081200000814"}, []string{"Dewi"}},
		{"status label", model.PatientFilter{Status: "Dalam Antrian"}, []string{"Budi"}},
		{"status code matches legacy record", model.PatientFilter{Status: "in_queue"}, []string{"Budi"}},
		{"layanan", model.PatientFilter{Layanan: "Poli Anak"}, []string{"Citra", "Ani", "Eka"}},
		{"today across formats", model.PatientFilter{DateFilter: model.DateFilterToday}, []string{"Budi", "Ani"}},
		{"yesterday", model.PatientFilter{DateFilter: model.DateFilterYesterday}, []string{"Citra"}},
		{"this week", model.PatientFilter{DateFilter: model.DateFilterThisWeek}, []string{"Citra", "Budi", "Ani"}},
		{"custom month", model.PatientFilter{DateFilter: model.DateFilterCustomMonth, Month: "2024-02"}, []string{"Dewi"}},
		{"custom date", model.PatientFilter{DateFilter: model.DateFilterCustomDate, DateFrom: "2024-02-01", DateTo: "2024-03-12"}, []string{"Dewi", "Citra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := f.svc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(views))
		})
	}
}

func TestList_RejectsBadFilters(t *testing.T) {
	f := setup(t)
	_, err := f.svc.List(context.Background(), model.PatientFilter{Status: "lost"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))

	_, err = f.svc.List(context.Background(), model.PatientFilter{DateFilter: model.DateFilterCustomMonth, Month: "maret"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestUpdateStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	view, err := f.svc.UpdateStatus(ctx, f.ids["Ani"], "Selesai")
	require.NoError(t, err)
	assert.Equal(t, model.PatientStatusCompleted, view.Status)
	assert.Equal(t, "Selesai", view.StatusLabel)
	require.NotNil(t, view.UpdatedAt)
	assert.True(t, fixedNow.Equal(*view.UpdatedAt))

	_, err = f.svc.UpdateStatus(ctx, f.ids["Ani"], "gone")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))

	_, err = f.svc.UpdateStatus(ctx, uuid.New(), "completed")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestServices(t *testing.T) {
	services, err := setup(t).svc.Services(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Poli Anak", "Poli Gigi", "Poli Kandungan"}, services)
}

func TestByDate(t *testing.T) {
	groups, err := setup(t).svc.ByDate(context.Background(), model.PatientFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 4)

	assert.Equal(t, "2024-02-20", groups[0].Date)
	assert.Equal(t, "Selasa", groups[0].Day)
	assert.Equal(t, "2024-03-13", groups[2].Date)
	assert.Equal(t, "Rabu", groups[2].Day)
	assert.Equal(t, []string{"Budi", "Ani"}, names(groups[2].Patients))
	assert.Equal(t, "kemarin", groups[3].Date)
	assert.Equal(t, "-", groups[3].Day)
}

func TestCountTodayAndRecent(t *testing.T) {
	f := setup(t)
	total, today, err := f.svc.CountToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, 2, today)

	recent, err := f.svc.Recent(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dewi", "Citra", "Budi"}, names(recent))
}
