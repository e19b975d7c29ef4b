package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/memory"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
)

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newService() *Service {
	return NewService(memory.NewDoctorRepository(), func() time.Time { return fixedNow })
}

func TestCreateAndList(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	sari, err := svc.Create(ctx, &model.DoctorRequest{Name: "  dr. Sari ", Specialization: "Anak"})
	require.NoError(t, err)
	assert.Equal(t, "dr. Sari", sari.Name)
	assert.Empty(t, sari.Status)
	assert.Equal(t, fixedNow, sari.CreatedAt)

	_, err = svc.Create(ctx, &model.DoctorRequest{Name: "dr. Budi", Poly: "Gigi"})
	require.NoError(t, err)

	all, err := svc.List(ctx, model.DoctorFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bySpecialization, err := svc.List(ctx, model.DoctorFilter{Search: "gig"})
	require.NoError(t, err)
	require.Len(t, bySpecialization, 1)
	assert.Equal(t, "dr. Budi", bySpecialization[0].Name)

	byName, err := svc.List(ctx, model.DoctorFilter{Search: "SARI"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
}

func TestCreate_Validation(t *testing.T) {
	_, err := newService().Create(context.Background(), &model.DoctorRequest{Name: " "})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Nama dokter harus diisi", appErr.Message)
	assert.Equal(t, "Spesialisasi harus dipilih", appErr.Fields["specialization"])
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	d, err := svc.Create(ctx, &model.DoctorRequest{Name: "dr. Sari", Specialization: "Anak"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, d.ID, &model.DoctorRequest{Name: "dr. Sari, Sp.A", Specialization: "Anak"})
	require.NoError(t, err)
	assert.Equal(t, "dr. Sari, Sp.A", updated.Name)

	require.NoError(t, svc.Delete(ctx, d.ID))
	_, err = svc.Get(ctx, d.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
	assert.True(t, apperrors.IsCode(svc.Delete(ctx, uuid.New()), apperrors.ErrNotFound))
}
