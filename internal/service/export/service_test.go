package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/storage"
)

var fixedNow = time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestPatients(t *testing.T) {
	archive := storage.NewMemoryArchiver()
	svc := NewService(Options{Archiver: archive, Now: func() time.Time { return fixedNow }})

	q := 3
	registered := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	patients := []*model.Patient{
		{
			ID: uuid.New(), Nama: "Ani", NIK: "3201", JenisKelamin: "Perempuan", Telepon: "0811",
			Alamat: "Jl. Melati", Layanan: "Poli Anak", SpesialisasiDokter: "Anak", Dokter: "dr. Sari",
			Tanggal: "13/03/2024", EstimatedTime: "09:00", Status: model.PatientStatusInQueue,
			QueueStatus: model.QueueStatusWaiting, QueueNumber: &q, Keluhan: "Demam",
			BookingSource: "whatsapp", TanggalDaftar: &registered,
		},
		{ID: uuid.New(), Nama: "Budi", Tanggal: "2024-03-14"},
	}

	file, err := svc.Patients(context.Background(), patients, model.PatientFilter{DateFilter: model.DateFilterThisWeek})
	require.NoError(t, err)
	assert.Equal(t, "Data_Pasien_Minggu_Ini.xlsx", file.Name)
	assert.Equal(t, ContentType, file.ContentType)
	assert.Equal(t, file.Name, file.ArchiveKey)

	archived, ok := archive.Get(file.Name)
	require.True(t, ok)
	assert.Equal(t, file.Data, archived)

	wb := open(t, file.Data)
	assert.Equal(t, []string{"Data Pasien"}, wb.GetSheetList())

	rows, err := wb.GetRows("Data Pasien")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 19)
	assert.Equal(t, "No", rows[0][0])
	assert.Equal(t, "Tanggal Daftar", rows[0][18])

	ani := rows[1]
	assert.Equal(t, "1", ani[0])
	assert.Equal(t, "3", ani[2])
	assert.Equal(t, "Ani", ani[3])
	assert.Equal(t, "Rabu", ani[13])
	assert.Equal(t, "Dalam Antrian", ani[14])
	assert.Equal(t, "1/3/2024 08:30", ani[18])

	budi := rows[2]
	assert.Equal(t, "-", budi[2])
	assert.Equal(t, "-", budi[4])
	assert.Equal(t, "Kamis", budi[13])
	assert.Equal(t, "-", budi[14])

	width, err := wb.GetColWidth("Data Pasien", "H")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)

	style, err := wb.GetCellStyle("Data Pasien", "A1")
	require.NoError(t, err)
	header, err := wb.GetStyle(style)
	require.NoError(t, err)
	require.NotNil(t, header.Font)
	assert.True(t, header.Font.Bold)
	assert.Len(t, header.Border, 4)
}

func TestFollowUps(t *testing.T) {
	svc := NewService(Options{Now: func() time.Time { return fixedNow }})
	updated := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	list := []*model.FollowUp{
		{ID: uuid.New(), PatientName: "Ani", DoctorName: "dr. Sari", AppointmentDate: "2024-03-14",
			AppointmentTime: "09:00", CreatedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), UpdatedAt: &updated},
		{ID: uuid.New(), PatientName: "Budi", DoctorName: "dr. Sari", AppointmentDate: "2024-03-15",
			AppointmentTime: "10:00", Status: model.FollowUpStatusCompleted, Notes: "kontrol luka",
			CreatedAt: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)},
	}

	file, err := svc.FollowUps(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, "Jadwal_Kontrol_2024-03-13.xlsx", file.Name)
	assert.Empty(t, file.ArchiveKey)

	rows, err := open(t, file.Data).GetRows("Jadwal Kontrol")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", list[0].ID.String(), "Ani", "dr. Sari", "2024-03-14", "09:00",
		"Terjadwal", "-", "2/3/2024", "12/3/2024"}, rows[1])
	assert.Equal(t, "Selesai", rows[2][6])
	assert.Equal(t, "kontrol luka", rows[2][7])
	assert.Equal(t, "-", rows[2][9])
}

func TestPatientFilename(t *testing.T) {
	tests := []struct {
		filter model.PatientFilter
		want   string
	}{
		{model.PatientFilter{DateFilter: model.DateFilterCustomDate, DateFrom: "2024-03-01", DateTo: "2024-03-05"}, "Data_Pasien_2024-03-01_sampai_2024-03-05.xlsx"},
		{model.PatientFilter{DateFilter: model.DateFilterCustomMonth, Month: "2024-03"}, "Data_Pasien_Maret_2024.xlsx"},
		{model.PatientFilter{DateFilter: model.DateFilterToday}, "Data_Pasien_Hari_Ini_2024-03-13.xlsx"},
		{model.PatientFilter{DateFilter: model.DateFilterThisMonth}, "Data_Pasien_Bulan_Ini.xlsx"},
		{model.PatientFilter{DateFilter: model.DateFilterCustomDate, DateFrom: "2024-03-01"}, "Data_Pasien_Semua_Data_2024-03-13.xlsx"},
		{model.PatientFilter{}, "Data_Pasien_Semua_Data_2024-03-13.xlsx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PatientFilename(tt.filter, fixedNow))
	}
}
