// Package export renders list screens as xlsx workbooks.
package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/metrics"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/storage"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	patientSheet  = "Data Pasien"
	followUpSheet = "Jadwal Kontrol"
	headerFill    = "4F46E5"
	empty         = "-"
)

var patientColumns = []column{
	{"No", 5}, {"ID Registrasi", 20}, {"Nomor Antrian", 12}, {"Nama Pasien", 20},
	{"NIK", 20}, {"Jenis Kelamin", 15}, {"No. Telepon", 15}, {"Alamat", 30},
	{"Layanan", 15}, {"Spesialisasi", 20}, {"Dokter", 20}, {"Tanggal Periksa", 15},
	{"Estimasi Waktu", 12}, {"Hari", 10}, {"Status", 15}, {"Status Antrian", 15},
	{"Keluhan", 30}, {"Sumber Booking", 15}, {"Tanggal Daftar", 20},
}

var followUpColumns = []column{
	{"No", 5}, {"ID Jadwal", 20}, {"Nama Pasien", 25}, {"Dokter", 25},
	{"Tanggal Kontrol", 15}, {"Waktu Kontrol", 12}, {"Status", 15}, {"Catatan", 30},
	{"Tanggal Dibuat", 15}, {"Terakhir Update", 15},
}

type column struct {
	title string
	width float64
}

// File is a rendered workbook ready to stream.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	// ArchiveKey is set when a copy was archived.
	ArchiveKey string
}

type Options struct {
	// Archiver, when set, receives a copy of every export.
	Archiver storage.Archiver
	Metrics  *metrics.Metrics
	Logger   *logger.Logger
	Now      func() time.Time
}

type Service struct {
	archiver storage.Archiver
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time
}

func NewService(opts Options) *Service {
	s := &Service{
		archiver: opts.Archiver,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		now:      opts.Now,
	}
	if s.metrics == nil {
		s.metrics = metrics.New("dashboard")
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Patients renders the filtered patient list. The filter only shapes the
// filename; patients must already be filtered.
func (s *Service) Patients(ctx context.Context, patients []*model.Patient, filter model.PatientFilter) (*File, error) {
	now := s.now()
	rows := make([][]interface{}, 0, len(patients))
	for i, p := range patients {
		day := empty
		if visit, ok := p.VisitDate(now.Location()); ok {
			day = model.IndonesianDayName(visit)
		}
		queue := interface{}(empty)
		if p.QueueNumber != nil {
			queue = *p.QueueNumber
		}
		registered := empty
		if p.TanggalDaftar != nil {
			registered = p.TanggalDaftar.In(now.Location()).Format("2/1/2006 15:04")
		}
		rows = append(rows, []interface{}{
			i + 1,
			orEmpty(p.ID.String()),
			queue,
			orEmpty(p.Nama),
			orEmpty(p.NIK),
			orEmpty(p.JenisKelamin),
			orEmpty(p.Telepon),
			orEmpty(p.Alamat),
			orEmpty(p.Layanan),
			orEmpty(p.SpesialisasiDokter),
			orEmpty(p.Dokter),
			orEmpty(p.Tanggal),
			orEmpty(p.EstimatedTime),
			day,
			orEmpty(p.Status.Label()),
			orEmpty(string(p.QueueStatus)),
			orEmpty(p.Keluhan),
			orEmpty(p.BookingSource),
			registered,
		})
	}

	data, err := render(patientSheet, patientColumns, rows)
	if err != nil {
		return nil, apperrors.Internal("Gagal membuat file export", err)
	}
	return s.finish(ctx, "patients", PatientFilename(filter, now), data), nil
}

// FollowUps renders the filtered follow-up list.
func (s *Service) FollowUps(ctx context.Context, followUps []*model.FollowUp) (*File, error) {
	now := s.now()
	rows := make([][]interface{}, 0, len(followUps))
	for i, f := range followUps {
		updated := empty
		if f.UpdatedAt != nil {
			updated = shortDate(*f.UpdatedAt, now.Location())
		}
		created := empty
		if !f.CreatedAt.IsZero() {
			created = shortDate(f.CreatedAt, now.Location())
		}
		rows = append(rows, []interface{}{
			i + 1,
			f.ID.String(),
			f.PatientName,
			f.DoctorName,
			f.AppointmentDate,
			f.AppointmentTime,
			f.Status.Label(),
			orEmpty(f.Notes),
			created,
			updated,
		})
	}

	data, err := render(followUpSheet, followUpColumns, rows)
	if err != nil {
		return nil, apperrors.Internal("Gagal membuat file export", err)
	}
	name := fmt.Sprintf("Jadwal_Kontrol_%s.xlsx", now.Format(model.DateLayout))
	return s.finish(ctx, "follow_ups", name, data), nil
}

// finish archives a copy when configured. Archive failures are logged and
// never fail the download.
func (s *Service) finish(ctx context.Context, kind, name string, data []byte) *File {
	s.metrics.Exports.WithLabelValues(kind).Inc()
	file := &File{Name: name, ContentType: ContentType, Data: data}
	if s.archiver == nil {
		return file
	}
	key, err := s.archiver.Archive(ctx, name, ContentType, data)
	if err != nil {
		s.log.Error(err, "failed to archive export", "kind", kind, "file", name)
		return file
	}
	file.ArchiveKey = key
	s.log.Info("export archived", "kind", kind, "key", key)
	return file
}

// PatientFilename names the patient workbook after the active date filter.
func PatientFilename(filter model.PatientFilter, now time.Time) string {
	var b strings.Builder
	b.WriteString("Data_Pasien_")
	switch {
	case filter.DateFilter == model.DateFilterCustomDate && filter.DateFrom != "" && filter.DateTo != "":
		b.WriteString(filter.DateFrom + "_sampai_" + filter.DateTo)
	case filter.DateFilter == model.DateFilterCustomMonth && monthLabel(filter.Month) != "":
		b.WriteString(monthLabel(filter.Month))
	case filter.DateFilter == model.DateFilterToday:
		b.WriteString("Hari_Ini_" + now.Format(model.DateLayout))
	case filter.DateFilter == model.DateFilterThisWeek:
		b.WriteString("Minggu_Ini")
	case filter.DateFilter == model.DateFilterThisMonth:
		b.WriteString("Bulan_Ini")
	default:
		b.WriteString("Semua_Data_" + now.Format(model.DateLayout))
	}
	b.WriteString(".xlsx")
	return b.String()
}

// monthLabel turns yyyy-mm into Maret_2024.
func monthLabel(month string) string {
	year, mm, ok := strings.Cut(strings.TrimSpace(month), "-")
	if !ok {
		return ""
	}
	n, err := strconv.Atoi(mm)
	if err != nil {
		return ""
	}
	name := model.IndonesianMonthName(time.Month(n))
	if name == "" || year == "" {
		return ""
	}
	return name + "_" + year
}

func render(sheet string, columns []column, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return nil, fmt.Errorf("failed to create cell style: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.title
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	if len(rows) > 0 {
		last := fmt.Sprintf("%s%d", lastCol, len(rows)+1)
		if err := f.SetCellStyle(sheet, "A2", last, cellStyle); err != nil {
			return nil, fmt.Errorf("failed to style cells: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func orEmpty(v string) string {
	if strings.TrimSpace(v) == "" {
		return empty
	}
	return v
}

func shortDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2/1/2006")
}
