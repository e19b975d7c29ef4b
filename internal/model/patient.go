package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PatientStatus is the canonical registration status code.
type PatientStatus string

const (
	PatientStatusScheduled PatientStatus = "scheduled"
	PatientStatusInQueue   PatientStatus = "in_queue"
	PatientStatusCompleted PatientStatus = "completed"
	PatientStatusCancelled PatientStatus = "cancelled"
)

// PatientStatuses lists the statuses in display order.
var PatientStatuses = []PatientStatus{
	PatientStatusScheduled,
	PatientStatusInQueue,
	PatientStatusCompleted,
	PatientStatusCancelled,
}

var patientStatusLabels = map[PatientStatus]string{
	PatientStatusScheduled: "Terjadwal",
	PatientStatusInQueue:   "Dalam Antrian",
	PatientStatusCompleted: "Selesai",
	PatientStatusCancelled: "Dibatalkan",
}

// booking channels still write the English vocabulary
var patientStatusAliases = map[string]PatientStatus{
	"pending":   PatientStatusScheduled,
	"confirmed": PatientStatusInQueue,
	"completed": PatientStatusCompleted,
	"cancelled": PatientStatusCancelled,
}

// Label returns the Indonesian label shown to operators.
func (s PatientStatus) Label() string {
	if l, ok := patientStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParsePatientStatus maps a code, an Indonesian label or a legacy English
// status onto the canonical code.
func ParsePatientStatus(value string) (PatientStatus, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", false
	}
	for code, label := range patientStatusLabels {
		if v == string(code) || v == strings.ToLower(label) {
			return code, true
		}
	}
	if code, ok := patientStatusAliases[v]; ok {
		return code, true
	}
	return "", false
}

// QueueStatus tracks the patient's position in the day's queue.
type QueueStatus string

const (
	QueueStatusWaiting    QueueStatus = "waiting"
	QueueStatusInProgress QueueStatus = "in_progress"
	QueueStatusCompleted  QueueStatus = "completed"
	QueueStatusSkipped    QueueStatus = "skipped"
)

// Patient is a registration written by the booking channel.
type Patient struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	Nama               string        `json:"nama" db:"nama"`
	NIK                string        `json:"nik" db:"nik"`
	Telepon            string        `json:"telepon" db:"telepon"`
	JenisKelamin       string        `json:"jenis_kelamin" db:"jenis_kelamin"`
	Alamat             string        `json:"alamat" db:"alamat"`
	Layanan            string        `json:"layanan" db:"layanan"`
	SpesialisasiDokter string        `json:"spesialisasi_dokter,omitempty" db:"spesialisasi_dokter"`
	Dokter             string        `json:"dokter,omitempty" db:"dokter"`
	Tanggal            string        `json:"tanggal" db:"tanggal"`
	EstimatedTime      string        `json:"estimated_time,omitempty" db:"estimated_time"`
	Status             PatientStatus `json:"status" db:"status"`
	QueueStatus        QueueStatus   `json:"queue_status,omitempty" db:"queue_status"`
	QueueNumber        *int          `json:"queue_number,omitempty" db:"queue_number"`
	Keluhan            string        `json:"keluhan,omitempty" db:"keluhan"`
	BookingSource      string        `json:"booking_source,omitempty" db:"booking_source"`
	TanggalDaftar      *time.Time    `json:"tanggal_daftar,omitempty" db:"tanggal_daftar"`
	UpdatedAt          *time.Time    `json:"updated_at,omitempty" db:"updated_at"`
}

// VisitDate parses Tanggal, which arrives as dd/mm/yyyy or yyyy-mm-dd.
func (p *Patient) VisitDate(loc *time.Location) (time.Time, bool) {
	t, err := ParseDate(p.Tanggal, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PatientView is the API shape of a patient with its localized status.
type PatientView struct {
	*Patient
	StatusLabel string `json:"status_label"`
}

func NewPatientView(p *Patient) PatientView {
	return PatientView{Patient: p, StatusLabel: p.Status.Label()}
}

// PatientFilter selects patients for the list and export screens.
type PatientFilter struct {
	Search     string          `form:"search"`
	Status     string          `form:"status"`
	Layanan    string          `form:"layanan"`
	DateFilter DateRangeFilter `form:"date_filter"`
	DateFrom   string          `form:"date_from"`
	DateTo     string          `form:"date_to"`
	Month      string          `form:"month"`
}

type UpdatePatientStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PatientDateGroup holds the patients visiting on one date.
type PatientDateGroup struct {
	Date     string        `json:"date"`
	Day      string        `json:"day"`
	Patients []PatientView `json:"patients"`
}
