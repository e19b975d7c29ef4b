package model

import (
	"time"

	"github.com/google/uuid"
)

// DoctorStatus mirrors the status of the doctor's schedule. Records that
// predate the schedule screen carry no status.
type DoctorStatus string

const (
	DoctorStatusActive   DoctorStatus = "active"
	DoctorStatusHoliday  DoctorStatus = "holiday"
	DoctorStatusInactive DoctorStatus = "inactive"
)

// PolyOptions are the specializations offered when registering a doctor or schedule.
var PolyOptions = []string{
	"Kebidanan dan Kandungan",
	"Anak",
	"Bedah",
	"Bedah Mulut",
	"Penyakit Dalam",
	"THT",
	"Kulit dan Kelamin",
	"Umum",
	"Gigi",
}

type Doctor struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Name           string       `json:"name" db:"name"`
	Specialization string       `json:"specialization" db:"specialization"`
	Status         DoctorStatus `json:"status,omitempty" db:"status"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	LastUpdated    time.Time    `json:"last_updated" db:"last_updated"`
}

// DoctorRequest is the create/update body. Poly is accepted as an alias of
// Specialization.
type DoctorRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Poly           string `json:"poly"`
}

type DoctorFilter struct {
	Search string `form:"search"`
}
