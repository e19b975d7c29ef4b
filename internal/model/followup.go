package model

import (
	"time"

	"github.com/google/uuid"
)

type FollowUpStatus string

const (
	FollowUpStatusScheduled   FollowUpStatus = "scheduled"
	FollowUpStatusCompleted   FollowUpStatus = "completed"
	FollowUpStatusCancelled   FollowUpStatus = "cancelled"
	FollowUpStatusRescheduled FollowUpStatus = "rescheduled"
)

var followUpStatusLabels = map[FollowUpStatus]string{
	FollowUpStatusScheduled:   "Terjadwal",
	FollowUpStatusCompleted:   "Selesai",
	FollowUpStatusCancelled:   "Dibatalkan",
	FollowUpStatusRescheduled: "Dijadwal Ulang",
}

func (s FollowUpStatus) Valid() bool {
	_, ok := followUpStatusLabels[s]
	return ok
}

// Label returns the Indonesian label. An empty status reads as scheduled.
func (s FollowUpStatus) Label() string {
	if l, ok := followUpStatusLabels[s]; ok {
		return l
	}
	return followUpStatusLabels[FollowUpStatusScheduled]
}

// FollowUp is a control appointment booked for a patient after a visit.
type FollowUp struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	PatientID       uuid.UUID      `json:"patient_id" db:"patient_id"`
	PatientName     string         `json:"patient_name" db:"patient_name"`
	DoctorName      string         `json:"doctor_name" db:"doctor_name"`
	AppointmentDate string         `json:"appointment_date" db:"appointment_date"`
	AppointmentTime string         `json:"appointment_time" db:"appointment_time"`
	Notes           string         `json:"notes" db:"notes"`
	Status          FollowUpStatus `json:"status" db:"status"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty" db:"updated_at"`
}

// IsScheduled treats legacy records without status as scheduled.
func (f *FollowUp) IsScheduled() bool {
	return f.Status == "" || f.Status == FollowUpStatusScheduled
}

type CreateFollowUpRequest struct {
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time" binding:"omitempty,hhmm"`
	Notes           string `json:"notes"`
}

type UpdateFollowUpRequest struct {
	AppointmentDate string         `json:"appointment_date"`
	AppointmentTime string         `json:"appointment_time"`
	Notes           string         `json:"notes"`
	Status          FollowUpStatus `json:"status"`
}

type UpdateFollowUpStatusRequest struct {
	Status FollowUpStatus `json:"status" binding:"required,followup_status"`
}

type FollowUpFilter struct {
	Search     string          `form:"search"`
	Status     string          `form:"status"`
	DateFilter DateRangeFilter `form:"date_filter"`
	DateFrom   string          `form:"date_from"`
	DateTo     string          `form:"date_to"`
}

type FollowUpSummary struct {
	Total        int `json:"total"`
	Today        int `json:"today"`
	UpcomingWeek int `json:"upcoming_week"`
}
