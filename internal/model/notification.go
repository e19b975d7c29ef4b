package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationHolidaySet       NotificationType = "holiday_set"
	NotificationHolidayEnded     NotificationType = "holiday_ended"
	NotificationHolidayCancelled NotificationType = "holiday_cancelled"
	NotificationScheduleCreated  NotificationType = "schedule_created"
	NotificationScheduleUpdated  NotificationType = "schedule_updated"
	NotificationScheduleDeleted  NotificationType = "schedule_deleted"
)

// IsHoliday reports whether t describes a holiday change.
func (t NotificationType) IsHoliday() bool {
	return strings.HasPrefix(string(t), "holiday_")
}

// Notification is an append-only record of a schedule or doctor change.
type Notification struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	Type       NotificationType `json:"type" db:"type"`
	Message    string           `json:"message" db:"message"`
	DoctorID   uuid.UUID        `json:"doctor_id" db:"doctor_id"`
	DoctorName string           `json:"doctor_name" db:"doctor_name"`
	ScheduleID uuid.UUID        `json:"schedule_id" db:"schedule_id"`
	Poly       string           `json:"poly" db:"poly"`
	Read       bool             `json:"read" db:"read"`
	Timestamp  time.Time        `json:"timestamp" db:"timestamp"`
}

// NotificationMessage renders the operator-facing message for a change to s.
func NotificationMessage(t NotificationType, s *Schedule) string {
	switch t {
	case NotificationHolidaySet:
		return fmt.Sprintf("Dokter %s di Poli %s libur dari %s hingga %s karena %s.",
			s.DoctorName, s.Poly, s.HolidayStartDate, s.HolidayEndDate, s.HolidayReason)
	case NotificationHolidayEnded:
		return fmt.Sprintf("Dokter %s di Poli %s telah selesai libur dan kembali aktif.", s.DoctorName, s.Poly)
	case NotificationHolidayCancelled:
		return fmt.Sprintf("Libur dokter %s di Poli %s telah dibatalkan dan kembali aktif.", s.DoctorName, s.Poly)
	case NotificationScheduleUpdated:
		return fmt.Sprintf("Jadwal praktek dokter %s di Poli %s telah diperbarui.", s.DoctorName, s.Poly)
	case NotificationScheduleCreated:
		return fmt.Sprintf("Jadwal praktek baru untuk dokter %s di Poli %s telah dibuat.", s.DoctorName, s.Poly)
	case NotificationScheduleDeleted:
		return fmt.Sprintf("Jadwal praktek dokter %s di Poli %s telah dihapus.", s.DoctorName, s.Poly)
	}
	return ""
}

type NotificationFilter struct {
	UnreadOnly bool `form:"unread"`
	Limit      int  `form:"limit"`
}

type NotificationList struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unread_count"`
}
