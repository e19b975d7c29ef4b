package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
)

// ErrNotFound is returned when a point read or write matches no record.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.PatientStatus, at time.Time) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.DoctorStatus, at time.Time) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	ScheduleRepository interface {
		Create(ctx context.Context, schedule *model.Schedule) error
		Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error)
		List(ctx context.Context) ([]*model.Schedule, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Schedule, error)
		Update(ctx context.Context, schedule *model.Schedule) error
		// UpdateHoliday writes only status, holiday fields and last_updated.
		UpdateHoliday(ctx context.Context, schedule *model.Schedule) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	FollowUpRepository interface {
		Create(ctx context.Context, followUp *model.FollowUp) error
		Get(ctx context.Context, id uuid.UUID) (*model.FollowUp, error)
		List(ctx context.Context) ([]*model.FollowUp, error)
		Update(ctx context.Context, followUp *model.FollowUp) error
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.FollowUpStatus, at time.Time) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		List(ctx context.Context, filter model.NotificationFilter) ([]*model.Notification, error)
		CountUnread(ctx context.Context) (int, error)
		MarkRead(ctx context.Context, id uuid.UUID) error
		MarkAllRead(ctx context.Context) (int64, error)
	}

	AdminRepository interface {
		Create(ctx context.Context, admin *model.Admin) error
		Get(ctx context.Context, id uuid.UUID) (*model.Admin, error)
		GetByEmail(ctx context.Context, email string) (*model.Admin, error)
		UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	}
)

// Store bundles one repository per collection.
type Store struct {
	Patients      PatientRepository
	Doctors       DoctorRepository
	Schedules     ScheduleRepository
	FollowUps     FollowUpRepository
	Notifications NotificationRepository
	Admins        AdminRepository
}
