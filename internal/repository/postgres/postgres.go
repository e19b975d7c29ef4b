package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

type doctorRepository struct {
	db *sqlx.DB
}

type scheduleRepository struct {
	BaseRepository
}

type followUpRepository struct {
	db *sqlx.DB
}

type notificationRepository struct {
	db *sqlx.DB
}

type adminRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{BaseRepository: NewBaseRepository(db)}
}

func NewFollowUpRepository(db *sqlx.DB) repository.FollowUpRepository {
	return &followUpRepository{db: db}
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func NewAdminRepository(db *sqlx.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

// NewStore wires every postgres repository onto one connection pool.
func NewStore(db *sqlx.DB) *repository.Store {
	return &repository.Store{
		Patients:      NewPatientRepository(db),
		Doctors:       NewDoctorRepository(db),
		Schedules:     NewScheduleRepository(db),
		FollowUps:     NewFollowUpRepository(db),
		Notifications: NewNotificationRepository(db),
		Admins:        NewAdminRepository(db),
	}
}
