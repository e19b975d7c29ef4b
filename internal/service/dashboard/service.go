package dashboard

import (
	"context"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/patient"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
)

const recentPatients = 8

type Service struct {
	patients  *patient.Service
	doctors   repository.DoctorRepository
	schedules repository.ScheduleRepository
}

func NewService(patients *patient.Service, doctors repository.DoctorRepository, schedules repository.ScheduleRepository) *Service {
	return &Service{patients: patients, doctors: doctors, schedules: schedules}
}

// Stats builds the landing page summary. Schedules count as active unless
// they are on holiday.
func (s *Service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	total, today, err := s.patients.CountToday(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.patients.Recent(ctx, recentPatients)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat data dokter", err)
	}
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat jadwal dokter", err)
	}

	active := 0
	for _, sc := range schedules {
		if sc.Status != model.ScheduleStatusHoliday {
			active++
		}
	}
	return &model.DashboardStats{
		TotalPatients:   total,
		TodayPatients:   today,
		TotalDoctors:    len(doctors),
		ActiveSchedules: active,
		RecentPatients:  recent,
	}, nil
}
