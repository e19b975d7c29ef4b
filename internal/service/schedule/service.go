package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/metrics"
)

// Notifier records a schedule change for operators.
type Notifier interface {
	Notify(ctx context.Context, t model.NotificationType, schedule *model.Schedule) (*model.Notification, error)
}

type Options struct {
	Metrics  *metrics.Metrics
	Logger   *logger.Logger
	Now      func() time.Time
	Location *time.Location
}

type Service struct {
	schedules repository.ScheduleRepository
	doctors   repository.DoctorRepository
	notifier  Notifier
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
	loc       *time.Location

	pass sync.Mutex
}

func NewService(schedules repository.ScheduleRepository, doctors repository.DoctorRepository, notifier Notifier, opts Options) *Service {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New("dashboard")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		schedules: schedules,
		doctors:   doctors,
		notifier:  notifier,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		now:       opts.Now,
		loc:       opts.Location,
	}
}

func (s *Service) today() time.Time {
	return model.StartOfDay(s.now().In(s.loc))
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	sch, err := s.schedules.Get(ctx, id)
	if err != nil {
		return nil, repoError(err, "schedule")
	}
	return sch, nil
}

func (s *Service) Create(ctx context.Context, req *model.ScheduleRequest) (*model.Schedule, error) {
	doctor, shifts, err := s.validateRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = model.ScheduleStatusActive
	}

	now := s.now()
	sch := &model.Schedule{
		ID:          uuid.New(),
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		Poly:        strings.TrimSpace(req.Poly),
		Days:        normalizeDays(req.Days),
		Shifts:      shifts,
		Status:      status,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := s.schedules.Create(ctx, sch); err != nil {
		return nil, apperrors.Internal("Gagal menyimpan jadwal", err)
	}

	s.syncDoctor(ctx, sch.DoctorID, model.DoctorStatus(sch.Status))
	s.notify(ctx, model.NotificationScheduleCreated, sch)
	return sch, nil
}

// Update replaces the editable fields. Holiday fields are kept, and an
// empty status keeps the current one.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.ScheduleRequest) (*model.Schedule, error) {
	sch, err := s.schedules.Get(ctx, id)
	if err != nil {
		return nil, repoError(err, "schedule")
	}
	doctor, shifts, err := s.validateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	sch.DoctorID = doctor.ID
	sch.DoctorName = doctor.Name
	sch.Poly = strings.TrimSpace(req.Poly)
	sch.Days = normalizeDays(req.Days)
	sch.Shifts = shifts
	if req.Status != "" {
		sch.Status = req.Status
	}
	sch.LastUpdated = s.now()

	if err := s.schedules.Update(ctx, sch); err != nil {
		return nil, repoError(err, "schedule")
	}

	s.syncDoctor(ctx, sch.DoctorID, model.DoctorStatus(sch.Status))
	s.notify(ctx, model.NotificationScheduleUpdated, sch)
	return sch, nil
}

// Delete removes the schedule. A doctor left without schedules becomes
// inactive.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	sch, err := s.schedules.Get(ctx, id)
	if err != nil {
		return repoError(err, "schedule")
	}
	if err := s.schedules.Delete(ctx, id); err != nil {
		return repoError(err, "schedule")
	}

	remaining, err := s.schedules.ListByDoctor(ctx, sch.DoctorID)
	if err != nil {
		s.logger.Error(err, "failed to list remaining schedules", "doctor_id", sch.DoctorID.String())
	} else if len(remaining) == 0 {
		s.syncDoctor(ctx, sch.DoctorID, model.DoctorStatusInactive)
	}

	s.notify(ctx, model.NotificationScheduleDeleted, sch)
	return nil
}

// List removes orphaned schedules, runs one transition pass and returns the
// filtered schedules with stats over all of them.
func (s *Service) List(ctx context.Context, filter model.ScheduleFilter) (*model.ScheduleList, error) {
	if err := s.cleanOrphans(ctx); err != nil {
		return nil, apperrors.Internal("Gagal memuat jadwal", err)
	}

	if _, err := s.RunTransitions(ctx); err != nil && !errors.Is(err, ErrPassInFlight) {
		s.logger.Error(err, "transition pass during listing failed")
	}

	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat jadwal", err)
	}

	now := s.now().In(s.loc)
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	polys := map[string]struct{}{}
	result := &model.ScheduleList{Schedules: []model.ScheduleView{}, PolyCategories: []string{}}

	for _, sch := range schedules {
		result.Summary.Total++
		switch sch.Status {
		case model.ScheduleStatusActive:
			result.Summary.Active++
		case model.ScheduleStatusHoliday:
			result.Summary.Holiday++
		case model.ScheduleStatusInactive:
			result.Summary.Inactive++
		}
		if sch.Poly != "" {
			polys[sch.Poly] = struct{}{}
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(sch.DoctorName), search) &&
			!strings.Contains(strings.ToLower(sch.Poly), search) {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(sch.Status) != filter.Status {
			continue
		}
		if filter.Poly != "" && filter.Poly != "all" && sch.Poly != filter.Poly {
			continue
		}
		result.Schedules = append(result.Schedules, model.ScheduleView{
			Schedule:             sch,
			RemainingHolidayDays: sch.RemainingHolidayDays(now),
		})
	}

	for p := range polys {
		result.PolyCategories = append(result.PolyCategories, p)
	}
	sort.Strings(result.PolyCategories)
	return result, nil
}

// cleanOrphans deletes schedules whose doctor no longer exists.
func (s *Service) cleanOrphans(ctx context.Context) error {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list doctors: %w", err)
	}
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}

	known := make(map[uuid.UUID]struct{}, len(doctors))
	for _, d := range doctors {
		known[d.ID] = struct{}{}
	}
	for _, sch := range schedules {
		if _, ok := known[sch.DoctorID]; ok {
			continue
		}
		if err := s.schedules.Delete(ctx, sch.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error(err, "failed to delete orphaned schedule", "schedule_id", sch.ID.String())
			continue
		}
		s.metrics.OrphanedSchedules.Inc()
		s.logger.Info("deleted orphaned schedule",
			"schedule_id", sch.ID.String(),
			"doctor_id", sch.DoctorID.String(),
		)
	}
	return nil
}

func (s *Service) syncDoctor(ctx context.Context, doctorID uuid.UUID, status model.DoctorStatus) {
	if err := s.doctors.UpdateStatus(ctx, doctorID, status, s.now()); err != nil {
		s.logger.Error(err, "failed to update doctor status",
			"doctor_id", doctorID.String(),
			"status", string(status),
		)
	}
}

func (s *Service) notify(ctx context.Context, t model.NotificationType, sch *model.Schedule) {
	if _, err := s.notifier.Notify(ctx, t, sch); err != nil {
		s.logger.Error(err, "failed to append notification",
			"schedule_id", sch.ID.String(),
			"type", string(t),
		)
	}
}

func normalizeDays(days []model.Weekday) []model.Weekday {
	seen := make(map[model.Weekday]struct{}, len(days))
	out := make([]model.Weekday, 0, len(days))
	for _, d := range days {
		d = model.Weekday(strings.ToLower(strings.TrimSpace(string(d))))
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

func repoError(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(resource, err)
	}
	return apperrors.Internal("", err)
}
