// Package memory keeps every collection in process memory. It backs tests
// and the "memory" storage driver used for local runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
)

// NewStore returns a Store whose repositories share nothing but the process.
func NewStore() *repository.Store {
	return &repository.Store{
		Patients:      NewPatientRepository(),
		Doctors:       NewDoctorRepository(),
		Schedules:     NewScheduleRepository(),
		FollowUps:     NewFollowUpRepository(),
		Notifications: NewNotificationRepository(),
		Admins:        NewAdminRepository(),
	}
}

func notFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, repository.ErrNotFound)
}

type patientRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.Patient
}

func NewPatientRepository() repository.PatientRepository {
	return &patientRepository{items: make(map[uuid.UUID]model.Patient)}
}

func (r *patientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[patient.ID]; ok {
		return fmt.Errorf("patient %s already exists", patient.ID)
	}
	r.items[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, notFound("patient")
	}
	return &p, nil
}

func (r *patientRepository) List(_ context.Context) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Patient, 0, len(r.items))
	for _, p := range r.items {
		p := p
		out = append(out, &p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].TanggalDaftar, out[j].TanggalDaftar
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
	return out, nil
}

func (r *patientRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.PatientStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return notFound("patient")
	}
	p.Status = status
	p.UpdatedAt = &at
	r.items[id] = p
	return nil
}

type doctorRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.Doctor
}

func NewDoctorRepository() repository.DoctorRepository {
	return &doctorRepository{items: make(map[uuid.UUID]model.Doctor)}
}

func (r *doctorRepository) Create(_ context.Context, doctor *model.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[doctor.ID]; ok {
		return fmt.Errorf("doctor %s already exists", doctor.ID)
	}
	r.items[doctor.ID] = *doctor
	return nil
}

func (r *doctorRepository) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok {
		return nil, notFound("doctor")
	}
	return &d, nil
}

func (r *doctorRepository) List(_ context.Context) ([]*model.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Doctor, 0, len(r.items))
	for _, d := range r.items {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *doctorRepository) Update(_ context.Context, doctor *model.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[doctor.ID]
	if !ok {
		return notFound("doctor")
	}
	d.Name = doctor.Name
	d.Specialization = doctor.Specialization
	d.LastUpdated = doctor.LastUpdated
	r.items[doctor.ID] = d
	return nil
}

func (r *doctorRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.DoctorStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return notFound("doctor")
	}
	d.Status = status
	d.LastUpdated = at
	r.items[id] = d
	return nil
}

func (r *doctorRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound("doctor")
	}
	delete(r.items, id)
	return nil
}

type scheduleRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.Schedule
}

func NewScheduleRepository() repository.ScheduleRepository {
	return &scheduleRepository{items: make(map[uuid.UUID]model.Schedule)}
}

// copySchedule detaches the slices so callers cannot mutate stored state.
func copySchedule(s model.Schedule) model.Schedule {
	s.Days = append([]model.Weekday(nil), s.Days...)
	s.Shifts = append([]model.Shift(nil), s.Shifts...)
	return s
}

func (r *scheduleRepository) Create(_ context.Context, schedule *model.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[schedule.ID]; ok {
		return fmt.Errorf("schedule %s already exists", schedule.ID)
	}
	r.items[schedule.ID] = copySchedule(*schedule)
	return nil
}

func (r *scheduleRepository) Get(_ context.Context, id uuid.UUID) (*model.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, notFound("schedule")
	}
	s = copySchedule(s)
	return &s, nil
}

func (r *scheduleRepository) List(_ context.Context) ([]*model.Schedule, error) {
	return r.filter(func(*model.Schedule) bool { return true }), nil
}

func (r *scheduleRepository) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*model.Schedule, error) {
	return r.filter(func(s *model.Schedule) bool { return s.DoctorID == doctorID }), nil
}

func (r *scheduleRepository) filter(keep func(*model.Schedule) bool) []*model.Schedule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Schedule, 0, len(r.items))
	for _, s := range r.items {
		s := copySchedule(s)
		if keep(&s) {
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *scheduleRepository) Update(_ context.Context, schedule *model.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[schedule.ID]
	if !ok {
		return notFound("schedule")
	}
	updated := copySchedule(*schedule)
	updated.CreatedAt = existing.CreatedAt
	r.items[schedule.ID] = updated
	return nil
}

func (r *scheduleRepository) UpdateHoliday(_ context.Context, schedule *model.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[schedule.ID]
	if !ok {
		return notFound("schedule")
	}
	s.Status = schedule.Status
	s.HolidayReason = schedule.HolidayReason
	s.HolidayStartDate = schedule.HolidayStartDate
	s.HolidayEndDate = schedule.HolidayEndDate
	s.LastUpdated = schedule.LastUpdated
	r.items[schedule.ID] = s
	return nil
}

func (r *scheduleRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound("schedule")
	}
	delete(r.items, id)
	return nil
}

type followUpRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.FollowUp
}

func NewFollowUpRepository() repository.FollowUpRepository {
	return &followUpRepository{items: make(map[uuid.UUID]model.FollowUp)}
}

func (r *followUpRepository) Create(_ context.Context, followUp *model.FollowUp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[followUp.ID]; ok {
		return fmt.Errorf("follow-up %s already exists", followUp.ID)
	}
	r.items[followUp.ID] = *followUp
	return nil
}

func (r *followUpRepository) Get(_ context.Context, id uuid.UUID) (*model.FollowUp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.items[id]
	if !ok {
		return nil, notFound("follow-up")
	}
	return &f, nil
}

func (r *followUpRepository) List(_ context.Context) ([]*model.FollowUp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.FollowUp, 0, len(r.items))
	for _, f := range r.items {
		f := f
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate < out[j].AppointmentDate
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

func (r *followUpRepository) Update(_ context.Context, followUp *model.FollowUp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[followUp.ID]
	if !ok {
		return notFound("follow-up")
	}
	f.AppointmentDate = followUp.AppointmentDate
	f.AppointmentTime = followUp.AppointmentTime
	f.Notes = followUp.Notes
	f.Status = followUp.Status
	f.UpdatedAt = followUp.UpdatedAt
	r.items[followUp.ID] = f
	return nil
}

func (r *followUpRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.FollowUpStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if !ok {
		return notFound("follow-up")
	}
	f.Status = status
	f.UpdatedAt = &at
	r.items[id] = f
	return nil
}

func (r *followUpRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound("follow-up")
	}
	delete(r.items, id)
	return nil
}

// notificationRepository keeps insertion order, newest last.
type notificationRepository struct {
	mu    sync.RWMutex
	items []model.Notification
}

func NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *n)
	return nil
}

func (r *notificationRepository) List(_ context.Context, filter model.NotificationFilter) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Notification, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		n := r.items[i]
		if filter.UnreadOnly && n.Read {
			continue
		}
		out = append(out, &n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *notificationRepository) CountUnread(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Read = true
			return nil
		}
	}
	return notFound("notification")
}

func (r *notificationRepository) MarkAllRead(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.items {
		if !r.items[i].Read {
			r.items[i].Read = true
			n++
		}
	}
	return n, nil
}

type adminRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.Admin
}

func NewAdminRepository() repository.AdminRepository {
	return &adminRepository{items: make(map[uuid.UUID]model.Admin)}
}

func (r *adminRepository) Create(_ context.Context, admin *model.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.items {
		if strings.EqualFold(a.Email, admin.Email) {
			return fmt.Errorf("admin with email %s already exists", admin.Email)
		}
	}
	r.items[admin.ID] = *admin
	return nil
}

func (r *adminRepository) Get(_ context.Context, id uuid.UUID) (*model.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, notFound("admin")
	}
	return &a, nil
}

func (r *adminRepository) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if strings.EqualFold(a.Email, email) {
			a := a
			return &a, nil
		}
	}
	return nil, notFound("admin")
}

func (r *adminRepository) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return notFound("admin")
	}
	a.LastLoginAt = &at
	a.UpdatedAt = at
	r.items[id] = a
	return nil
}
