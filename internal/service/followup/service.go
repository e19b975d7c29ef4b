package followup

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/validator"
)

const (
	msgDateTimeRequired  = "Tanggal dan waktu kontrol harus diisi"
	msgInPast            = "Jadwal kontrol tidak boleh di masa lalu"
	msgNotBeforeTomorrow = "Tanggal kontrol paling cepat besok"
	msgInvalidDate       = "Format tanggal tidak valid"
	msgInvalidTime       = "Format waktu harus HH:MM"
	msgInvalidStatus     = "Status jadwal kontrol tidak valid"
)

type Service struct {
	followUps repository.FollowUpRepository
	patients  repository.PatientRepository
	now       func() time.Time
}

// NewService builds the follow-up service. now must return times in the
// clinic's location.
func NewService(followUps repository.FollowUpRepository, patients repository.PatientRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{followUps: followUps, patients: patients, now: now}
}

// CreateFromPatient books a control visit for a registered patient. The visit
// must fall on tomorrow or later.
func (s *Service) CreateFromPatient(ctx context.Context, patientID uuid.UUID, req *model.CreateFollowUpRequest) (*model.FollowUp, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal("", err)
	}

	now := s.now()
	date, err := s.validateDateTime(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if date.Before(model.StartOfDay(now).AddDate(0, 0, 1)) {
		return nil, apperrors.Validation(msgNotBeforeTomorrow, map[string]string{"appointment_date": msgNotBeforeTomorrow})
	}

	f := &model.FollowUp{
		ID:              uuid.New(),
		PatientID:       patient.ID,
		PatientName:     patient.Nama,
		DoctorName:      patient.Dokter,
		AppointmentDate: date.Format(model.DateLayout),
		AppointmentTime: strings.TrimSpace(req.AppointmentTime),
		Notes:           strings.TrimSpace(req.Notes),
		Status:          model.FollowUpStatusScheduled,
		CreatedAt:       now,
	}
	if err := s.followUps.Create(ctx, f); err != nil {
		return nil, apperrors.Internal("Gagal menyimpan jadwal kontrol", err)
	}
	return f, nil
}

// List returns the filtered appointments ordered by date then time.
func (s *Service) List(ctx context.Context, filter model.FollowUpFilter) ([]*model.FollowUp, error) {
	now := s.now()
	window, windowed, err := model.ResolveDateRange(filter.DateFilter, filter.DateFrom, filter.DateTo, "", now)
	if err != nil {
		return nil, apperrors.BadRequest("Filter tanggal tidak valid", err)
	}

	all, err := s.followUps.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat jadwal kontrol", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	status := strings.TrimSpace(filter.Status)

	out := make([]*model.FollowUp, 0, len(all))
	for _, f := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(f.PatientName), search) &&
			!strings.Contains(strings.ToLower(f.DoctorName), search) &&
			!strings.Contains(f.ID.String(), search) {
			continue
		}
		if status != "" && status != "all" && !hasStatus(f, model.FollowUpStatus(status)) {
			continue
		}
		if windowed {
			date, err := model.ParseDate(f.AppointmentDate, now.Location())
			if err != nil || !window.Contains(date) {
				continue
			}
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate < out[j].AppointmentDate
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

func hasStatus(f *model.FollowUp, status model.FollowUpStatus) bool {
	if status == model.FollowUpStatusScheduled {
		return f.IsScheduled()
	}
	return f.Status == status
}

// Summary counts scheduled visits today and in the coming seven days.
func (s *Service) Summary(ctx context.Context) (*model.FollowUpSummary, error) {
	all, err := s.followUps.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat jadwal kontrol", err)
	}
	now := s.now()
	today := model.StartOfDay(now)
	weekEnd := model.EndOfDay(today.AddDate(0, 0, 7))

	summary := &model.FollowUpSummary{Total: len(all)}
	for _, f := range all {
		if !f.IsScheduled() {
			continue
		}
		date, err := model.ParseDate(f.AppointmentDate, now.Location())
		if err != nil {
			continue
		}
		if model.SameDay(date, today) {
			summary.Today++
		}
		if !date.Before(today) && !date.After(weekEnd) {
			summary.UpcomingWeek++
		}
	}
	return summary, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.FollowUp, error) {
	f, err := s.followUps.Get(ctx, id)
	if err != nil {
		return nil, repoError(err)
	}
	return f, nil
}

// Update reschedules an appointment. A visit marked completed may keep a past
// date; anything else must lie in the future.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateFollowUpRequest) (*model.FollowUp, error) {
	if strings.TrimSpace(req.AppointmentDate) == "" || strings.TrimSpace(req.AppointmentTime) == "" {
		return nil, apperrors.Validation(msgDateTimeRequired, map[string]string{"appointment_date": msgDateTimeRequired})
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, apperrors.Validation(msgInvalidStatus, map[string]string{"status": msgInvalidStatus})
	}

	f, err := s.followUps.Get(ctx, id)
	if err != nil {
		return nil, repoError(err)
	}

	date, err := s.validateDateTime(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = f.Status
	}

	now := s.now()
	at, _ := time.ParseInLocation(model.DateLayout+" 15:04",
		date.Format(model.DateLayout)+" "+strings.TrimSpace(req.AppointmentTime), now.Location())
	if status != model.FollowUpStatusCompleted && at.Before(now) {
		return nil, apperrors.Validation(msgInPast, map[string]string{"appointment_date": msgInPast})
	}

	f.AppointmentDate = date.Format(model.DateLayout)
	f.AppointmentTime = strings.TrimSpace(req.AppointmentTime)
	f.Notes = strings.TrimSpace(req.Notes)
	f.Status = status
	f.UpdatedAt = &now
	if err := s.followUps.Update(ctx, f); err != nil {
		return nil, repoError(err)
	}
	return f, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.FollowUpStatus) (*model.FollowUp, error) {
	if !status.Valid() {
		return nil, apperrors.Validation(msgInvalidStatus, map[string]string{"status": msgInvalidStatus})
	}
	if err := s.followUps.UpdateStatus(ctx, id, status, s.now()); err != nil {
		return nil, repoError(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.followUps.Delete(ctx, id); err != nil {
		return repoError(err)
	}
	return nil
}

func (s *Service) validateDateTime(date, clock string) (time.Time, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(clock) == "" {
		return time.Time{}, apperrors.Validation(msgDateTimeRequired, map[string]string{"appointment_date": msgDateTimeRequired})
	}
	d, err := model.ParseDate(date, s.now().Location())
	if err != nil {
		return time.Time{}, apperrors.Validation(msgInvalidDate, map[string]string{"appointment_date": msgInvalidDate})
	}
	if !validator.IsHHMM(strings.TrimSpace(clock)) {
		return time.Time{}, apperrors.Validation(msgInvalidTime, map[string]string{"appointment_time": msgInvalidTime})
	}
	return d, nil
}

func repoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("follow-up", err)
	}
	return apperrors.Internal("", err)
}
