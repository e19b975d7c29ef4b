package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
)

const (
	msgHolidayFieldsRequired = "Semua field harus diisi"
	msgHolidayDateFormat     = "Format tanggal harus YYYY-MM-DD"
	msgHolidayRange          = "Tanggal mulai tidak boleh lebih dari tanggal selesai"
	msgHolidayPast           = "Tanggal mulai tidak boleh sebelum hari ini"
	msgHolidayInactive       = "Jadwal tidak aktif tidak dapat diliburkan"
	msgHolidayNone           = "Jadwal tidak sedang libur"

	msgSetHolidayFailed    = "Gagal mengatur libur"
	msgCancelHolidayFailed = "Gagal membatalkan libur"
	msgEndHolidayFailed    = "Gagal mengaktifkan jadwal"
)

// SetHoliday stages a holiday. The schedule and its doctor switch to holiday
// immediately, even when the window starts later; the transition pass returns
// them to active after the end date.
func (s *Service) SetHoliday(ctx context.Context, id uuid.UUID, req *model.HolidayRequest) (*model.Schedule, error) {
	start, end, err := s.validateHoliday(req)
	if err != nil {
		return nil, err
	}

	sch, err := s.schedules.Get(ctx, id)
	if err != nil {
		return nil, repoError(err, "schedule")
	}
	if sch.Status == model.ScheduleStatusInactive {
		return nil, apperrors.Conflict(msgHolidayInactive)
	}

	sch.HolidayReason = strings.TrimSpace(req.Reason)
	sch.HolidayStartDate = start.Format(model.DateLayout)
	sch.HolidayEndDate = end.Format(model.DateLayout)
	sch.Status = model.ScheduleStatusHoliday
	sch.LastUpdated = s.now()

	if err := s.schedules.UpdateHoliday(ctx, sch); err != nil {
		return nil, apperrors.Internal(msgSetHolidayFailed, err)
	}
	s.syncDoctor(ctx, sch.DoctorID, model.DoctorStatusHoliday)
	s.notify(ctx, model.NotificationHolidaySet, sch)
	return sch, nil
}

// CancelHoliday ends a staged or running holiday early.
func (s *Service) CancelHoliday(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	return s.reactivate(ctx, id, model.NotificationHolidayCancelled, msgCancelHolidayFailed)
}

// EndHoliday reactivates a schedule whose holiday is over without waiting
// for the next transition pass.
func (s *Service) EndHoliday(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	return s.reactivate(ctx, id, model.NotificationHolidayEnded, msgEndHolidayFailed)
}

func (s *Service) reactivate(ctx context.Context, id uuid.UUID, t model.NotificationType, failMsg string) (*model.Schedule, error) {
	sch, err := s.schedules.Get(ctx, id)
	if err != nil {
		return nil, repoError(err, "schedule")
	}
	if sch.Status != model.ScheduleStatusHoliday && !sch.HasHoliday() {
		return nil, apperrors.Conflict(msgHolidayNone)
	}

	sch.Status = model.ScheduleStatusActive
	sch.ClearHoliday()
	sch.LastUpdated = s.now()

	if err := s.schedules.UpdateHoliday(ctx, sch); err != nil {
		return nil, apperrors.Internal(failMsg, err)
	}
	s.syncDoctor(ctx, sch.DoctorID, model.DoctorStatusActive)
	s.notify(ctx, t, sch)
	return sch, nil
}

func (s *Service) validateHoliday(req *model.HolidayRequest) (time.Time, time.Time, error) {
	var errs fieldErrors
	reason := strings.TrimSpace(req.Reason)
	startRaw := strings.TrimSpace(req.StartDate)
	endRaw := strings.TrimSpace(req.EndDate)

	if reason == "" {
		errs.add("reason", msgHolidayFieldsRequired)
	}
	if startRaw == "" {
		errs.add("start_date", msgHolidayFieldsRequired)
	}
	if endRaw == "" {
		errs.add("end_date", msgHolidayFieldsRequired)
	}
	if err := errs.err(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, err := time.ParseInLocation(model.DateLayout, startRaw, s.loc)
	if err != nil {
		errs.add("start_date", msgHolidayDateFormat)
	}
	end, err := time.ParseInLocation(model.DateLayout, endRaw, s.loc)
	if err != nil {
		errs.add("end_date", msgHolidayDateFormat)
	}
	if err := errs.err(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if start.After(end) {
		errs.add("start_date", msgHolidayRange)
	} else if start.Before(s.today()) {
		errs.add("start_date", msgHolidayPast)
	}
	if err := errs.err(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
