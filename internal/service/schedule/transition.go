package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
)

// ErrPassInFlight is returned when a transition pass is requested while
// another one is still running in this process.
var ErrPassInFlight = errors.New("schedule transition pass already running")

type Transition int

const (
	TransitionNone Transition = iota
	// TransitionEndHoliday returns an expired holiday to active.
	TransitionEndHoliday
	// TransitionStartHoliday applies a staged holiday whose start has come.
	TransitionStartHoliday
)

func (t Transition) String() string {
	switch t {
	case TransitionEndHoliday:
		return "end_holiday"
	case TransitionStartHoliday:
		return "start_holiday"
	}
	return "none"
}

// Evaluate decides which transition s is due for at now. The end date is
// inclusive through 23:59:59.999 and the start date begins at midnight, both
// in loc. At most one transition applies; the end rule is checked first.
func Evaluate(s *model.Schedule, now time.Time, loc *time.Location) Transition {
	now = now.In(loc)
	switch s.Status {
	case model.ScheduleStatusHoliday:
		if s.HolidayEndDate == "" {
			return TransitionNone
		}
		end, err := time.ParseInLocation(model.DateLayout, s.HolidayEndDate, loc)
		if err != nil {
			return TransitionNone
		}
		if now.After(model.EndOfDay(end)) {
			return TransitionEndHoliday
		}
	case model.ScheduleStatusActive:
		if s.HolidayStartDate == "" || s.HolidayEndDate == "" {
			return TransitionNone
		}
		start, err := time.ParseInLocation(model.DateLayout, s.HolidayStartDate, loc)
		if err != nil {
			return TransitionNone
		}
		if !now.Before(start) {
			return TransitionStartHoliday
		}
	}
	return TransitionNone
}

// RunTransitions evaluates every schedule once and applies the due
// transitions. It returns the number applied. Only one pass runs at a time;
// a concurrent call is counted as skipped and returns ErrPassInFlight.
func (s *Service) RunTransitions(ctx context.Context) (int, error) {
	if !s.pass.TryLock() {
		s.metrics.TransitionSkipped.Inc()
		return 0, ErrPassInFlight
	}
	defer s.pass.Unlock()

	timer := prometheus.NewTimer(s.metrics.TransitionDuration)
	defer timer.ObserveDuration()

	schedules, err := s.schedules.List(ctx)
	if err != nil {
		s.metrics.TransitionErrors.WithLabelValues("load").Inc()
		return 0, err
	}

	now := s.now()
	applied := 0
	for _, sch := range schedules {
		if ctx.Err() != nil {
			return applied, ctx.Err()
		}
		t := Evaluate(sch, now, s.loc)
		if t == TransitionNone {
			continue
		}
		if s.apply(ctx, sch, t, now) {
			applied++
		}
	}
	return applied, nil
}

// apply runs the schedule, doctor and notification writes for t. Each step
// is independent; a failed schedule write skips the rest so the next pass
// retries the whole transition.
func (s *Service) apply(ctx context.Context, sch *model.Schedule, t Transition, now time.Time) bool {
	var (
		status    model.ScheduleStatus
		notifType model.NotificationType
	)
	// keep the holiday fields for the holiday_set message
	snapshot := *sch

	switch t {
	case TransitionEndHoliday:
		status = model.ScheduleStatusActive
		notifType = model.NotificationHolidayEnded
		sch.ClearHoliday()
	case TransitionStartHoliday:
		status = model.ScheduleStatusHoliday
		notifType = model.NotificationHolidaySet
	default:
		return false
	}
	sch.Status = status
	sch.LastUpdated = now

	log := s.logger.WithFields(map[string]interface{}{
		"schedule_id": sch.ID.String(),
		"doctor_id":   sch.DoctorID.String(),
		"transition":  t.String(),
	})

	if err := s.schedules.UpdateHoliday(ctx, sch); err != nil {
		s.metrics.TransitionErrors.WithLabelValues("schedule").Inc()
		log.Error(err, "failed to update schedule status")
		return false
	}
	s.metrics.Transitions.WithLabelValues(t.String()).Inc()

	if err := s.doctors.UpdateStatus(ctx, sch.DoctorID, model.DoctorStatus(status), now); err != nil {
		s.metrics.TransitionErrors.WithLabelValues("doctor").Inc()
		log.Error(err, "failed to update doctor status")
	}

	snapshot.Status = status
	if _, err := s.notifier.Notify(ctx, notifType, &snapshot); err != nil {
		s.metrics.TransitionErrors.WithLabelValues("notification").Inc()
		log.Error(err, "failed to append transition notification")
	}

	log.Info("schedule transition applied")
	return true
}
