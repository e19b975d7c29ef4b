package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/validator"
)

const (
	msgDoctorRequired  = "Pilih dokter"
	msgDoctorNotFound  = "Dokter tidak ditemukan"
	msgPolyRequired    = "Poli wajib diisi"
	msgDaysRequired    = "Pilih minimal satu hari"
	msgDayInvalid      = "Hari tidak valid"
	msgShiftsRequired  = "Tambahkan minimal satu shift"
	msgShiftName       = "Nama shift wajib diisi"
	msgShiftStart      = "Jam mulai wajib diisi"
	msgShiftEnd        = "Jam selesai wajib diisi"
	msgShiftTimeFormat = "Format jam harus HH:MM"
	msgShiftOrder      = "Jam mulai harus lebih awal dari jam selesai"
	msgShiftOverlap    = "Waktu shift tidak boleh bertumpang tindih"
	msgStatusInvalid   = "Status harus aktif atau tidak aktif"
)

// fieldErrors keeps the first message recorded for each field.
type fieldErrors struct {
	fields map[string]string
	first  string
}

func (f *fieldErrors) add(field, msg string) {
	if f.fields == nil {
		f.fields = map[string]string{}
	}
	if _, ok := f.fields[field]; ok {
		return
	}
	if f.first == "" {
		f.first = msg
	}
	f.fields[field] = msg
}

func (f *fieldErrors) err() error {
	if len(f.fields) == 0 {
		return nil
	}
	return apperrors.Validation(f.first, f.fields)
}

// validateRequest checks the form and resolves its doctor. The returned
// shifts are normalized.
func (s *Service) validateRequest(ctx context.Context, req *model.ScheduleRequest) (*model.Doctor, []model.Shift, error) {
	var errs fieldErrors
	var doctorID uuid.UUID

	if strings.TrimSpace(req.DoctorID) == "" {
		errs.add("doctor_id", msgDoctorRequired)
	} else if id, err := uuid.Parse(strings.TrimSpace(req.DoctorID)); err != nil {
		errs.add("doctor_id", msgDoctorNotFound)
	} else {
		doctorID = id
	}
	if strings.TrimSpace(req.Poly) == "" {
		errs.add("poly", msgPolyRequired)
	}
	if len(req.Days) == 0 {
		errs.add("days", msgDaysRequired)
	}
	for _, d := range normalizeDays(req.Days) {
		if !d.Valid() {
			errs.add("days", msgDayInvalid)
		}
	}
	switch req.Status {
	case "", model.ScheduleStatusActive, model.ScheduleStatusInactive:
	default:
		errs.add("status", msgStatusInvalid)
	}

	shifts := req.NormalizedShifts()
	validateShifts(shifts, &errs)

	if err := errs.err(); err != nil {
		return nil, nil, err
	}

	doctor, err := s.doctors.Get(ctx, doctorID)
	if errors.Is(err, repository.ErrNotFound) {
		errs.add("doctor_id", msgDoctorNotFound)
		return nil, nil, errs.err()
	}
	if err != nil {
		return nil, nil, apperrors.Internal("", err)
	}
	return doctor, shifts, nil
}

func validateShifts(shifts []model.Shift, errs *fieldErrors) {
	if len(shifts) == 0 {
		errs.add("shifts", msgShiftsRequired)
		return
	}

	valid := true
	for i := range shifts {
		sh := &shifts[i]
		sh.Name = strings.TrimSpace(sh.Name)
		sh.StartTime = strings.TrimSpace(sh.StartTime)
		sh.EndTime = strings.TrimSpace(sh.EndTime)
		prefix := fmt.Sprintf("shifts[%d]", i)

		if sh.Name == "" {
			errs.add(prefix+".name", msgShiftName)
			valid = false
		}
		switch {
		case sh.StartTime == "":
			errs.add(prefix+".start_time", msgShiftStart)
			valid = false
		case !validator.IsHHMM(sh.StartTime):
			errs.add(prefix+".start_time", msgShiftTimeFormat)
			valid = false
		}
		switch {
		case sh.EndTime == "":
			errs.add(prefix+".end_time", msgShiftEnd)
			valid = false
		case !validator.IsHHMM(sh.EndTime):
			errs.add(prefix+".end_time", msgShiftTimeFormat)
			valid = false
		}
		if validator.IsHHMM(sh.StartTime) && validator.IsHHMM(sh.EndTime) && sh.StartTime >= sh.EndTime {
			errs.add(prefix+".end_time", msgShiftOrder)
			valid = false
		}
	}
	if !valid {
		return
	}

	// HH:MM strings order the same as the times they encode
	for i := 0; i < len(shifts); i++ {
		for j := i + 1; j < len(shifts); j++ {
			a, b := shifts[i], shifts[j]
			if a.StartTime < b.EndTime && b.StartTime < a.EndTime {
				errs.add("shifts", msgShiftOverlap)
				return
			}
		}
	}
}
