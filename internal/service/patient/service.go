package patient

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
)

const msgInvalidStatus = "Status pasien tidak valid"

type Service struct {
	repo repository.PatientRepository
	now  func() time.Time
}

// NewService builds the patient service. now must return times in the
// clinic's location; visit dates are interpreted there.
func NewService(repo repository.PatientRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// List returns the filtered patients ordered by visit date, then queue number.
func (s *Service) List(ctx context.Context, filter model.PatientFilter) ([]model.PatientView, error) {
	patients, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]model.PatientView, 0, len(patients))
	for _, p := range patients {
		views = append(views, model.NewPatientView(p))
	}
	return views, nil
}

// Patients is List without the view decoration, for the exporter.
func (s *Service) Patients(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error) {
	return s.filtered(ctx, filter)
}

func (s *Service) filtered(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error) {
	now := s.now()
	loc := now.Location()

	window, windowed, err := model.ResolveDateRange(filter.DateFilter, filter.DateFrom, filter.DateTo, filter.Month, now)
	if err != nil {
		return nil, apperrors.BadRequest("Filter tanggal tidak valid", err)
	}

	var status model.PatientStatus
	if strings.TrimSpace(filter.Status) != "" && filter.Status != "all" {
		parsed, ok := model.ParsePatientStatus(filter.Status)
		if !ok {
			return nil, apperrors.BadRequest(msgInvalidStatus, nil)
		}
		status = parsed
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat data pasien", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	layanan := strings.TrimSpace(filter.Layanan)

	out := make([]*model.Patient, 0, len(all))
	for _, p := range all {
		if search != "" && !matches(p, search) {
			continue
		}
		if status != "" && canonicalStatus(p) != status {
			continue
		}
		if layanan != "" && layanan != "all" && p.Layanan != layanan {
			continue
		}
		if windowed {
			visit, ok := p.VisitDate(loc)
			if !ok || !window.Contains(visit) {
				continue
			}
		}
		out = append(out, p)
	}
	sortByVisit(out, loc)
	return out, nil
}

func matches(p *model.Patient, search string) bool {
	return strings.Contains(strings.ToLower(p.Nama), search) ||
		strings.Contains(p.NIK, search) ||
		strings.Contains(p.Telepon, search) ||
		strings.Contains(p.ID.String(), search)
}

// canonicalStatus tolerates records written with the legacy vocabulary.
func canonicalStatus(p *model.Patient) model.PatientStatus {
	if st, ok := model.ParsePatientStatus(string(p.Status)); ok {
		return st
	}
	return p.Status
}

// sortByVisit orders by visit date then queue number. Unparseable dates and
// missing queue numbers sort last.
func sortByVisit(patients []*model.Patient, loc *time.Location) {
	sort.SliceStable(patients, func(i, j int) bool {
		a, aok := patients[i].VisitDate(loc)
		b, bok := patients[j].VisitDate(loc)
		if aok != bok {
			return aok
		}
		if !a.Equal(b) {
			return a.Before(b)
		}
		qa, qb := patients[i].QueueNumber, patients[j].QueueNumber
		switch {
		case qa == nil:
			return false
		case qb == nil:
			return true
		}
		return *qa < *qb
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.PatientView, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError(err)
	}
	view := model.NewPatientView(p)
	return &view, nil
}

// Raw returns the stored record, for callers that derive other records from it.
func (s *Service) Raw(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError(err)
	}
	return p, nil
}

// UpdateStatus accepts any status vocabulary and stores the canonical code.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, value string) (*model.PatientView, error) {
	status, ok := model.ParsePatientStatus(value)
	if !ok {
		return nil, apperrors.Validation(msgInvalidStatus, map[string]string{"status": msgInvalidStatus})
	}
	if err := s.repo.UpdateStatus(ctx, id, status, s.now()); err != nil {
		return nil, repoError(err)
	}
	return s.Get(ctx, id)
}

// Services lists the distinct layanan values, sorted.
func (s *Service) Services(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat data pasien", err)
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range all {
		name := strings.TrimSpace(p.Layanan)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// ByDate groups the filtered list by visit date in ascending order. Patients
// whose date cannot be parsed share one trailing group keyed by the raw value.
func (s *Service) ByDate(ctx context.Context, filter model.PatientFilter) ([]model.PatientDateGroup, error) {
	patients, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	loc := s.now().Location()

	groups := []model.PatientDateGroup{}
	index := map[string]int{}
	for _, p := range patients {
		key, day := p.Tanggal, "-"
		if visit, ok := p.VisitDate(loc); ok {
			key, day = visit.Format(model.DateLayout), model.IndonesianDayName(visit)
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, model.PatientDateGroup{Date: key, Day: day})
		}
		groups[i].Patients = append(groups[i].Patients, model.NewPatientView(p))
	}
	return groups, nil
}

// CountToday returns the total number of patients and those visiting today.
func (s *Service) CountToday(ctx context.Context) (int, int, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return 0, 0, apperrors.Internal("Gagal memuat data pasien", err)
	}
	now := s.now()
	today := 0
	for _, p := range all {
		if visit, ok := p.VisitDate(now.Location()); ok && model.SameDay(visit, now) {
			today++
		}
	}
	return len(all), today, nil
}

// Recent returns up to n patients by registration time, newest first.
func (s *Service) Recent(ctx context.Context, n int) ([]model.PatientView, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat data pasien", err)
	}
	sorted := append([]*model.Patient(nil), all...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].TanggalDaftar, sorted[j].TanggalDaftar
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	views := make([]model.PatientView, 0, len(sorted))
	for _, p := range sorted {
		views = append(views, model.NewPatientView(p))
	}
	return views, nil
}

func repoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("patient", err)
	}
	return apperrors.Internal("", err)
}
