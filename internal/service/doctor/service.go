package doctor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
	apperrors "github.com/BangJepp56/ini-dashboard-admin/pkg/errors"
)

const (
	msgNameRequired           = "Nama dokter harus diisi"
	msgSpecializationRequired = "Spesialisasi harus dipilih"
)

type Service struct {
	repo repository.DoctorRepository
	now  func() time.Time
}

func NewService(repo repository.DoctorRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// List matches search case-insensitively against name and specialization.
func (s *Service) List(ctx context.Context, filter model.DoctorFilter) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Gagal memuat data dokter", err)
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]*model.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Name), search) &&
			!strings.Contains(strings.ToLower(d.Specialization), search) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError(err)
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, req *model.DoctorRequest) (*model.Doctor, error) {
	name, specialization, err := validate(req)
	if err != nil {
		return nil, err
	}
	now := s.now()
	d := &model.Doctor{
		ID:             uuid.New(),
		Name:           name,
		Specialization: specialization,
		CreatedAt:      now,
		LastUpdated:    now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, apperrors.Internal("Gagal menyimpan data dokter", err)
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.DoctorRequest) (*model.Doctor, error) {
	name, specialization, err := validate(req)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError(err)
	}
	d.Name = name
	d.Specialization = specialization
	d.LastUpdated = s.now()
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, repoError(err)
	}
	return d, nil
}

// Delete removes only the doctor record. Its schedules are cleaned up the
// next time schedules are listed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(err)
	}
	return nil
}

func validate(req *model.DoctorRequest) (string, string, error) {
	name := strings.TrimSpace(req.Name)
	specialization := strings.TrimSpace(req.Specialization)
	if specialization == "" {
		specialization = strings.TrimSpace(req.Poly)
	}

	fields := map[string]string{}
	first := ""
	if name == "" {
		fields["name"] = msgNameRequired
		first = msgNameRequired
	}
	if specialization == "" {
		fields["specialization"] = msgSpecializationRequired
		if first == "" {
			first = msgSpecializationRequired
		}
	}
	if len(fields) > 0 {
		return "", "", apperrors.Validation(first, fields)
	}
	return name, specialization, nil
}

func repoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("doctor", err)
	}
	return apperrors.Internal("", err)
}
