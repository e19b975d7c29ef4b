// Package cached wraps repositories with a process-local read cache.
package cached

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository"
)

const doctorListKey = "doctors"

type doctorRepository struct {
	next  repository.DoctorRepository
	cache *cache.Cache
}

// NewDoctorRepository caches the full doctor list for ttl. Every write made
// through it drops the cached list; writes made by other processes show up
// once the entry expires.
func NewDoctorRepository(next repository.DoctorRepository, ttl, cleanupInterval time.Duration) repository.DoctorRepository {
	return &doctorRepository{
		next:  next,
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	if v, ok := r.cache.Get(doctorListKey); ok {
		return cloneDoctors(v.([]*model.Doctor)), nil
	}
	doctors, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(doctorListKey, cloneDoctors(doctors))
	return doctors, nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return r.next.Get(ctx, id)
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	defer r.cache.Delete(doctorListKey)
	return r.next.Create(ctx, doctor)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	defer r.cache.Delete(doctorListKey)
	return r.next.Update(ctx, doctor)
}

func (r *doctorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DoctorStatus, at time.Time) error {
	defer r.cache.Delete(doctorListKey)
	return r.next.UpdateStatus(ctx, id, status, at)
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.cache.Delete(doctorListKey)
	return r.next.Delete(ctx, id)
}

func cloneDoctors(in []*model.Doctor) []*model.Doctor {
	out := make([]*model.Doctor, len(in))
	for i, d := range in {
		c := *d
		out[i] = &c
	}
	return out
}
