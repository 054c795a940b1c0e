package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/repository/dao"
)

type ProfileDAO interface {
	Insert(ctx context.Context, profile dao.Profile) (dao.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Profile, error)
	FindByEmail(ctx context.Context, email string) (dao.Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dao.Profile, error)
	UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) (dao.Profile, error)
}

type ProfileRepository struct {
	dao ProfileDAO
}

func NewProfileRepository(dao ProfileDAO) *ProfileRepository {
	return &ProfileRepository{
		dao: dao,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	created, err := r.dao.Insert(ctx, dao.Profile{
		Email:     profile.Email,
		Password:  profile.Password,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (domain.Profile, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// FindByIDs returns the profiles that exist, keyed by id. Missing ids are
// simply absent from the map.
func (r *ProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	profiles := make(map[uuid.UUID]domain.Profile, len(found))
	for _, p := range found {
		profiles[p.ID] = r.daoToDomain(p)
	}

	return profiles, nil
}

func (r *ProfileRepository) UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) (domain.Profile, error) {
	updated, err := r.dao.UpdateNames(ctx, id, firstName, lastName)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.dao.UpdateNames -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ProfileRepository) daoToDomain(p dao.Profile) domain.Profile {
	return domain.Profile{
		ID:        p.ID,
		Email:     p.Email,
		Password:  p.Password,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		IsAdmin:   p.IsAdmin,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
