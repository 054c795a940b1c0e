package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Profile, error)
	UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) (domain.Profile, error)
}

type ProfileService struct {
	repo ProfileRepository
}

func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return profile, nil
}

func (s *ProfileService) UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) (domain.Profile, error) {
	profile, err := s.repo.UpdateNames(ctx, id, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.UpdateNames -> %w", err)
	}

	return profile, nil
}
