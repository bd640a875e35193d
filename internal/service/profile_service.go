package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/blaisecz/sleep-cycles/internal/repository"
	"github.com/blaisecz/sleep-cycles/internal/sleepcycle"
	"github.com/google/uuid"
)

// ProfileService reads and writes users' sleep profiles.
type ProfileService interface {
	// Get returns the stored profile with its derived parameters, or the
	// default profile when the user has not saved one.
	Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileResponse, error)
	// Save validates ownership and persists the profile.
	Save(ctx context.Context, userID uuid.UUID, req *domain.SaveProfileRequest) (*domain.ProfileResponse, error)
	// Load returns the raw profile to compute with and whether it is the default.
	Load(ctx context.Context, userID uuid.UUID) (domain.SleepProfile, bool, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (s *profileService) Load(ctx context.Context, userID uuid.UUID) (domain.SleepProfile, bool, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return domain.SleepProfile{}, false, err
	}
	if !exists {
		return domain.SleepProfile{}, false, domain.ErrNotFound
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultSleepProfile(userID), true, nil
		}
		return domain.SleepProfile{}, false, fmt.Errorf("load profile: %w", err)
	}
	return *profile, false, nil
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*domain.ProfileResponse, error) {
	profile, isDefault, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(profile, isDefault), nil
}

func (s *profileService) Save(ctx context.Context, userID uuid.UUID, req *domain.SaveProfileRequest) (*domain.ProfileResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	profile := req.ToProfile(userID)
	if err := s.profileRepo.Save(ctx, &profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	slog.InfoContext(ctx, "sleep profile saved", "user_id", userID, "age", profile.Age, "gender", profile.Gender)
	return toProfileResponse(profile, false), nil
}

func toProfileResponse(p domain.SleepProfile, isDefault bool) *domain.ProfileResponse {
	resp := &domain.ProfileResponse{
		UserID:    p.UserID,
		Age:       p.Age,
		WeightKg:  p.WeightKg,
		HeightCm:  p.HeightCm,
		Gender:    p.Gender,
		IsDefault: isDefault,
		Derived:   sleepcycle.BuildDerivedProfile(p),
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
