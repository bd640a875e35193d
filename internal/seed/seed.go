package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blaisecz/sleep-cycles/internal/config"
	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sample pairs a seeded user with the profile saved for it. A nil profile
// leaves the user on the default profile.
type Sample struct {
	User    domain.User
	Profile *domain.SleepProfile
}

// Samples returns the fixed demo data. IDs are stable so reseeding is a no-op.
func Samples() []Sample {
	teen := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	adult := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	senior := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	fresh := uuid.MustParse("44444444-4444-4444-4444-444444444444")

	return []Sample{
		{
			User:    domain.User{ID: teen, Timezone: "Europe/Amsterdam", OnboardingCompleted: true},
			Profile: &domain.SleepProfile{UserID: teen, Age: 16, WeightKg: 55, HeightCm: 165, Gender: domain.GenderFemale},
		},
		{
			User:    domain.User{ID: adult, Timezone: "America/New_York", OnboardingCompleted: true},
			Profile: &domain.SleepProfile{UserID: adult, Age: 35, WeightKg: 92, HeightCm: 178, Gender: domain.GenderMale},
		},
		{
			User:    domain.User{ID: senior, Timezone: "Asia/Tokyo", OnboardingCompleted: true},
			Profile: &domain.SleepProfile{UserID: senior, Age: 68, WeightKg: 64, HeightCm: 160, Gender: domain.GenderOther},
		},
		{
			User: domain.User{ID: fresh, Timezone: "Australia/Sydney"},
		},
	}
}

// Run seeds the database with sample users and profiles. Safe to call multiple times.
func Run(ctx context.Context, db *gorm.DB) error {
	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	db = db.WithContext(ctx)
	for _, s := range Samples() {
		user := s.User
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}

		if s.Profile == nil {
			continue
		}
		profile := *s.Profile
		if err := db.Where("user_id = ?", profile.UserID).FirstOrCreate(&profile).Error; err != nil {
			return fmt.Errorf("failed to create profile for %s: %w", profile.UserID, err)
		}
	}

	slog.InfoContext(ctx, "seed completed", "users", len(Samples()))
	return nil
}
