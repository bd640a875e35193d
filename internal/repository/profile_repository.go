package repository

import (
	"context"
	"errors"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository stores one sleep profile per user.
type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.SleepProfile, error)
	Save(ctx context.Context, profile *domain.SleepProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.SleepProfile, error) {
	var profile domain.SleepProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Save inserts the profile or overwrites the existing row for the same user.
func (r *profileRepository) Save(ctx context.Context, profile *domain.SleepProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"age", "weight_kg", "height_cm", "gender", "updated_at"}),
		}).
		Create(profile).Error
}
