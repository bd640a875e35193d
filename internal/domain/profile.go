package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the biological profile category used by the latency heuristic.
// @Description Gender: male, female or other.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// BMICategory is the WHO-style band a BMI value falls into.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// SleepProfile holds the biometric inputs a user saves once and reuses for
// every calculation.
type SleepProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Age       int       `gorm:"type:smallint;not null" json:"age"`
	WeightKg  float64   `gorm:"not null" json:"weight_kg"`
	HeightCm  float64   `gorm:"not null" json:"height_cm"`
	Gender    Gender    `gorm:"type:varchar(10);not null" json:"gender"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepProfile) TableName() string {
	return "sleep_profiles"
}

// DefaultSleepProfile is served to users who have not saved a profile yet.
func DefaultSleepProfile(userID uuid.UUID) SleepProfile {
	return SleepProfile{
		UserID:   userID,
		Age:      30,
		WeightKg: 70,
		HeightCm: 170,
		Gender:   GenderMale,
	}
}

// DerivedProfile contains the sleep parameters computed from a SleepProfile.
// It is never persisted.
// @Description Profile-adjusted sleep parameters.
type DerivedProfile struct {
	// Body mass index (kg/m²), 0 when height is unknown
	BMI float64 `json:"bmi" example:"24.22"`
	// BMI band
	BMICategory BMICategory `json:"bmi_category" example:"normal"`
	// Length of one sleep cycle in minutes
	AdjustedCycleMinutes int `json:"adjusted_cycle_minutes" example:"90"`
	// Fraction of time in bed actually asleep
	SleepEfficiency float64 `json:"sleep_efficiency" example:"0.88"`
	// Minutes needed to fall asleep
	LatencyMinutes int `json:"latency_minutes" example:"15"`
}

// SaveProfileRequest is the request body for saving a sleep profile.
// @Description Biometric profile used to personalise recommendations.
type SaveProfileRequest struct {
	// Age in whole years (1-120)
	Age int `json:"age" validate:"required,min=1,max=120" example:"30" minimum:"1" maximum:"120"`
	// Body weight in kilograms
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0" example:"70"`
	// Body height in centimetres
	HeightCm float64 `json:"height_cm" validate:"required,gt=0" example:"170"`
	// Gender: male, female or other
	Gender Gender `json:"gender" validate:"required,oneof=male female other" example:"male" enums:"male,female,other"`
}

// ToProfile converts the request into a profile owned by userID.
func (r *SaveProfileRequest) ToProfile(userID uuid.UUID) SleepProfile {
	return SleepProfile{
		UserID:   userID,
		Age:      r.Age,
		WeightKg: r.WeightKg,
		HeightCm: r.HeightCm,
		Gender:   r.Gender,
	}
}

// ProfileResponse is the response body for profile endpoints.
// @Description Stored profile together with its derived parameters.
type ProfileResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Age      int       `json:"age" example:"30"`
	WeightKg float64   `json:"weight_kg" example:"70"`
	HeightCm float64   `json:"height_cm" example:"170"`
	Gender   Gender    `json:"gender" example:"male"`
	// True when the user has not saved a profile and defaults are shown
	IsDefault bool           `json:"is_default" example:"false"`
	Derived   DerivedProfile `json:"derived"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}
