package domain

import "time"

// RecommendationMode tells which endpoint of a sleep window is fixed.
// @Description sleepNow fixes the bedtime, wakeAt fixes the wake time.
type RecommendationMode string

const (
	// ModeSleepNow anchors on the moment the user goes to bed
	ModeSleepNow RecommendationMode = "sleepNow"
	// ModeWakeAt anchors on the target wake time
	ModeWakeAt RecommendationMode = "wakeAt"
)

// Recommendation is one candidate sleep window for a given number of cycles.
// @Description Scored sleep window candidate.
type Recommendation struct {
	Mode              RecommendationMode `json:"mode" example:"sleepNow"`
	Cycles            int                `json:"cycles" example:"5"`
	SleepAt           time.Time          `json:"sleep_at" example:"2024-01-15T23:00:00Z"`
	WakeAt            time.Time          `json:"wake_at" example:"2024-01-16T07:46:08Z"`
	TotalSleepMinutes int                `json:"total_sleep_minutes" example:"450"`
	// Time in bed: sleep corrected for efficiency plus latency
	TIBMinutes     float64 `json:"tib_minutes" example:"526.36"`
	Efficiency     float64 `json:"efficiency" example:"0.88"`
	LatencyMinutes int     `json:"latency_minutes" example:"15"`
	Score          float64 `json:"score" example:"24"`
	// ±15 minute tolerance around the computed endpoint
	WindowStart   time.Time `json:"window_start" example:"2024-01-16T07:31:08Z"`
	WindowEnd     time.Time `json:"window_end" example:"2024-01-16T08:01:08Z"`
	IsRecommended bool      `json:"is_recommended" example:"true"`
}

// WakeTimeOption is the sleep-now display record.
type WakeTimeOption struct {
	Cycles        int       `json:"cycles"`
	WakeAt        time.Time `json:"wake_at"`
	TotalMinutes  int       `json:"total_minutes"`
	TIBMinutes    float64   `json:"tib_minutes"`
	Efficiency    float64   `json:"efficiency"`
	IsRecommended bool      `json:"is_recommended"`
	WindowStart   time.Time `json:"window_start"`
	WindowEnd     time.Time `json:"window_end"`
}

// SleepTimeOption is the wake-at display record.
type SleepTimeOption struct {
	Cycles        int       `json:"cycles"`
	SleepAt       time.Time `json:"sleep_at"`
	TotalMinutes  int       `json:"total_minutes"`
	TIBMinutes    float64   `json:"tib_minutes"`
	Efficiency    float64   `json:"efficiency"`
	IsRecommended bool      `json:"is_recommended"`
	WindowStart   time.Time `json:"window_start"`
	WindowEnd     time.Time `json:"window_end"`
}

// SleepNowRequest is the request body for sleep-now recommendations.
// @Description Going to bed now (or at the given instant).
type SleepNowRequest struct {
	// Bedtime; defaults to the current server time
	At *time.Time `json:"at,omitempty" example:"2024-01-15T23:00:00Z"`
	// Candidate cycle counts; defaults to 3,4,5,6,7
	Cycles []int `json:"cycles,omitempty" validate:"omitempty,max=12,dive,min=1,max=12" example:"3,4,5,6,7"`
}

// WakeAtRequest is the request body for wake-at recommendations.
// @Description Must be awake at the given instant.
type WakeAtRequest struct {
	// Target wake time
	WakeAt time.Time `json:"wake_at" validate:"required" example:"2024-01-16T07:00:00Z"`
	// Candidate cycle counts; defaults to 3,4,5,6
	Cycles []int `json:"cycles,omitempty" validate:"omitempty,max=12,dive,min=1,max=12" example:"3,4,5,6"`
}

// ComputeRequest is the request body for the stateless recommendation endpoint.
// @Description Profile, mode and anchor supplied inline.
type ComputeRequest struct {
	Profile SaveProfileRequest `json:"profile"`
	Mode    RecommendationMode `json:"mode" validate:"required,oneof=sleepNow wakeAt" example:"wakeAt" enums:"sleepNow,wakeAt"`
	// Bedtime for sleepNow, wake time for wakeAt
	Anchor time.Time `json:"anchor" validate:"required" example:"2024-01-16T07:00:00Z"`
	Cycles []int     `json:"cycles,omitempty" validate:"omitempty,max=12,dive,min=1,max=12"`
}

// RecommendationResponse is the response body for recommendation endpoints.
// @Description Ranked recommendation batch.
type RecommendationResponse struct {
	Mode            RecommendationMode `json:"mode" example:"sleepNow"`
	Anchor          time.Time          `json:"anchor"`
	Derived         DerivedProfile     `json:"derived"`
	Recommendations []Recommendation   `json:"recommendations"`
}
