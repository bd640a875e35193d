package domain

import (
	"time"

	"github.com/google/uuid"
)

// Alert is a point-in-time reminder scheduled from a recommendation window.
type Alert struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index:idx_alerts_user_fire" json:"user_id"`
	Mode        RecommendationMode `gorm:"type:varchar(10)" json:"mode,omitempty"`
	Cycles      int                `gorm:"type:smallint" json:"cycles,omitempty"`
	Title       string             `gorm:"type:varchar(120);not null" json:"title"`
	Body        string             `gorm:"type:varchar(500);not null" json:"body"`
	FireAt      time.Time          `gorm:"not null;index:idx_alerts_user_fire" json:"fire_at"`
	WindowStart time.Time          `gorm:"not null" json:"window_start"`
	WindowEnd   time.Time          `gorm:"not null" json:"window_end"`
	CreatedAt   time.Time          `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Alert) TableName() string {
	return "alerts"
}

// ScheduleAlertRequest is the request body for scheduling an alert.
// @Description Window picked from a recommendation; the alert fires at its midpoint.
type ScheduleAlertRequest struct {
	WindowStart time.Time `json:"window_start" validate:"required" example:"2024-01-16T07:31:08Z"`
	WindowEnd   time.Time `json:"window_end" validate:"required,gtefield=WindowStart" example:"2024-01-16T08:01:08Z"`
	// Optional; defaults to a wake-up message
	Title string `json:"title,omitempty" validate:"omitempty,max=120" example:"Time to wake up!"`
	// Optional; defaults to the window rendered in the user's timezone
	Body   string             `json:"body,omitempty" validate:"omitempty,max=500"`
	Mode   RecommendationMode `json:"mode,omitempty" validate:"omitempty,oneof=sleepNow wakeAt" example:"sleepNow"`
	Cycles int                `json:"cycles,omitempty" validate:"omitempty,min=1,max=12" example:"5"`
}

// AlertResponse is the response body for alert endpoints.
// @Description Scheduled alert.
type AlertResponse struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	Mode        RecommendationMode `json:"mode,omitempty"`
	Cycles      int                `json:"cycles,omitempty"`
	Title       string             `json:"title"`
	Body        string             `json:"body"`
	FireAt      time.Time          `json:"fire_at"`
	WindowStart time.Time          `json:"window_start"`
	WindowEnd   time.Time          `json:"window_end"`
	CreatedAt   time.Time          `json:"created_at"`
}

func (a *Alert) ToResponse() AlertResponse {
	return AlertResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Mode:        a.Mode,
		Cycles:      a.Cycles,
		Title:       a.Title,
		Body:        a.Body,
		FireAt:      a.FireAt,
		WindowStart: a.WindowStart,
		WindowEnd:   a.WindowEnd,
		CreatedAt:   a.CreatedAt,
	}
}

// AlertListResponse is the response body for listing alerts.
type AlertListResponse struct {
	Data       []AlertResponse    `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// AlertFilter contains filter parameters for listing alerts
type AlertFilter struct {
	From   *time.Time
	Limit  int
	Cursor string
}
