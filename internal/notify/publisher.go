// Package notify hands scheduled alerts over to the external notification
// scheduler. Delivery to devices happens downstream of the queue.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// EventType is the kind of change announced to the scheduler.
type EventType string

const (
	EventAlertScheduled EventType = "alert_scheduled"
	EventAlertCancelled EventType = "alert_cancelled"
	EventAllCancelled   EventType = "alerts_cancelled"
)

// AlertEvent is the JSON message consumed by the notification scheduler.
type AlertEvent struct {
	Type       EventType  `json:"type"`
	UserID     uuid.UUID  `json:"user_id"`
	AlertID    *uuid.UUID `json:"alert_id,omitempty"`
	Title      string     `json:"title,omitempty"`
	Body       string     `json:"body,omitempty"`
	FireAt     *time.Time `json:"fire_at,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Publisher delivers alert events to the scheduler.
type Publisher interface {
	Publish(ctx context.Context, event AlertEvent) error
	Close() error
}

// NoopPublisher accepts every event without sending it anywhere. It is used
// when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event AlertEvent) error {
	slog.DebugContext(ctx, "alert event dropped, no broker configured",
		"type", event.Type,
		"user_id", event.UserID)
	return nil
}

func (NoopPublisher) Close() error { return nil }
