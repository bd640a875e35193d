package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/blaisecz/sleep-cycles/internal/notify"
	"github.com/blaisecz/sleep-cycles/internal/repository"
	"github.com/blaisecz/sleep-cycles/internal/sleepcycle"
	"github.com/blaisecz/sleep-cycles/internal/telemetry"
	"github.com/blaisecz/sleep-cycles/pkg/pagination"
	"github.com/google/uuid"
)

const (
	DefaultAlertTitle      = "Time to wake up!"
	defaultAlertBodyPrefix = "Ideal window: "
)

// AlertService schedules point-in-time alerts from recommendation windows.
type AlertService interface {
	Schedule(ctx context.Context, userID uuid.UUID, req *domain.ScheduleAlertRequest) (*domain.Alert, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.AlertFilter) (*domain.AlertListResponse, error)
	Cancel(ctx context.Context, userID, alertID uuid.UUID) error
	CancelAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

type alertService struct {
	alertRepo repository.AlertRepository
	userRepo  repository.UserRepository
	publisher notify.Publisher
}

// NewAlertService creates a new AlertService.
func NewAlertService(alertRepo repository.AlertRepository, userRepo repository.UserRepository, publisher notify.Publisher) AlertService {
	return &alertService{
		alertRepo: alertRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Schedule stores an alert firing at the window midpoint and hands it to the
// scheduler. If the hand-off fails the stored alert is removed again.
func (s *alertService) Schedule(ctx context.Context, userID uuid.UUID, req *domain.ScheduleAlertRequest) (*domain.Alert, error) {
	if req.WindowEnd.Before(req.WindowStart) {
		return nil, fmt.Errorf("%w: window ends before it starts", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = DefaultAlertTitle
	}
	body := req.Body
	if body == "" {
		body = defaultAlertBodyPrefix + sleepcycle.FormatTimeRange(req.WindowStart, req.WindowEnd, user.Location())
	}

	alert := &domain.Alert{
		ID:          uuid.New(),
		UserID:      userID,
		Mode:        req.Mode,
		Cycles:      req.Cycles,
		Title:       title,
		Body:        body,
		FireAt:      sleepcycle.WindowMidpoint(req.WindowStart, req.WindowEnd),
		WindowStart: req.WindowStart,
		WindowEnd:   req.WindowEnd,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		telemetry.AlertEvents.WithLabelValues("schedule", "error").Inc()
		return nil, fmt.Errorf("create alert: %w", err)
	}

	fireAt := alert.FireAt
	err = s.publisher.Publish(ctx, notify.AlertEvent{
		Type:       notify.EventAlertScheduled,
		UserID:     userID,
		AlertID:    &alert.ID,
		Title:      alert.Title,
		Body:       alert.Body,
		FireAt:     &fireAt,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		telemetry.AlertEvents.WithLabelValues("schedule", "unavailable").Inc()
		if delErr := s.alertRepo.Delete(ctx, userID, alert.ID); delErr != nil {
			slog.ErrorContext(ctx, "failed to roll back unscheduled alert", "alert_id", alert.ID, "error", delErr)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSchedulerUnavailable, err)
	}

	telemetry.AlertEvents.WithLabelValues("schedule", "ok").Inc()
	slog.InfoContext(ctx, "alert scheduled", "user_id", userID, "alert_id", alert.ID, "fire_at", alert.FireAt)
	return alert, nil
}

func (s *alertService) List(ctx context.Context, userID uuid.UUID, filter domain.AlertFilter) (*domain.AlertListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	alerts, err := s.alertRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	page, hasMore := pagination.Trim(alerts, filter.Limit)

	data := make([]domain.AlertResponse, len(page))
	for i := range page {
		data[i] = page[i].ToResponse()
	}

	resp := &domain.AlertListResponse{
		Data:       data,
		Pagination: domain.PaginationResponse{HasMore: hasMore},
	}
	if hasMore && len(page) > 0 {
		last := page[len(page)-1]
		cursor := pagination.Cursor{ID: last.ID, FireAt: last.FireAt}
		resp.Pagination.NextCursor = cursor.Encode()
	}
	return resp, nil
}

// Cancel removes one alert. Notifying the scheduler is best effort.
func (s *alertService) Cancel(ctx context.Context, userID, alertID uuid.UUID) error {
	if err := s.alertRepo.Delete(ctx, userID, alertID); err != nil {
		return err
	}

	err := s.publisher.Publish(ctx, notify.AlertEvent{
		Type:       notify.EventAlertCancelled,
		UserID:     userID,
		AlertID:    &alertID,
		OccurredAt: time.Now().UTC(),
	})
	s.logCancel(ctx, "cancel", userID, err)
	return nil
}

// CancelAll removes every alert the user has and returns how many were removed.
func (s *alertService) CancelAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrNotFound
	}

	n, err := s.alertRepo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, err
	}

	err = s.publisher.Publish(ctx, notify.AlertEvent{
		Type:       notify.EventAllCancelled,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
	s.logCancel(ctx, "cancel_all", userID, err)
	return n, nil
}

func (s *alertService) logCancel(ctx context.Context, action string, userID uuid.UUID, publishErr error) {
	if publishErr != nil {
		telemetry.AlertEvents.WithLabelValues(action, "unavailable").Inc()
		slog.WarnContext(ctx, "alert cancellation not delivered to scheduler",
			"action", action,
			"user_id", userID,
			"error", publishErr)
		return
	}
	telemetry.AlertEvents.WithLabelValues(action, "ok").Inc()
}
