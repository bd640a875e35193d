package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/blaisecz/sleep-cycles/internal/api/validation"
	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/blaisecz/sleep-cycles/internal/service"
	"github.com/blaisecz/sleep-cycles/pkg/pagination"
	"github.com/blaisecz/sleep-cycles/pkg/problem"
)

type AlertHandler struct {
	service service.AlertService
}

func NewAlertHandler(service service.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

// CancelAllResponse reports how many alerts were removed.
type CancelAllResponse struct {
	Cancelled int64 `json:"cancelled" example:"3"`
}

// Schedule handles POST /v1/users/{userId}/alerts
// @Summary Schedule a wake-up alert
// @Description Schedules an alert at the midpoint of the chosen recommendation window. Title and body default to a wake-up message showing the window in the user's timezone.
// @Tags alerts
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.ScheduleAlertRequest true "Recommendation window"
// @Success 201 {object} domain.AlertResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem
// @Failure 502 {object} problem.Problem "Scheduler unavailable"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/alerts [post]
func (h *AlertHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req domain.ScheduleAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	alert, err := h.service.Schedule(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.ValidationError("Alert window is invalid", []problem.FieldError{
				{Field: "window_end", Message: "must not be before window_start"},
			}).Write(w)
			return
		}
		if errors.Is(err, domain.ErrSchedulerUnavailable) {
			problem.BadGateway("Alert could not be handed to the scheduler").Write(w)
			return
		}
		problem.InternalError("Failed to schedule alert").Write(w)
		return
	}

	writeJSON(w, http.StatusCreated, alert.ToResponse())
}

// List handles GET /v1/users/{userId}/alerts
// @Summary List scheduled alerts
// @Description Alerts ordered by fire time, oldest first, with cursor pagination.
// @Tags alerts
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param from query string false "Only alerts firing at or after this instant (RFC3339)" format(date-time)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.AlertListResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/alerts [get]
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	filter, fieldErrors := parseAlertFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list alerts").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Cancel handles DELETE /v1/users/{userId}/alerts/{alertId}
// @Summary Cancel one alert
// @Tags alerts
// @Param userId path string true "User UUID" format(uuid)
// @Param alertId path string true "Alert UUID" format(uuid)
// @Success 204
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "Alert not found"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/alerts/{alertId} [delete]
func (h *AlertHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	alertID, ok := parseUUIDParam(w, r, "alertId", "Invalid alert ID format")
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), userID, alertID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Alert not found").Write(w)
			return
		}
		problem.InternalError("Failed to cancel alert").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CancelAll handles DELETE /v1/users/{userId}/alerts
// @Summary Cancel all alerts
// @Tags alerts
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} CancelAllResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/alerts [delete]
func (h *AlertHandler) CancelAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	n, err := h.service.CancelAll(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to cancel alerts").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, CancelAllResponse{Cancelled: n})
}

func parseAlertFilter(r *http.Request) (domain.AlertFilter, []problem.FieldError) {
	var filter domain.AlertFilter
	var fieldErrors []problem.FieldError

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "from",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.From = &from
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > pagination.MaxLimit {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be an integer between 1 and 100",
			})
		} else {
			filter.Limit = limit
		}
	}

	if cursor := r.URL.Query().Get("cursor"); cursor != "" {
		if _, err := pagination.DecodeCursor(cursor); err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "cursor",
				Message: "is not a valid cursor",
			})
		} else {
			filter.Cursor = cursor
		}
	}

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}
	return filter, nil
}
