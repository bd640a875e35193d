package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/sleep-cycles/internal/api/validation"
	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/blaisecz/sleep-cycles/internal/service"
	"github.com/blaisecz/sleep-cycles/pkg/problem"
)

type RecommendationHandler struct {
	service service.RecommendationService
}

func NewRecommendationHandler(service service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// SleepNow handles POST /v1/users/{userId}/recommendations/sleep-now
// @Summary Wake times for going to bed now
// @Description Ranks wake times for 3 to 7 sleep cycles starting at "at" (default: server time). The body may be empty.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.SleepNowRequest false "Bedtime and candidate cycles"
// @Success 200 {object} domain.RecommendationResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/recommendations/sleep-now [post]
func (h *RecommendationHandler) SleepNow(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req domain.SleepNowRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	resp, err := h.service.SleepNow(r.Context(), userID, &req)
	h.respond(w, resp, err)
}

// WakeAt handles POST /v1/users/{userId}/recommendations/wake-at
// @Summary Bedtimes for a target wake time
// @Description Ranks bedtimes for 3 to 6 sleep cycles ending at wake_at.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.WakeAtRequest true "Wake time and candidate cycles"
// @Success 200 {object} domain.RecommendationResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/recommendations/wake-at [post]
func (h *RecommendationHandler) WakeAt(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req domain.WakeAtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	resp, err := h.service.WakeAt(r.Context(), userID, &req)
	h.respond(w, resp, err)
}

// Compute handles POST /v1/recommendations
// @Summary Stateless recommendations
// @Description Ranks sleep windows for a profile supplied inline. Nothing is stored.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body domain.ComputeRequest true "Profile, mode and anchor"
// @Success 200 {object} domain.RecommendationResponse
// @Failure 400 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /recommendations [post]
func (h *RecommendationHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req domain.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	resp, err := h.service.Compute(r.Context(), &req)
	h.respond(w, resp, err)
}

func (h *RecommendationHandler) respond(w http.ResponseWriter, resp *domain.RecommendationResponse, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute recommendations").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
