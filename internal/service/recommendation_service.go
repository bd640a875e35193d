package service

import (
	"context"
	"time"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/blaisecz/sleep-cycles/internal/sleepcycle"
	"github.com/blaisecz/sleep-cycles/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RecommendationService computes ranked sleep windows for users.
type RecommendationService interface {
	// SleepNow ranks wake times for a user going to bed at req.At (default: now).
	SleepNow(ctx context.Context, userID uuid.UUID, req *domain.SleepNowRequest) (*domain.RecommendationResponse, error)
	// WakeAt ranks bedtimes for a user who must be up at req.WakeAt.
	WakeAt(ctx context.Context, userID uuid.UUID, req *domain.WakeAtRequest) (*domain.RecommendationResponse, error)
	// Compute ranks windows for an inline profile without touching storage.
	Compute(ctx context.Context, req *domain.ComputeRequest) (*domain.RecommendationResponse, error)
}

type recommendationService struct {
	profiles ProfileService
	now      func() time.Time
}

// NewRecommendationService creates a new RecommendationService. A nil clock
// defaults to time.Now.
func NewRecommendationService(profiles ProfileService, now func() time.Time) RecommendationService {
	if now == nil {
		now = time.Now
	}
	return &recommendationService{
		profiles: profiles,
		now:      now,
	}
}

func (s *recommendationService) SleepNow(ctx context.Context, userID uuid.UUID, req *domain.SleepNowRequest) (*domain.RecommendationResponse, error) {
	profile, _, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	anchor := s.now()
	if req.At != nil {
		anchor = *req.At
	}
	cycles := req.Cycles
	if len(cycles) == 0 {
		cycles = sleepcycle.ExtendedCycles
	}

	return s.recommend(ctx, "user", profile, domain.ModeSleepNow, anchor, cycles), nil
}

func (s *recommendationService) WakeAt(ctx context.Context, userID uuid.UUID, req *domain.WakeAtRequest) (*domain.RecommendationResponse, error) {
	profile, _, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.recommend(ctx, "user", profile, domain.ModeWakeAt, req.WakeAt, req.Cycles), nil
}

func (s *recommendationService) Compute(ctx context.Context, req *domain.ComputeRequest) (*domain.RecommendationResponse, error) {
	profile := req.Profile.ToProfile(uuid.Nil)
	return s.recommend(ctx, "inline", profile, req.Mode, req.Anchor, req.Cycles), nil
}

func (s *recommendationService) recommend(ctx context.Context, source string, profile domain.SleepProfile, mode domain.RecommendationMode, anchor time.Time, cycles []int) *domain.RecommendationResponse {
	tracer := otel.Tracer("sleep-cycles-api/recommendations")
	_, span := tracer.Start(ctx, "RecommendationService.recommend",
		trace.WithAttributes(
			attribute.String("recommendation.mode", string(mode)),
			attribute.String("recommendation.source", source),
			attribute.String("recommendation.anchor", anchor.Format(time.RFC3339)),
			attribute.IntSlice("recommendation.cycles", cycles),
		),
	)
	defer span.End()

	derived := sleepcycle.BuildDerivedProfile(profile)
	recs := sleepcycle.MarkRecommended(sleepcycle.Generate(derived, mode, anchor, cycles))

	span.SetAttributes(
		attribute.Int("profile.cycle_minutes", derived.AdjustedCycleMinutes),
		attribute.Float64("profile.sleep_efficiency", derived.SleepEfficiency),
		attribute.Int("profile.latency_minutes", derived.LatencyMinutes),
	)

	telemetry.RecommendationBatches.WithLabelValues(string(mode), source).Inc()
	var best []int
	for _, r := range recs {
		if r.IsRecommended {
			best = append(best, r.Cycles)
			telemetry.RecommendedCycles.WithLabelValues(string(mode)).Observe(float64(r.Cycles))
		}
	}
	span.SetAttributes(attribute.IntSlice("recommendation.recommended_cycles", best))

	return &domain.RecommendationResponse{
		Mode:            mode,
		Anchor:          anchor,
		Derived:         derived,
		Recommendations: recs,
	}
}
