package sleepcycle

import (
	"math"
	"time"

	"github.com/blaisecz/sleep-cycles/internal/domain"
)

const (
	// WindowMinutes is the tolerance on each side of the computed endpoint.
	WindowMinutes = 15

	idealMinHours = 7
	idealMaxHours = 9
	shortHours    = 6

	idealBonus   = 20
	shortPenalty = 10

	efficiencyPivot  = 0.8
	efficiencyWeight = 50
)

var (
	// DefaultCycles is used when the caller supplies no candidates.
	DefaultCycles = []int{3, 4, 5, 6}
	// ExtendedCycles adds a seven-cycle option for the sleep-now flow.
	ExtendedCycles = []int{3, 4, 5, 6, 7}
)

// Generate builds one unranked recommendation per candidate cycle count.
// In sleepNow mode anchor is the bedtime, in wakeAt mode it is the wake time.
// An empty cycles slice falls back to DefaultCycles.
func Generate(derived domain.DerivedProfile, mode domain.RecommendationMode, anchor time.Time, cycles []int) []domain.Recommendation {
	if len(cycles) == 0 {
		cycles = DefaultCycles
	}

	recs := make([]domain.Recommendation, 0, len(cycles))
	for _, n := range cycles {
		totalSleepMinutes := n * derived.AdjustedCycleMinutes
		tibMinutes := float64(totalSleepMinutes)/derived.SleepEfficiency + float64(derived.LatencyMinutes)

		var sleepAt, wakeAt, center time.Time
		if mode == domain.ModeWakeAt {
			wakeAt = anchor
			sleepAt = addMinutes(anchor, -tibMinutes)
			center = sleepAt
		} else {
			sleepAt = anchor
			wakeAt = addMinutes(anchor, tibMinutes)
			center = wakeAt
		}

		recs = append(recs, domain.Recommendation{
			Mode:              mode,
			Cycles:            n,
			SleepAt:           sleepAt,
			WakeAt:            wakeAt,
			TotalSleepMinutes: totalSleepMinutes,
			TIBMinutes:        tibMinutes,
			Efficiency:        derived.SleepEfficiency,
			LatencyMinutes:    derived.LatencyMinutes,
			Score:             computeScore(totalSleepMinutes, derived.SleepEfficiency),
			WindowStart:       addMinutes(center, -WindowMinutes),
			WindowEnd:         addMinutes(center, WindowMinutes),
		})
	}
	return recs
}

// MarkRecommended flags every recommendation whose score equals the batch
// maximum. Equality is exact, so tied candidates are all flagged.
func MarkRecommended(recs []domain.Recommendation) []domain.Recommendation {
	best := math.Inf(-1)
	for _, r := range recs {
		best = math.Max(best, r.Score)
	}
	for i := range recs {
		recs[i].IsRecommended = recs[i].Score == best
	}
	return recs
}

// Recommend derives the profile parameters, generates and ranks candidates.
func Recommend(p domain.SleepProfile, mode domain.RecommendationMode, anchor time.Time, cycles []int) []domain.Recommendation {
	return MarkRecommended(Generate(BuildDerivedProfile(p), mode, anchor, cycles))
}

// SleepNow ranks wake times for going to bed at now.
func SleepNow(p domain.SleepProfile, now time.Time, cycles []int) []domain.Recommendation {
	return Recommend(p, domain.ModeSleepNow, now, cycles)
}

// WakeAt ranks bedtimes for waking at wakeAt.
func WakeAt(p domain.SleepProfile, wakeAt time.Time, cycles []int) []domain.Recommendation {
	return Recommend(p, domain.ModeWakeAt, wakeAt, cycles)
}

// WakeTimeOptions projects sleep-now recommendations onto display records.
func WakeTimeOptions(p domain.SleepProfile, now time.Time, cycles []int) []domain.WakeTimeOption {
	recs := SleepNow(p, now, cycles)
	opts := make([]domain.WakeTimeOption, len(recs))
	for i, r := range recs {
		opts[i] = domain.WakeTimeOption{
			Cycles:        r.Cycles,
			WakeAt:        r.WakeAt,
			TotalMinutes:  r.TotalSleepMinutes,
			TIBMinutes:    r.TIBMinutes,
			Efficiency:    r.Efficiency,
			IsRecommended: r.IsRecommended,
			WindowStart:   r.WindowStart,
			WindowEnd:     r.WindowEnd,
		}
	}
	return opts
}

// SleepTimeOptions projects wake-at recommendations onto display records.
func SleepTimeOptions(p domain.SleepProfile, wakeAt time.Time, cycles []int) []domain.SleepTimeOption {
	recs := WakeAt(p, wakeAt, cycles)
	opts := make([]domain.SleepTimeOption, len(recs))
	for i, r := range recs {
		opts[i] = domain.SleepTimeOption{
			Cycles:        r.Cycles,
			SleepAt:       r.SleepAt,
			TotalMinutes:  r.TotalSleepMinutes,
			TIBMinutes:    r.TIBMinutes,
			Efficiency:    r.Efficiency,
			IsRecommended: r.IsRecommended,
			WindowStart:   r.WindowStart,
			WindowEnd:     r.WindowEnd,
		}
	}
	return opts
}

// WindowMidpoint returns the instant halfway between start and end.
func WindowMidpoint(start, end time.Time) time.Time {
	return start.Add(end.Sub(start) / 2)
}

// computeScore rewards 7-9 hours of sleep, penalises less than 6 and adds a
// linear efficiency term centred on 0.8.
func computeScore(totalSleepMinutes int, efficiency float64) float64 {
	hours := float64(totalSleepMinutes) / 60
	score := 0.0

	if hours >= idealMinHours && hours <= idealMaxHours {
		score += idealBonus
	} else if hours < shortHours {
		score -= shortPenalty
	}

	score += (efficiency - efficiencyPivot) * efficiencyWeight

	return score
}

func addMinutes(t time.Time, minutes float64) time.Time {
	return t.Add(time.Duration(minutes * float64(time.Minute)))
}
