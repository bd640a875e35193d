package sleepcycle

import (
	"math"
	"testing"
	"time"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adultMale = domain.SleepProfile{Age: 30, WeightKg: 70, HeightCm: 170, Gender: domain.GenderMale}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func TestSleepNow_FiveCycles(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

	recs := SleepNow(adultMale, now, []int{5})
	require.Len(t, recs, 1)
	r := recs[0]

	wantTIB := 450/0.88 + 15
	assert.Equal(t, domain.ModeSleepNow, r.Mode)
	assert.Equal(t, 5, r.Cycles)
	assert.Equal(t, 450, r.TotalSleepMinutes)
	assert.InDelta(t, wantTIB, r.TIBMinutes, 1e-9)
	assert.Equal(t, 0.88, r.Efficiency)
	assert.Equal(t, 15, r.LatencyMinutes)
	assert.InDelta(t, 24.0, r.Score, 1e-9)
	assert.True(t, r.IsRecommended, "single candidate is always the best")

	assert.True(t, r.SleepAt.Equal(now))
	assert.Equal(t, minutes(r.TIBMinutes), r.WakeAt.Sub(now))
	assert.InDelta(t, r.TIBMinutes, r.WakeAt.Sub(now).Minutes(), 1e-6)
}

func TestSleepNow_Window(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

	for _, r := range SleepNow(adultMale, now, ExtendedCycles) {
		assert.Equal(t, 15*time.Minute, r.WakeAt.Sub(r.WindowStart), "cycles=%d", r.Cycles)
		assert.Equal(t, 15*time.Minute, r.WindowEnd.Sub(r.WakeAt), "cycles=%d", r.Cycles)
		assert.True(t, WindowMidpoint(r.WindowStart, r.WindowEnd).Equal(r.WakeAt))
	}
}

func TestWakeAt_Symmetry(t *testing.T) {
	wakeAt := time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC)

	recs := WakeAt(adultMale, wakeAt, []int{5})
	require.Len(t, recs, 1)
	r := recs[0]

	assert.Equal(t, domain.ModeWakeAt, r.Mode)
	assert.True(t, r.WakeAt.Equal(wakeAt))
	assert.True(t, r.SleepAt.Add(minutes(r.TIBMinutes)).Equal(wakeAt))
	assert.True(t, r.SleepAt.Before(wakeAt))
}

func TestWakeAt_WindowCentersOnBedtime(t *testing.T) {
	wakeAt := time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC)

	for _, r := range WakeAt(adultMale, wakeAt, DefaultCycles) {
		assert.Equal(t, 15*time.Minute, r.SleepAt.Sub(r.WindowStart))
		assert.Equal(t, 15*time.Minute, r.WindowEnd.Sub(r.SleepAt))
	}
}

func TestRecommend_Scores(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

	recs := SleepNow(adultMale, now, ExtendedCycles)
	require.Len(t, recs, 5)

	want := map[int]struct {
		total int
		score float64
	}{
		3: {270, -6},
		4: {360, 4},
		5: {450, 24},
		6: {540, 24},
		7: {630, 4},
	}
	for _, r := range recs {
		w := want[r.Cycles]
		assert.Equal(t, w.total, r.TotalSleepMinutes, "cycles=%d", r.Cycles)
		assert.InDelta(t, w.score, r.Score, 1e-9, "cycles=%d", r.Cycles)
	}
}

func TestMarkRecommended_Ties(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

	// 7.5 h and exactly 9 h both earn the full bonus and tie on score.
	recs := SleepNow(adultMale, now, DefaultCycles)
	got := map[int]bool{}
	for _, r := range recs {
		got[r.Cycles] = r.IsRecommended
	}
	assert.Equal(t, map[int]bool{3: false, 4: false, 5: true, 6: true}, got)
}

func TestMarkRecommended_SoleBest(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

	recs := SleepNow(adultMale, now, []int{3, 4, 5})
	for _, r := range recs {
		assert.Equal(t, r.Cycles == 5, r.IsRecommended, "cycles=%d", r.Cycles)
	}
}

func TestMarkRecommended_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Empty(t, MarkRecommended(nil))
	})
}

func TestGenerate_DefaultCycles(t *testing.T) {
	recs := Generate(BuildDerivedProfile(adultMale), domain.ModeSleepNow, time.Now(), nil)

	require.Len(t, recs, len(DefaultCycles))
	for i, r := range recs {
		assert.Equal(t, DefaultCycles[i], r.Cycles)
		assert.False(t, r.IsRecommended, "Generate does not rank")
	}
}

func TestGenerate_DegenerateEfficiency(t *testing.T) {
	derived := domain.DerivedProfile{AdjustedCycleMinutes: 90, SleepEfficiency: 0, LatencyMinutes: 15}

	assert.NotPanics(t, func() {
		recs := Generate(derived, domain.ModeWakeAt, time.Now(), []int{5})
		require.Len(t, recs, 1)
		assert.True(t, math.IsInf(recs[0].TIBMinutes, 1))
	})
}

func TestRecommend_Idempotent(t *testing.T) {
	anchor := time.Date(2024, 6, 1, 6, 30, 0, 0, time.UTC)

	first := WakeAt(adultMale, anchor, ExtendedCycles)
	second := WakeAt(adultMale, anchor, ExtendedCycles)
	assert.Equal(t, first, second)
}

func TestWakeTimeOptions(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

	recs := SleepNow(adultMale, now, ExtendedCycles)
	opts := WakeTimeOptions(adultMale, now, ExtendedCycles)
	require.Len(t, opts, len(recs))
	for i, o := range opts {
		assert.Equal(t, recs[i].Cycles, o.Cycles)
		assert.True(t, recs[i].WakeAt.Equal(o.WakeAt))
		assert.Equal(t, recs[i].TotalSleepMinutes, o.TotalMinutes)
		assert.Equal(t, recs[i].IsRecommended, o.IsRecommended)
	}
}

func TestSleepTimeOptions(t *testing.T) {
	wakeAt := time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC)

	recs := WakeAt(adultMale, wakeAt, nil)
	opts := SleepTimeOptions(adultMale, wakeAt, nil)
	require.Len(t, opts, 4)
	for i, o := range opts {
		assert.True(t, recs[i].SleepAt.Equal(o.SleepAt))
		assert.True(t, recs[i].WindowStart.Equal(o.WindowStart))
		assert.True(t, recs[i].WindowEnd.Equal(o.WindowEnd))
	}
}

func TestWindowMidpoint(t *testing.T) {
	start := time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	assert.True(t, WindowMidpoint(start, end).Equal(start.Add(15*time.Minute)))
}
