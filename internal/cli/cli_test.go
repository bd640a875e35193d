package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaisecz/sleep-cycles/internal/domain"
)

var testNow = time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := New(&out, func() time.Time { return testNow })
	err := app.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func TestNow_JSON(t *testing.T) {
	out, err := runCLI(t, "now", "--tz", "UTC", "--json")
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, domain.ModeSleepNow, report.Mode)
	assert.True(t, report.Anchor.Equal(testNow))
	require.Len(t, report.Recommendations, 5)

	var recommended []int
	for _, r := range report.Recommendations {
		assert.Equal(t, domain.ModeSleepNow, r.Mode)
		assert.Equal(t, 15, r.LatencyMinutes)
		if r.IsRecommended {
			recommended = append(recommended, r.Cycles)
			assert.InDelta(t, 24.0, r.Score, 1e-9)
		}
	}
	assert.Equal(t, []int{5, 6}, recommended)
}

func TestNow_Table(t *testing.T) {
	out, err := runCLI(t, "now", "--tz", "UTC", "--cycles", "3,4,5")
	require.NoError(t, err)

	assert.Contains(t, out, "Bedtime 23:00 (UTC)")
	assert.Contains(t, out, "Cycle 90 min, latency 15 min, efficiency 88%")

	var starred []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(strings.TrimSpace(line), "*") {
			starred = append(starred, line)
		}
	}
	require.Len(t, starred, 1)
	assert.True(t, strings.HasPrefix(starred[0], "5 "), "recommended row: %q", starred[0])
	assert.Contains(t, starred[0], "07:46")
	assert.Contains(t, starred[0], "7 h 30 min")
	assert.Contains(t, starred[0], "526 min")
	assert.Contains(t, starred[0], "24.0")
	assert.Contains(t, starred[0], "07:31 – 08:01")
}

func TestWakeAt_ClockTimeRollsToNextDay(t *testing.T) {
	out, err := runCLI(t, "wake-at", "--at", "07:00", "--tz", "UTC", "--age", "16", "--gender", "female", "--weight", "55", "--height", "165", "--json")
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	want := time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC)
	assert.True(t, report.Anchor.Equal(want), "anchor = %v", report.Anchor)
	assert.Equal(t, 95, report.Derived.AdjustedCycleMinutes)
	require.Len(t, report.Recommendations, 4)
	for _, r := range report.Recommendations {
		assert.True(t, r.WakeAt.Equal(want))
		assert.True(t, r.SleepAt.Before(want))
		assert.Equal(t, r.Cycles*95, r.TotalSleepMinutes)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "wake-at needs --at", args: []string{"wake-at", "--tz", "UTC"}, wantErr: "--at is required"},
		{name: "age out of range", args: []string{"now", "--age", "200"}, wantErr: "--age must be at most 120"},
		{name: "unknown gender", args: []string{"now", "--gender", "robot"}, wantErr: "--gender must be one of"},
		{name: "bad timezone", args: []string{"now", "--tz", "Mars/Olympus"}, wantErr: "invalid --tz"},
		{name: "bad cycles", args: []string{"now", "--cycles", "0"}, wantErr: "invalid --cycles"},
		{name: "bad clock", args: []string{"wake-at", "--at", "7am"}, wantErr: "invalid --at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseAnchor(t *testing.T) {
	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)

	t.Run("defaults to now", func(t *testing.T) {
		got, err := parseAnchor("", time.UTC, testNow, false)
		require.NoError(t, err)
		assert.True(t, got.Equal(testNow))
	})

	t.Run("RFC3339 is taken as is", func(t *testing.T) {
		got, err := parseAnchor("2024-03-01T06:30:00Z", prague, testNow, true)
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, 3, 1, 6, 30, 0, 0, time.UTC)))
	})

	t.Run("later clock time stays on the same day", func(t *testing.T) {
		// 23:00 UTC is midnight in Prague, so 23:30 local is the next evening
		got, err := parseAnchor("23:30", prague, testNow, false)
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, 1, 16, 23, 30, 0, 0, prague)), "got %v", got)
	})

	t.Run("earlier clock time moves to tomorrow", func(t *testing.T) {
		got, err := parseAnchor("22:00", time.UTC, testNow, false)
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, 1, 16, 22, 0, 0, 0, time.UTC)))
	})
}
