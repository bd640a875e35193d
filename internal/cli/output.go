package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/blaisecz/sleep-cycles/internal/sleepcycle"
)

// Report is what sleepcalc prints.
type Report struct {
	Mode            domain.RecommendationMode `json:"mode"`
	Anchor          time.Time                 `json:"anchor"`
	Derived         domain.DerivedProfile     `json:"derived"`
	Recommendations []domain.Recommendation   `json:"recommendations"`
}

func buildReport(p domain.SleepProfile, mode domain.RecommendationMode, anchor time.Time, cycles []int) Report {
	report := Report{
		Mode:    mode,
		Anchor:  anchor,
		Derived: sleepcycle.BuildDerivedProfile(p),
	}
	if mode == domain.ModeWakeAt {
		report.Recommendations = sleepcycle.WakeAt(p, anchor, cycles)
	} else {
		report.Recommendations = sleepcycle.SleepNow(p, anchor, cycles)
	}
	return report
}

func writeJSON(out io.Writer, report Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeTable(out io.Writer, report Report, loc *time.Location) error {
	d := report.Derived
	heading := "Bedtime"
	column := "WAKE"
	if report.Mode == domain.ModeWakeAt {
		heading = "Wake time"
		column = "SLEEP"
	}

	fmt.Fprintf(out, "%s %s (%s)\n", heading, sleepcycle.FormatTime(report.Anchor, loc), loc)
	fmt.Fprintf(out, "Cycle %d min, latency %d min, efficiency %.0f%%, BMI %.1f (%s)\n\n",
		d.AdjustedCycleMinutes, d.LatencyMinutes, d.SleepEfficiency*100, d.BMI, d.BMICategory)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CYCLES\t%s\tSLEEP TIME\tIN BED\tSCORE\tWINDOW\t\n", column)
	for _, r := range report.Recommendations {
		at := r.WakeAt
		if report.Mode == domain.ModeWakeAt {
			at = r.SleepAt
		}
		marker := ""
		if r.IsRecommended {
			marker = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f min\t%.1f\t%s\t%s\n",
			r.Cycles,
			sleepcycle.FormatTime(at, loc),
			sleepcycle.FormatDuration(r.TotalSleepMinutes),
			r.TIBMinutes,
			r.Score,
			sleepcycle.FormatTimeRange(r.WindowStart, r.WindowEnd, loc),
			marker)
	}
	return tw.Flush()
}
