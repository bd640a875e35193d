// Package cli implements the sleepcalc command-line calculator.
//
// # Commands
//
// now - wake times for going to bed now (or at --at):
//
//	sleepcalc now --age 30 --weight 70 --height 170 --gender male
//	sleepcalc now --at 23:30 --tz Europe/Prague --cycles 4,5,6
//
// wake-at - bedtimes for a fixed wake time:
//
//	sleepcalc wake-at --at 07:00 --age 16 --gender female --json
//
// --at takes RFC3339 or a clock time HH:MM, which resolves to its next
// occurrence in --tz (default: the local zone).
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/blaisecz/sleep-cycles/internal/domain"
	"github.com/blaisecz/sleep-cycles/internal/sleepcycle"
)

const name = "sleepcalc"

var version = "dev"

// New builds the sleepcalc command tree. Output goes to out; now supplies
// the current time.
func New(out io.Writer, now func() time.Time) *cli.Command {
	if out == nil {
		out = os.Stdout
	}
	if now == nil {
		now = time.Now
	}

	return &cli.Command{
		Name:                  name,
		Usage:                 "Plan sleep in whole sleep cycles",
		Version:               version,
		EnableShellCompletion: true,
		Writer:                out,
		Commands: []*cli.Command{
			nowCmd(out, now),
			wakeAtCmd(out, now),
		},
	}
}

// Execute runs the CLI against os.Args.
func Execute(ctx context.Context) error {
	return New(os.Stdout, time.Now).Run(ctx, os.Args)
}

func nowCmd(out io.Writer, now func() time.Time) *cli.Command {
	return &cli.Command{
		Name:  "now",
		Usage: "Wake times for going to bed now",
		Description: `Ranks wake times for 3 to 7 sleep cycles starting at the bedtime.
The bedtime defaults to the current time; use --at to plan ahead.`,
		Flags: commonFlags("bedtime, RFC3339 or HH:MM (default: now)"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(cmd, out, now, domain.ModeSleepNow, sleepcycle.ExtendedCycles)
		},
	}
}

func wakeAtCmd(out io.Writer, now func() time.Time) *cli.Command {
	return &cli.Command{
		Name:  "wake-at",
		Usage: "Bedtimes for a fixed wake time",
		Description: `Ranks bedtimes for 3 to 6 sleep cycles so that the last cycle
ends at the wake time given with --at.`,
		Flags: commonFlags("wake time, RFC3339 or HH:MM (required)"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(cmd, out, now, domain.ModeWakeAt, sleepcycle.DefaultCycles)
		},
	}
}

func run(cmd *cli.Command, out io.Writer, now func() time.Time, mode domain.RecommendationMode, defaultCycles []int) error {
	loc, err := parseLocation(cmd.String("tz"))
	if err != nil {
		return err
	}

	profile, err := profileFromCmd(cmd)
	if err != nil {
		return err
	}

	rawCycles := cmd.IntSlice("cycles")
	cycleValues := make([]int, len(rawCycles))
	for i, n := range rawCycles {
		cycleValues[i] = int(n)
	}
	cycles, err := parseCycles(cycleValues, defaultCycles)
	if err != nil {
		return err
	}

	anchor, err := parseAnchor(cmd.String("at"), loc, now(), mode == domain.ModeWakeAt)
	if err != nil {
		return err
	}

	report := buildReport(profile, mode, anchor, cycles)
	if cmd.Bool("json") {
		return writeJSON(out, report)
	}
	return writeTable(out, report, loc)
}
