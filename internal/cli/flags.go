package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/blaisecz/sleep-cycles/internal/api/validation"
	"github.com/blaisecz/sleep-cycles/internal/domain"
)

const clockLayout = "15:04"

// flagNames maps validation field names onto the flags that set them.
var flagNames = map[string]string{
	"age":       "age",
	"weight_kg": "weight",
	"height_cm": "height",
	"gender":    "gender",
}

func commonFlags(atUsage string) []cli.Flag {
	defaults := domain.DefaultSleepProfile(uuid.Nil)

	return []cli.Flag{
		&cli.IntFlag{
			Name:  "age",
			Value: int64(defaults.Age),
			Usage: "age in years (1-120)",
		},
		&cli.FloatFlag{
			Name:  "weight",
			Value: defaults.WeightKg,
			Usage: "body weight in kg",
		},
		&cli.FloatFlag{
			Name:  "height",
			Value: defaults.HeightCm,
			Usage: "body height in cm",
		},
		&cli.StringFlag{
			Name:  "gender",
			Value: string(defaults.Gender),
			Usage: "male, female or other",
		},
		&cli.IntSliceFlag{
			Name:  "cycles",
			Usage: "candidate cycle counts, e.g. 4,5,6",
		},
		&cli.StringFlag{
			Name:  "at",
			Usage: atUsage,
		},
		&cli.StringFlag{
			Name:  "tz",
			Usage: "IANA timezone for clock input and output (default: local)",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print JSON instead of a table",
		},
	}
}

// profileFromCmd reads the biometric flags and applies the same rules as
// the HTTP API.
func profileFromCmd(cmd *cli.Command) (domain.SleepProfile, error) {
	req := domain.SaveProfileRequest{
		Age:      int(cmd.Int("age")),
		WeightKg: cmd.Float("weight"),
		HeightCm: cmd.Float("height"),
		Gender:   domain.Gender(strings.ToLower(cmd.String("gender"))),
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		msgs := make([]string, len(fieldErrors))
		for i, fe := range fieldErrors {
			msgs[i] = fmt.Sprintf("--%s %s", flagNames[fe.Field], fe.Message)
		}
		return domain.SleepProfile{}, errors.New("invalid profile: " + strings.Join(msgs, "; "))
	}

	return req.ToProfile(uuid.Nil), nil
}

func parseCycles(values []int, defaults []int) ([]int, error) {
	if len(values) == 0 {
		return defaults, nil
	}
	for _, n := range values {
		if n < 1 || n > 12 {
			return nil, fmt.Errorf("invalid --cycles value %d: must be between 1 and 12", n)
		}
	}
	return values, nil
}

func parseLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid --tz %q: %w", name, err)
	}
	return loc, nil
}

// parseAnchor resolves --at. A bare clock time means its next occurrence
// at or after now in loc.
func parseAnchor(value string, loc *time.Location, now time.Time, required bool) (time.Time, error) {
	if value == "" {
		if required {
			return time.Time{}, errors.New("--at is required")
		}
		return now, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	clock, err := time.ParseInLocation(clockLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: want RFC3339 or HH:MM", value)
	}

	local := now.In(loc)
	t := time.Date(local.Year(), local.Month(), local.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
	if t.Before(local) {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}
