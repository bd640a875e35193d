package sleepcycle

import (
	"fmt"
	"time"
)

// FormatTime renders t as a 24-hour HH:MM clock in loc (UTC when nil).
func FormatTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// FormatDuration renders whole minutes as "7 h" or "7 h 30 min".
func FormatDuration(totalMinutes int) string {
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	if minutes == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, minutes)
}

// FormatTimeRange renders a window as "HH:MM – HH:MM".
func FormatTimeRange(start, end time.Time, loc *time.Location) string {
	return FormatTime(start, loc) + " – " + FormatTime(end, loc)
}
