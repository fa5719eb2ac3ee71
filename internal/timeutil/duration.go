package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders milliseconds as "1h 30m", "1h 0m 5s" or "45s".
// Minutes are shown whenever hours are; seconds are shown when non-zero or
// when the value is under a minute. Non-positive values render as "0s".
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "0s"
	}
	total := ms / 1000
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	var b strings.Builder
	if h > 0 {
		fmt.Fprintf(&b, "%dh ", h)
	}
	if m > 0 || h > 0 {
		fmt.Fprintf(&b, "%dm ", m)
	}
	if s > 0 || (h == 0 && m == 0) {
		fmt.Fprintf(&b, "%ds", s)
	}
	return strings.TrimSpace(b.String())
}

// FormatClock renders an elapsed duration as HH:MM:SS for running timers.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// HoursMinutes converts a manual adjustment into milliseconds.
func HoursMinutes(hours, minutes int) int64 {
	return int64(hours)*int64(time.Hour/time.Millisecond) + int64(minutes)*int64(time.Minute/time.Millisecond)
}
