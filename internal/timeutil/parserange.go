package timeutil

import (
	"fmt"
	"time"
)

// ParseDateRangeFlags parses --from/--to/--last flags relative to now.
// If lastDays > 0, it covers that many days ending today.
// Returns an error if both lastDays and from/to are specified. An empty
// --from leaves start zero, meaning unbounded.
func ParseDateRangeFlags(fromStr, toStr string, lastDays int, now time.Time) (start, end time.Time, err error) {
	if lastDays > 0 && (fromStr != "" || toStr != "") {
		return time.Time{}, time.Time{}, fmt.Errorf("cannot use --last with --from or --to")
	}

	if lastDays > 0 {
		end = EndOfDay(now)
		start = StartOfDay(now).AddDate(0, 0, -(lastDays - 1))
		return start, end, nil
	}

	if fromStr != "" {
		start, err = ParseDate(fromStr, now)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
	}

	if toStr != "" {
		toDate, err := ParseDate(toStr, now)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
		end = EndOfDay(toDate)
	} else {
		end = EndOfDay(now)
	}

	if !start.IsZero() && start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			DateKey(start), DateKey(end))
	}

	return start, end, nil
}
