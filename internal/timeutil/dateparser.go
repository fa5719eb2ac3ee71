package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ParseDate parses a date argument relative to now and returns local midnight
// of that day in now's location.
//
// Valid inputs:
//   - "today", "yesterday", "tomorrow" (also "t", "y")
//   - "2024-01-15" (ISO format, preferred for ambiguous dates)
//   - "15/01/2024" (European format)
//
// Invalid inputs return an error with suggested formats.
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	switch strings.ToLower(input) {
	case "today", "t":
		return StartOfDay(now), nil
	case "yesterday", "y":
		return StartOfDay(now).AddDate(0, 0, -1), nil
	case "tomorrow":
		return StartOfDay(now).AddDate(0, 0, 1), nil
	}

	loc := now.Location()
	if t, err := time.ParseInLocation(DateLayout, input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("02/01/2006", input, loc); err == nil {
		return t, nil
	}

	// Neither format worked - provide specific error based on input pattern
	return time.Time{}, buildDateParseError(input)
}

// ParseDateToKey is ParseDate returning the calendar key.
func ParseDateToKey(input string, now time.Time) (string, error) {
	t, err := ParseDate(input, now)
	if err != nil {
		return "", err
	}
	return DateKey(t), nil
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	// Check for common partial date patterns
	isoPartialRe := regexp.MustCompile(`^\d{4}-\d{1,2}$`)          // YYYY-MM (missing day)
	yearOnlyRe := regexp.MustCompile(`^\d{4}$`)                    // YYYY (year only)
	isoPartialDayRe := regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)     // MM-DD or DD-MM (missing year)
	euroPartialRe := regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)       // DD/MM (missing year)
	tooManyPartsRe := regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`) // Too many separators

	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}
