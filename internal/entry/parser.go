// Package entry parses the short-hand input accepted on the command line and
// in the TUI: time amounts such as "1h30m" and quick-add task text such as
// "review PR @work #ABC-12".
package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// combinedTimePattern matches combined time amounts in XhYm format (e.g., "1h30m", "2h15m")
var combinedTimePattern = regexp.MustCompile(`^(\d+)h(\d+)m$`)

// timePattern matches time amounts in Yh (hours) or Ym (minutes) format
var timePattern = regexp.MustCompile(`^(\d+)(h|m)$`)

// MaxAmountMinutes is the largest amount accepted in a single adjustment (24 hours)
const MaxAmountMinutes = 24 * 60

// ParseAmount parses a time amount in Yh, Ym, or XhYm format and returns it
// split into hours and minutes (minutes < 60).
// Valid inputs: "2h" (2, 0), "90m" (1, 30), "1h30m" (1, 30)
// Invalid inputs: "invalid", "0h", "0m", "0h0m", values exceeding 24h
func ParseAmount(input string) (hours, minutes int, err error) {
	total, err := parseMinutes(strings.TrimSpace(input))
	if err != nil {
		return 0, 0, err
	}
	return total / 60, total % 60, nil
}

func parseMinutes(input string) (int, error) {
	var total int
	if m := combinedTimePattern.FindStringSubmatch(input); m != nil {
		hours, err1 := strconv.Atoi(m[1])
		mins, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("invalid time format: expected Xh, Xm, or XhYm, got %s", input)
		}
		total = hours*60 + mins
	} else if m := timePattern.FindStringSubmatch(input); m != nil {
		value, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid time format: expected Xh, Xm, or XhYm, got %s", input)
		}
		total = value
		if m[2] == "h" {
			total = value * 60
		}
	} else {
		return 0, fmt.Errorf("invalid time format: expected Xh, Xm, or XhYm, got %s", input)
	}

	if total == 0 {
		return 0, fmt.Errorf("invalid amount: amount cannot be zero")
	}
	if total > MaxAmountMinutes {
		return 0, fmt.Errorf("invalid amount: exceeds maximum of 24 hours (%d minutes)", MaxAmountMinutes)
	}
	return total, nil
}

// projectPattern matches @project syntax (e.g., "@acme", "@my-project", "@project123")
var projectPattern = regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)

// codePattern matches #code syntax (e.g., "#ABC-12", "#ops.support")
var codePattern = regexp.MustCompile(`#([a-zA-Z0-9_.-]+)`)

var spaces = regexp.MustCompile(`\s+`)

// QuickAdd is the result of parsing quick-add text.
type QuickAdd struct {
	Name    string
	Project string // project name or id prefix, empty if none
	Code    string // billing code or id prefix, empty if none
}

// ParseQuickAdd extracts an @project and a #code from task text.
// If several tokens of one kind are present, the last one wins.
// Example: "fix bug @acme #ABC-1" -> {Name: "fix bug", Project: "acme", Code: "ABC-1"}
func ParseQuickAdd(text string) QuickAdd {
	var q QuickAdd
	if m := projectPattern.FindAllStringSubmatch(text, -1); len(m) > 0 {
		q.Project = m[len(m)-1][1]
	}
	if m := codePattern.FindAllStringSubmatch(text, -1); len(m) > 0 {
		q.Code = m[len(m)-1][1]
	}

	name := projectPattern.ReplaceAllString(text, "")
	name = codePattern.ReplaceAllString(name, "")
	q.Name = spaces.ReplaceAllString(strings.TrimSpace(name), " ")
	return q
}
