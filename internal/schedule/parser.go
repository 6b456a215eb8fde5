// Package schedule defers the start of a run until a wall-clock time.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Accepted layouts, tried in order.
var layouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse turns a --start-at value into an absolute time in now's location.
//
// Accepted forms: YYYY-MM-DD (midnight), "YYYY-MM-DD HH:MM",
// YYYY-MM-DDTHH:MM, and HH:MM, which means the next occurrence of that
// time of day (today, or tomorrow if it has already passed).
func Parse(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	loc := now.Location()

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}

	if t, err := time.ParseInLocation("15:04", input, loc); err == nil {
		next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		if next.Before(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next, nil
	}

	return time.Time{}, fmt.Errorf("invalid start time %q (use YYYY-MM-DD, HH:MM, \"YYYY-MM-DD HH:MM\" or YYYY-MM-DDTHH:MM)", input)
}
