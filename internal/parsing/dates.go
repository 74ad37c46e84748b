// Package parsing turns user input (dates, headers, URLs) into validated values.
package parsing

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateBound parses a user date in any common layout (e.g. "January 2, 2006",
// "2006-01-02", "20060102"). An empty string yields the zero time.
//
// End-of-range bounds are moved to the last instant of that day so that
// entries uploaded on the bound date itself are kept.
func ParseDateBound(dateString string, endOfDay bool) (time.Time, error) {
	dateString = strings.TrimSpace(dateString)
	if dateString == "" {
		return time.Time{}, nil
	}

	t, err := dateparse.ParseIn(dateString, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateString)
	}

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return day, nil
}
