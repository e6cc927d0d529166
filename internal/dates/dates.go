package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format is the calendar date layout used across stored documents and chat output.
const Format = "2006-01-02"

// Parse reads a YYYY-MM-DD date into a UTC midnight instant.
func Parse(s string) (time.Time, error) {
	return time.Parse(Format, s)
}

// Day strips the clock from t, keeping the calendar date as seen from loc.
// The result is a UTC midnight instant comparable with Parse output.
func Day(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)
}

// ISOWeekday numbers weekdays 1 (Monday) through 7 (Sunday).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ParseHHMM splits a "HH:MM" clock string into its components.
func ParseHHMM(s string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("clock time %q is not in HH:MM form", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("clock time %q has a bad hour", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("clock time %q has a bad minute", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock time %q is out of range", s)
	}
	return hour, minute, nil
}
