package scrum

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bakulab/scrumbot/internal/dates"
)

// Mode is a member's working mode on a given day.
type Mode string

const (
	ModeOffice   Mode = "office"
	ModeRemote   Mode = "remote"
	ModeVacation Mode = "vacation"
)

// IsOnVacation reports whether member sits inside any vacation range on day.
func (c *Configuration) IsOnVacation(member string, day time.Time) bool {
	for _, r := range c.Vacations[member] {
		if r.Contains(day) {
			return true
		}
	}
	return false
}

// RemoteToday lists the roster members scheduled remote on day, in roster
// order. Vacationers are excluded; a member missing from the weekly schedule
// has no remote days.
func (c *Configuration) RemoteToday(day time.Time) []string {
	weekday := dates.ISOWeekday(day)
	var out []string
	for _, member := range c.Team {
		if !slices.Contains(c.WeeklySchedule[member], weekday) {
			continue
		}
		if c.IsOnVacation(member, day) {
			continue
		}
		out = append(out, member)
	}
	return out
}

// MemberMode resolves a member's working mode on day. Vacation wins over the
// weekly schedule.
func (c *Configuration) MemberMode(member string, day time.Time) Mode {
	if c.IsOnVacation(member, day) {
		return ModeVacation
	}
	if slices.Contains(c.WeeklySchedule[member], dates.ISOWeekday(day)) {
		return ModeRemote
	}
	return ModeOffice
}

// ParseWeekdays reads a comma-separated weekday list like "1,3,5" into a
// sorted, deduplicated set of ISO weekday numbers.
func ParseWeekdays(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeekdaySet, part)
		}
		if n < 1 || n > 7 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekdaySet, n)
		}
		days = append(days, n)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrInvalidWeekdaySet)
	}
	slices.Sort(days)
	return slices.Compact(days), nil
}
