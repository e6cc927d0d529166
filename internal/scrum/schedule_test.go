package scrum

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/bakulab/scrumbot/internal/dates"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", s, err)
	}
	return d
}

func testConfiguration() *Configuration {
	return &Configuration{
		Team: []string{"Aya", "Bek", "Cem"},
		WeeklySchedule: map[string][]int{
			"Aya": {1, 3},
			"Bek": {1},
			"Cem": {},
		},
		Vacations: map[string][]VacationRange{
			"Bek": {{"2024-05-06", "2024-05-10"}},
		},
		LiveScrumAt: "11:00",
	}
}

func TestRemoteTodayExcludesVacationers(t *testing.T) {
	cfg := testConfiguration()

	// Monday inside Bek's vacation: only Aya is remote.
	if got := cfg.RemoteToday(mustDay(t, "2024-05-06")); !slices.Equal(got, []string{"Aya"}) {
		t.Errorf("expected [Aya], got %v", got)
	}

	// the Monday after the vacation ends, Bek is remote again
	if got := cfg.RemoteToday(mustDay(t, "2024-05-13")); !slices.Equal(got, []string{"Aya", "Bek"}) {
		t.Errorf("expected [Aya Bek], got %v", got)
	}
}

func TestRemoteTodayUnscheduledWeekday(t *testing.T) {
	cfg := testConfiguration()

	if got := cfg.RemoteToday(mustDay(t, "2024-05-07")); len(got) != 0 {
		t.Errorf("expected nobody remote on tuesday, got %v", got)
	}
}

func TestRemoteTodayFollowsRosterOrder(t *testing.T) {
	cfg := &Configuration{
		Team: []string{"Cem", "Aya", "Bek"},
		WeeklySchedule: map[string][]int{
			"Aya": {1},
			"Bek": {1},
			"Cem": {1},
		},
	}

	if got := cfg.RemoteToday(mustDay(t, "2024-05-06")); !slices.Equal(got, []string{"Cem", "Aya", "Bek"}) {
		t.Errorf("expected roster order, got %v", got)
	}
}

func TestVacationRangeBoundsInclusive(t *testing.T) {
	r := VacationRange{"2024-05-06", "2024-05-10"}

	for _, c := range []struct {
		date string
		want bool
	}{
		{"2024-05-05", false},
		{"2024-05-06", true},
		{"2024-05-08", true},
		{"2024-05-10", true},
		{"2024-05-11", false},
	} {
		if got := r.Contains(mustDay(t, c.date)); got != c.want {
			t.Errorf("Contains(%s): expected %v, got %v", c.date, c.want, got)
		}
	}
}

func TestMalformedVacationRangesNeverMatch(t *testing.T) {
	cfg := &Configuration{
		Team:           []string{"Aya"},
		WeeklySchedule: map[string][]int{"Aya": {1}},
		Vacations: map[string][]VacationRange{
			"Aya": {
				{"garbage", "2024-05-10"},
				{"2024-05-06", ""},
				{"2024-05-10", "2024-05-06"}, // runs backwards
			},
		},
	}

	monday := mustDay(t, "2024-05-06")
	if cfg.IsOnVacation("Aya", monday) {
		t.Error("expected malformed ranges to never match")
	}
	if got := cfg.RemoteToday(monday); !slices.Equal(got, []string{"Aya"}) {
		t.Errorf("expected Aya remote despite malformed ranges, got %v", got)
	}
}

func TestMemberMode(t *testing.T) {
	cfg := testConfiguration()
	monday := mustDay(t, "2024-05-06")

	if got := cfg.MemberMode("Bek", monday); got != ModeVacation {
		t.Errorf("expected vacation to win, got %s", got)
	}
	if got := cfg.MemberMode("Aya", monday); got != ModeRemote {
		t.Errorf("expected remote, got %s", got)
	}
	if got := cfg.MemberMode("Cem", monday); got != ModeOffice {
		t.Errorf("expected office, got %s", got)
	}
	// a name with no schedule entry defaults to office
	if got := cfg.MemberMode("Nobody", monday); got != ModeOffice {
		t.Errorf("expected office for unknown member, got %s", got)
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("5, 1,3,3")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !slices.Equal(got, []int{1, 3, 5}) {
		t.Errorf("expected [1 3 5], got %v", got)
	}

	for _, bad := range []string{"0", "8", "x", "", "1,,8"} {
		if _, err := ParseWeekdays(bad); !errors.Is(err, ErrInvalidWeekdaySet) {
			t.Errorf("expected ErrInvalidWeekdaySet for %q, got %v", bad, err)
		}
	}
}
