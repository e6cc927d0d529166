package scrum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/bakulab/scrumbot/internal/dates"
	"github.com/bakulab/scrumbot/internal/store"
)

var (
	ErrConfigMissing     = errors.New("scrum configuration document is missing")
	ErrConfigMalformed   = errors.New("scrum configuration document is malformed")
	ErrUnknownMember     = errors.New("member is not on the team roster")
	ErrMemberExists      = errors.New("member is already on the team roster")
	ErrInvalidTimeSpec   = errors.New("clock time must be HH:MM within 00:00..23:59")
	ErrInvalidDateRange  = errors.New("vacation dates must be YYYY-MM-DD")
	ErrInvalidWeekdaySet = errors.New("weekdays must be numbers 1..7")
)

// Store owns the scrum configuration document. Readers get an immutable
// snapshot that only changes through Reload; admin mutations edit the
// persisted document and become visible on the next reload, never before.
type Store struct {
	docs     store.Store
	validate *validator.Validate

	// mu guards the snapshot and reload hooks, updateMu serializes writers.
	mu          sync.Mutex
	current     *Configuration
	reloadHooks []func(*Configuration)
	updateMu    sync.Mutex
}

func NewStore(docs store.Store) *Store {
	return &Store{
		docs:     docs,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// OnReload registers a hook fired inside every successful Reload, after the
// snapshot swap and before readers can observe a newer one.
func (s *Store) OnReload(hook func(*Configuration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloadHooks = append(s.reloadHooks, hook)
}

// Snapshot returns the configuration as of the last successful Reload. The
// returned value must be treated as read-only.
func (s *Store) Snapshot() *Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reload reads, migrates and validates the persisted document, then swaps
// the snapshot and fires the reload hooks. On failure the previous snapshot
// stays in place untouched.
func (s *Store) Reload(ctx context.Context) (*Configuration, error) {
	cfg, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = cfg
	for _, hook := range s.reloadHooks {
		hook(cfg)
	}
	s.mu.Unlock()

	slog.Info("scrum configuration reloaded",
		"team_size", len(cfg.Team),
		"prompt_at", fmt.Sprintf("%02d:%02d", cfg.PromptHour, cfg.PromptMinute),
		"summary_at", fmt.Sprintf("%02d:%02d", cfg.SummaryHour, cfg.SummaryMinute))
	return cfg, nil
}

// Persisted reads the stored document without touching the snapshot.
func (s *Store) Persisted(ctx context.Context) (*Configuration, error) {
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*Configuration, error) {
	cfg := defaultConfiguration()
	err := s.docs.Load(ctx, store.DocConfig, cfg)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrConfigMissing
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigMalformed, err)
	}
	cfg.migrate()
	if err := s.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigMalformed, err)
	}
	return cfg, nil
}

// Update runs one read-mutate-validate-save cycle against the persisted
// document. The snapshot is deliberately left alone; changes take effect on
// the next Reload.
func (s *Store) Update(ctx context.Context, mutate func(*Configuration) error) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	cfg, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := mutate(cfg); err != nil {
		return err
	}
	if err := s.validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigMalformed, err)
	}
	return s.docs.Save(ctx, store.DocConfig, cfg)
}

// AddMember appends a member to the roster and seeds empty schedule and
// vacation entries for them.
func (s *Store) AddMember(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	return s.Update(ctx, func(c *Configuration) error {
		if _, ok := c.CanonicalName(name); ok {
			return fmt.Errorf("%w: %s", ErrMemberExists, name)
		}
		c.Team = append(c.Team, name)
		if c.WeeklySchedule == nil {
			c.WeeklySchedule = map[string][]int{}
		}
		if _, ok := c.WeeklySchedule[name]; !ok {
			c.WeeklySchedule[name] = []int{}
		}
		if c.Vacations == nil {
			c.Vacations = map[string][]VacationRange{}
		}
		if _, ok := c.Vacations[name]; !ok {
			c.Vacations[name] = []VacationRange{}
		}
		return nil
	})
}

// RemoveMember drops a member from the roster along with their schedule and
// vacations, returning the roster spelling of the removed name.
func (s *Store) RemoveMember(ctx context.Context, raw string) (string, error) {
	var removed string
	err := s.Update(ctx, func(c *Configuration) error {
		name, ok := c.CanonicalName(raw)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMember, strings.TrimSpace(raw))
		}
		removed = name

		kept := c.Team[:0]
		for _, member := range c.Team {
			if member != name {
				kept = append(kept, member)
			}
		}
		c.Team = kept
		delete(c.WeeklySchedule, name)
		delete(c.Vacations, name)
		return nil
	})
	return removed, err
}

// SetWeekdays replaces a member's remote weekdays. The stored set is sorted
// and deduplicated regardless of input order.
func (s *Store) SetWeekdays(ctx context.Context, raw string, days []int) (string, error) {
	for _, d := range days {
		if d < 1 || d > 7 {
			return "", fmt.Errorf("%w: %d", ErrInvalidWeekdaySet, d)
		}
	}
	days = slices.Clone(days)
	slices.Sort(days)
	days = slices.Compact(days)

	var member string
	err := s.Update(ctx, func(c *Configuration) error {
		name, ok := c.CanonicalName(raw)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMember, strings.TrimSpace(raw))
		}
		member = name
		if c.WeeklySchedule == nil {
			c.WeeklySchedule = map[string][]int{}
		}
		c.WeeklySchedule[name] = days
		return nil
	})
	return member, err
}

// AddVacation records an inclusive vacation range for a member.
func (s *Store) AddVacation(ctx context.Context, raw, from, to string) (string, error) {
	if _, err := dates.Parse(from); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDateRange, from)
	}
	if _, err := dates.Parse(to); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDateRange, to)
	}
	var member string
	err := s.Update(ctx, func(c *Configuration) error {
		name, ok := c.CanonicalName(raw)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMember, strings.TrimSpace(raw))
		}
		member = name
		if c.Vacations == nil {
			c.Vacations = map[string][]VacationRange{}
		}
		c.Vacations[name] = append(c.Vacations[name], VacationRange{from, to})
		return nil
	})
	return member, err
}

// RemoveVacation drops the exact [from, to] range from a member's vacations.
// A range that was never recorded is not an error.
func (s *Store) RemoveVacation(ctx context.Context, raw, from, to string) (string, error) {
	var member string
	err := s.Update(ctx, func(c *Configuration) error {
		name, ok := c.CanonicalName(raw)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMember, strings.TrimSpace(raw))
		}
		member = name
		if c.Vacations == nil {
			return nil
		}

		target := VacationRange{from, to}
		kept := c.Vacations[name][:0]
		for _, r := range c.Vacations[name] {
			if r != target {
				kept = append(kept, r)
			}
		}
		c.Vacations[name] = kept
		return nil
	})
	return member, err
}

// SetPromptTime stores the weekday prompt clock time.
func (s *Store) SetPromptTime(ctx context.Context, hour, minute int) error {
	if err := checkClock(hour, minute); err != nil {
		return err
	}
	return s.Update(ctx, func(c *Configuration) error {
		c.PromptHour, c.PromptMinute = hour, minute
		return nil
	})
}

// SetSummaryTime stores the weekday summary clock time.
func (s *Store) SetSummaryTime(ctx context.Context, hour, minute int) error {
	if err := checkClock(hour, minute); err != nil {
		return err
	}
	return s.Update(ctx, func(c *Configuration) error {
		c.SummaryHour, c.SummaryMinute = hour, minute
		return nil
	})
}

// SetLiveScrumAt stores the clock time shown to office members.
func (s *Store) SetLiveScrumAt(ctx context.Context, hhmm string) error {
	hour, minute, err := dates.ParseHHMM(hhmm)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeSpec, hhmm)
	}
	normalized := fmt.Sprintf("%02d:%02d", hour, minute)
	return s.Update(ctx, func(c *Configuration) error {
		c.LiveScrumAt = normalized
		return nil
	})
}

func checkClock(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeSpec, hour, minute)
	}
	return nil
}
