package scrum

import (
	"fmt"
	"strings"
	"time"

	"github.com/bakulab/scrumbot/internal/dates"
)

// VacationRange is an inclusive [start, end] date pair in YYYY-MM-DD form,
// stored exactly as entered. A range that does not parse, or runs backwards,
// never matches any day.
type VacationRange [2]string

func (r VacationRange) Start() string { return r[0] }
func (r VacationRange) End() string   { return r[1] }

func (r VacationRange) Contains(day time.Time) bool {
	start, err := dates.Parse(r[0])
	if err != nil {
		return false
	}
	end, err := dates.Parse(r[1])
	if err != nil {
		return false
	}
	if start.After(end) {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

func (r VacationRange) String() string {
	return fmt.Sprintf("%s → %s", r[0], r[1])
}

// Configuration is the hot-reloadable scrum document. The uppercase JSON keys
// are the document's historical shape and stay as they are on disk.
type Configuration struct {
	Team           []string                   `json:"TEAM" validate:"dive,required"`
	WeeklySchedule map[string][]int           `json:"WEEKLY_SCHEDULE" validate:"dive,dive,min=1,max=7"`
	Vacations      map[string][]VacationRange `json:"VACATIONS"`
	PromptHour     int                        `json:"PROMPT_HOUR" validate:"min=0,max=23"`
	PromptMinute   int                        `json:"PROMPT_MINUTE" validate:"min=0,max=59"`
	SummaryHour    int                        `json:"SUMMARY_HOUR" validate:"min=0,max=23"`
	SummaryMinute  int                        `json:"SUMMARY_MINUTE" validate:"min=0,max=59"`
	LiveScrumAt    string                     `json:"LIVE_SCRUM_AT"`

	// LegacyVacations carries the misspelled key older documents used. It is
	// folded into Vacations on load and dropped on the next save.
	LegacyVacations map[string][]VacationRange `json:"VACITIONS,omitempty"`
}

// defaultConfiguration carries the fallback values applied for keys a stored
// document omits.
func defaultConfiguration() *Configuration {
	return &Configuration{
		PromptHour:    9,
		PromptMinute:  0,
		SummaryHour:   18,
		SummaryMinute: 0,
		LiveScrumAt:   "11:00",
	}
}

func (c *Configuration) migrate() {
	if c.Vacations == nil && c.LegacyVacations != nil {
		c.Vacations = c.LegacyVacations
	}
	c.LegacyVacations = nil
}

// CanonicalName resolves user input against the roster case-insensitively
// and returns the roster's spelling. The first roster match wins.
func (c *Configuration) CanonicalName(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, name := range c.Team {
		if strings.EqualFold(name, raw) {
			return name, true
		}
	}
	return "", false
}

// PromptCronSpec renders the weekday prompt trigger in five-field cron form.
func (c *Configuration) PromptCronSpec() string {
	return fmt.Sprintf("%d %d * * 1-5", c.PromptMinute, c.PromptHour)
}

// SummaryCronSpec renders the weekday summary trigger in five-field cron form.
func (c *Configuration) SummaryCronSpec() string {
	return fmt.Sprintf("%d %d * * 1-5", c.SummaryMinute, c.SummaryHour)
}
