package scrum

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/bakulab/scrumbot/internal/store"
)

type mockStore struct {
	docs map[string][]byte
}

func newMockStore() *mockStore {
	return &mockStore{docs: map[string][]byte{}}
}

func (m *mockStore) Load(ctx context.Context, name string, out any) error {
	data, ok := m.docs[name]
	if !ok {
		return store.ErrNotFound
	}
	return json.Unmarshal(data, out)
}

func (m *mockStore) Save(ctx context.Context, name string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.docs[name] = data
	return nil
}

func (m *mockStore) seedConfig(raw string) {
	m.docs[store.DocConfig] = []byte(raw)
}

func (m *mockStore) rawConfig() string {
	return string(m.docs[store.DocConfig])
}

const sampleConfig = `{
	"TEAM": ["Aya", "Bek", "Cem"],
	"WEEKLY_SCHEDULE": {"Aya": [1, 3], "Bek": [1], "Cem": []},
	"VACATIONS": {"Bek": [["2024-05-06", "2024-05-10"]]},
	"PROMPT_HOUR": 9,
	"PROMPT_MINUTE": 30,
	"SUMMARY_HOUR": 18,
	"SUMMARY_MINUTE": 0,
	"LIVE_SCRUM_AT": "11:00"
}`

func newLoadedStore(t *testing.T) (*Store, *mockStore) {
	t.Helper()
	docs := newMockStore()
	docs.seedConfig(sampleConfig)
	s := NewStore(docs)
	if _, err := s.Reload(context.Background()); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	return s, docs
}

func TestReloadMissingDocument(t *testing.T) {
	s := NewStore(newMockStore())
	_, err := s.Reload(context.Background())
	if !errors.Is(err, ErrConfigMissing) {
		t.Errorf("expected ErrConfigMissing, got %v", err)
	}
	if s.Snapshot() != nil {
		t.Error("expected no snapshot after failed reload")
	}
}

func TestUpdateMissingDocument(t *testing.T) {
	docs := newMockStore()
	s := NewStore(docs)

	err := s.Update(context.Background(), func(c *Configuration) error {
		c.Team = append(c.Team, "Aya")
		return nil
	})
	if !errors.Is(err, ErrConfigMissing) {
		t.Errorf("expected ErrConfigMissing, got %v", err)
	}
	if len(docs.docs) != 0 {
		t.Error("expected nothing written after failed update")
	}
}

func TestReloadMalformedDocument(t *testing.T) {
	docs := newMockStore()
	docs.seedConfig(`{"TEAM": "not a list"}`)
	s := NewStore(docs)
	if _, err := s.Reload(context.Background()); !errors.Is(err, ErrConfigMalformed) {
		t.Errorf("expected ErrConfigMalformed, got %v", err)
	}
}

func TestReloadRejectsOutOfRangeHours(t *testing.T) {
	docs := newMockStore()
	docs.seedConfig(`{"TEAM": ["Aya"], "PROMPT_HOUR": 99}`)
	s := NewStore(docs)
	if _, err := s.Reload(context.Background()); !errors.Is(err, ErrConfigMalformed) {
		t.Errorf("expected ErrConfigMalformed, got %v", err)
	}
}

func TestReloadAppliesDefaults(t *testing.T) {
	docs := newMockStore()
	docs.seedConfig(`{"TEAM": ["Aya"]}`)
	s := NewStore(docs)

	cfg, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.PromptHour != 9 || cfg.PromptMinute != 0 {
		t.Errorf("expected default prompt time 09:00, got %02d:%02d", cfg.PromptHour, cfg.PromptMinute)
	}
	if cfg.SummaryHour != 18 || cfg.SummaryMinute != 0 {
		t.Errorf("expected default summary time 18:00, got %02d:%02d", cfg.SummaryHour, cfg.SummaryMinute)
	}
	if cfg.LiveScrumAt != "11:00" {
		t.Errorf("expected default live scrum 11:00, got %s", cfg.LiveScrumAt)
	}
}

func TestLegacyVacationsKeyMigrates(t *testing.T) {
	docs := newMockStore()
	docs.seedConfig(`{
		"TEAM": ["Aya"],
		"VACITIONS": {"Aya": [["2024-05-06", "2024-05-10"]]}
	}`)
	s := NewStore(docs)

	cfg, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cfg.Vacations["Aya"]) != 1 {
		t.Fatalf("expected migrated vacations, got %v", cfg.Vacations)
	}

	// the next write rewrites the document under the correct key only
	if err := s.Update(context.Background(), func(c *Configuration) error { return nil }); err != nil {
		t.Fatalf("failed to update: %v", err)
	}
	raw := docs.rawConfig()
	if strings.Contains(raw, "VACITIONS") {
		t.Error("expected legacy key to disappear after save")
	}
	if !strings.Contains(raw, "VACATIONS") {
		t.Error("expected correct key in saved document")
	}
}

func TestCorrectKeyWinsOverLegacy(t *testing.T) {
	docs := newMockStore()
	docs.seedConfig(`{
		"TEAM": ["Aya"],
		"VACATIONS": {},
		"VACITIONS": {"Aya": [["2024-05-06", "2024-05-10"]]}
	}`)
	s := NewStore(docs)

	cfg, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cfg.Vacations) != 0 {
		t.Errorf("expected empty vacations from the correct key, got %v", cfg.Vacations)
	}
}

func TestUpdateLeavesSnapshotAlone(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	if err := s.AddMember(ctx, "Dan"); err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	if _, ok := s.Snapshot().CanonicalName("Dan"); ok {
		t.Error("expected snapshot to stay unchanged until reload")
	}

	persisted, err := s.Persisted(ctx)
	if err != nil {
		t.Fatalf("failed to read persisted: %v", err)
	}
	if _, ok := persisted.CanonicalName("Dan"); !ok {
		t.Error("expected persisted document to contain new member")
	}

	if _, err := s.Reload(ctx); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if _, ok := s.Snapshot().CanonicalName("Dan"); !ok {
		t.Error("expected snapshot to pick up member after reload")
	}
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	s, docs := newLoadedStore(t)

	var hookRuns int
	s.OnReload(func(*Configuration) { hookRuns++ })

	docs.seedConfig(`{broken`)
	if _, err := s.Reload(context.Background()); err == nil {
		t.Fatal("expected error, got none")
	}

	if s.Snapshot() == nil || len(s.Snapshot().Team) != 3 {
		t.Error("expected previous snapshot to survive failed reload")
	}
	if hookRuns != 0 {
		t.Errorf("expected no hook runs on failure, got %d", hookRuns)
	}
}

func TestOnReloadHookFires(t *testing.T) {
	s, _ := newLoadedStore(t)

	var got *Configuration
	s.OnReload(func(c *Configuration) { got = c })

	cfg, err := s.Reload(context.Background())
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if got != cfg {
		t.Error("expected hook to receive the fresh configuration")
	}
}

func TestAddMemberRejectsDuplicates(t *testing.T) {
	s, _ := newLoadedStore(t)

	err := s.AddMember(context.Background(), "aya")
	if !errors.Is(err, ErrMemberExists) {
		t.Errorf("expected ErrMemberExists for case-insensitive duplicate, got %v", err)
	}
}

func TestAddMemberSeedsScheduleAndVacations(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	if err := s.AddMember(ctx, "Dan"); err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	persisted, err := s.Persisted(ctx)
	if err != nil {
		t.Fatalf("failed to read persisted: %v", err)
	}
	if _, ok := persisted.WeeklySchedule["Dan"]; !ok {
		t.Error("expected empty schedule entry for new member")
	}
	if _, ok := persisted.Vacations["Dan"]; !ok {
		t.Error("expected empty vacations entry for new member")
	}
}

func TestRemoveMember(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	name, err := s.RemoveMember(ctx, "bek")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if name != "Bek" {
		t.Errorf("expected canonical name Bek, got %s", name)
	}

	persisted, err := s.Persisted(ctx)
	if err != nil {
		t.Fatalf("failed to read persisted: %v", err)
	}
	if _, ok := persisted.CanonicalName("Bek"); ok {
		t.Error("expected member to be gone from roster")
	}
	if _, ok := persisted.WeeklySchedule["Bek"]; ok {
		t.Error("expected schedule entry to be gone")
	}
	if _, ok := persisted.Vacations["Bek"]; ok {
		t.Error("expected vacations entry to be gone")
	}

	if _, err := s.RemoveMember(ctx, "Nobody"); !errors.Is(err, ErrUnknownMember) {
		t.Errorf("expected ErrUnknownMember, got %v", err)
	}
}

func TestSetWeekdays(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	name, err := s.SetWeekdays(ctx, "cem", []int{5, 1, 3, 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if name != "Cem" {
		t.Errorf("expected canonical name Cem, got %s", name)
	}

	persisted, err := s.Persisted(ctx)
	if err != nil {
		t.Fatalf("failed to read persisted: %v", err)
	}
	got := persisted.WeeklySchedule["Cem"]
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Errorf("expected sorted deduplicated days [1 3 5], got %v", got)
	}

	if _, err := s.SetWeekdays(ctx, "Cem", []int{0}); !errors.Is(err, ErrInvalidWeekdaySet) {
		t.Errorf("expected ErrInvalidWeekdaySet, got %v", err)
	}
	if _, err := s.SetWeekdays(ctx, "Cem", []int{8}); !errors.Is(err, ErrInvalidWeekdaySet) {
		t.Errorf("expected ErrInvalidWeekdaySet, got %v", err)
	}
}

func TestAddVacationValidatesDates(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	if _, err := s.AddVacation(ctx, "Aya", "2024-13-40", "2024-05-10"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}

	name, err := s.AddVacation(ctx, "aya", "2024-06-01", "2024-06-07")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if name != "Aya" {
		t.Errorf("expected canonical name Aya, got %s", name)
	}

	persisted, err := s.Persisted(ctx)
	if err != nil {
		t.Fatalf("failed to read persisted: %v", err)
	}
	if len(persisted.Vacations["Aya"]) != 1 {
		t.Errorf("expected one vacation range, got %v", persisted.Vacations["Aya"])
	}
}

func TestRemoveVacationExactMatch(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	if _, err := s.AddVacation(ctx, "Bek", "2024-07-01", "2024-07-05"); err != nil {
		t.Fatalf("failed to add vacation: %v", err)
	}

	if _, err := s.RemoveVacation(ctx, "Bek", "2024-05-06", "2024-05-10"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	persisted, err := s.Persisted(ctx)
	if err != nil {
		t.Fatalf("failed to read persisted: %v", err)
	}
	got := persisted.Vacations["Bek"]
	if len(got) != 1 || got[0] != (VacationRange{"2024-07-01", "2024-07-05"}) {
		t.Errorf("expected only the july range to remain, got %v", got)
	}

	// removing a range that was never recorded is not an error
	if _, err := s.RemoveVacation(ctx, "Bek", "2030-01-01", "2030-01-02"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestSetPromptTime(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	if err := s.SetPromptTime(ctx, 24, 0); !errors.Is(err, ErrInvalidTimeSpec) {
		t.Errorf("expected ErrInvalidTimeSpec, got %v", err)
	}
	if err := s.SetPromptTime(ctx, 10, 15); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	persisted, err := s.Persisted(ctx)
	if err != nil {
		t.Fatalf("failed to read persisted: %v", err)
	}
	if persisted.PromptHour != 10 || persisted.PromptMinute != 15 {
		t.Errorf("expected 10:15, got %02d:%02d", persisted.PromptHour, persisted.PromptMinute)
	}
	if persisted.PromptCronSpec() != "15 10 * * 1-5" {
		t.Errorf("unexpected cron spec %s", persisted.PromptCronSpec())
	}
}

func TestSetLiveScrumAtNormalizes(t *testing.T) {
	s, _ := newLoadedStore(t)
	ctx := context.Background()

	if err := s.SetLiveScrumAt(ctx, "9:5"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	persisted, err := s.Persisted(ctx)
	if err != nil {
		t.Fatalf("failed to read persisted: %v", err)
	}
	if persisted.LiveScrumAt != "09:05" {
		t.Errorf("expected normalized 09:05, got %s", persisted.LiveScrumAt)
	}

	if err := s.SetLiveScrumAt(ctx, "25:00"); !errors.Is(err, ErrInvalidTimeSpec) {
		t.Errorf("expected ErrInvalidTimeSpec, got %v", err)
	}
}
