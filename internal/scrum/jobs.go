package scrum

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/bakulab/scrumbot/internal/chat"
	"github.com/bakulab/scrumbot/internal/config"
	"github.com/bakulab/scrumbot/internal/dates"
	"github.com/bakulab/scrumbot/internal/identity"
	"github.com/bakulab/scrumbot/internal/ledger"
	"github.com/bakulab/scrumbot/internal/sched"
)

// Trigger ids under which the two scheduled jobs are registered.
const (
	TriggerPrompt  = "prompt"
	TriggerSummary = "summary"
)

// Jobs owns the two scheduled operations: the morning prompt round and the
// evening summary post.
type Jobs struct {
	groupChatID int64
	store       *Store
	registry    *identity.Registry
	ledger      *ledger.Ledger
	sender      chat.Sender
	loc         *time.Location
	now         func() time.Time
}

func NewJobs(cfg *config.Config, store *Store, registry *identity.Registry, led *ledger.Ledger, sender chat.Sender) *Jobs {
	initMetrics()
	return &Jobs{
		groupChatID: cfg.GroupChatID,
		store:       store,
		registry:    registry,
		ledger:      led,
		sender:      sender,
		loc:         cfg.Location(),
		now:         time.Now,
	}
}

// RegisterTriggers arms both triggers from cfg, replacing earlier versions.
// Wired as the configuration reload hook so new clock times take effect the
// moment a reload lands.
func (j *Jobs) RegisterTriggers(d *sched.Dispatcher, cfg *Configuration) {
	err := d.RegisterOrReplace(TriggerPrompt, cfg.PromptCronSpec(), func() {
		j.SendPrompts(context.Background())
	})
	if err != nil {
		slog.Error("failed to register prompt trigger", "error", err)
	}
	err = d.RegisterOrReplace(TriggerSummary, cfg.SummaryCronSpec(), func() {
		j.PostSummary(context.Background())
	})
	if err != nil {
		slog.Error("failed to register summary trigger", "error", err)
	}
}

// SendPrompts DMs the three questions to everyone remote today, then tells
// the group who was prompted and when the office crowd meets live.
func (j *Jobs) SendPrompts(ctx context.Context) {
	jobRunsTotal.WithLabelValues(TriggerPrompt).Inc()

	cfg := j.store.Snapshot()
	if cfg == nil {
		slog.Error("prompt job skipped: configuration never loaded")
		return
	}

	day := dates.Day(j.now(), j.loc)
	remote := cfg.RemoteToday(day)

	var nonRemote []string
	for _, member := range cfg.Team {
		if cfg.IsOnVacation(member, day) {
			continue
		}
		if slices.Contains(remote, member) {
			continue
		}
		nonRemote = append(nonRemote, member)
	}

	text := promptText(cfg)
	var sent []string
	for _, member := range remote {
		address, ok := j.registry.Address(member)
		if !ok {
			slog.Warn("prompt skipped: member has no registered chat", "member", member)
			continue
		}
		if err := j.sender.SendMessage(ctx, address, text); err != nil {
			sendFailuresTotal.Inc()
			slog.Error("failed to send scrum prompt", "member", member, "error", err)
			continue
		}
		promptsSentTotal.Inc()
		sent = append(sent, member)
	}

	j.postToGroup(ctx, promptGroupText(sent))
	if len(nonRemote) > 0 {
		j.postToGroup(ctx, liveScrumText(cfg.LiveScrumAt, nonRemote))
	}

	slog.Info("scrum prompts dispatched",
		"date", day.Format(dates.Format),
		"sent", len(sent),
		"remote", len(remote),
		"office", len(nonRemote))
}

// PostSummary posts today's collected answers to the group chat.
func (j *Jobs) PostSummary(ctx context.Context) {
	jobRunsTotal.WithLabelValues(TriggerSummary).Inc()

	date := j.now().In(j.loc).Format(dates.Format)
	entries := j.ledger.Day(date)
	j.postToGroup(ctx, summaryText(date, entries))

	slog.Info("scrum summary posted", "date", date, "answers", len(entries))
}

func (j *Jobs) postToGroup(ctx context.Context, text string) {
	if j.groupChatID == 0 {
		slog.Warn("group message skipped: GROUP_CHAT_ID is not set")
		return
	}
	if err := j.sender.SendMessage(ctx, j.groupChatID, text); err != nil {
		sendFailuresTotal.Inc()
		slog.Error("failed to post group message", "error", err)
	}
}
