package bot

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/bakulab/scrumbot/internal/admin"
	"github.com/bakulab/scrumbot/internal/chat"
	"github.com/bakulab/scrumbot/internal/config"
	"github.com/bakulab/scrumbot/internal/dates"
	"github.com/bakulab/scrumbot/internal/identity"
	"github.com/bakulab/scrumbot/internal/ledger"
	"github.com/bakulab/scrumbot/internal/sched"
	"github.com/bakulab/scrumbot/internal/scrum"
)

// Bot routes decoded chat updates: commands through the command table, plain
// private text into the answer ledger.
type Bot struct {
	scrum    *scrum.Store
	registry *identity.Registry
	ledger   *ledger.Ledger
	admins   *admin.Gate
	sender   chat.Sender
	disp     *sched.Dispatcher
	loc      *time.Location
	now      func() time.Time
}

func NewBot(
	cfg *config.Config,
	scrumStore *scrum.Store,
	registry *identity.Registry,
	led *ledger.Ledger,
	admins *admin.Gate,
	sender chat.Sender,
	disp *sched.Dispatcher,
) *Bot {
	return &Bot{
		scrum:    scrumStore,
		registry: registry,
		ledger:   led,
		admins:   admins,
		sender:   sender,
		disp:     disp,
		loc:      cfg.Location(),
		now:      time.Now,
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, u chat.Update) {
	if u.IsCommand {
		b.dispatchCommand(ctx, u)
		return
	}
	b.handleAnswer(ctx, u)
}

func (b *Bot) dispatchCommand(ctx context.Context, u chat.Update) {
	cmd, ok := commands[u.Command]
	if !ok {
		slog.Debug("unknown command ignored", "command", u.Command, "chat_id", u.ChatID)
		return
	}
	// admin commands are implicitly private: they never react in the group
	if (cmd.privateOnly || cmd.adminOnly) && u.Kind != chat.KindPrivate {
		return
	}
	if cmd.adminOnly && !b.admins.IsAdmin(u.ChatID) {
		slog.Warn("admin command rejected", "command", u.Command, "chat_id", u.ChatID)
		b.reply(ctx, u, msgAdminRequired)
		return
	}

	slog.Info("command received", "command", u.Command, "chat_id", u.ChatID)
	cmd.run(b, ctx, u)
}

// handleAnswer records plain private text as the sender's scrum answer for
// today. Group chatter is ignored.
func (b *Bot) handleAnswer(ctx context.Context, u chat.Update) {
	if u.Kind != chat.KindPrivate {
		return
	}
	text := strings.TrimSpace(u.Text)
	if text == "" {
		return
	}

	member, ok := b.registry.Resolve(u.ChatID)
	if !ok {
		b.reply(ctx, u, msgPleaseRegister)
		return
	}

	day := dates.Day(b.now(), b.loc)
	date := day.Format(dates.Format)
	if err := b.ledger.Record(ctx, date, member, text); err != nil {
		slog.Error("failed to record answer", "member", member, "date", date, "error", err)
		return
	}
	slog.Info("answer recorded", "member", member, "date", date)

	if slices.Contains(b.snapshot().RemoteToday(day), member) {
		b.reply(ctx, u, msgAnswerSaved)
		return
	}
	b.reply(ctx, u, msgAnswerSavedNotRemote)
}

// snapshot never returns nil so command handlers can read it unconditionally.
// Startup refuses to run without a loaded configuration, this only guards
// tests and future call sites.
func (b *Bot) snapshot() *scrum.Configuration {
	if cfg := b.scrum.Snapshot(); cfg != nil {
		return cfg
	}
	return &scrum.Configuration{}
}

func (b *Bot) reply(ctx context.Context, u chat.Update, text string) {
	if err := b.sender.SendMessage(ctx, u.ChatID, text); err != nil {
		slog.Error("failed to send reply", "chat_id", u.ChatID, "error", err)
	}
}
