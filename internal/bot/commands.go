package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/bakulab/scrumbot/internal/chat"
	"github.com/bakulab/scrumbot/internal/dates"
	"github.com/bakulab/scrumbot/internal/scrum"
)

const (
	configShowLimit = 3800
	configShowChunk = 3500
)

type commandHandler func(b *Bot, ctx context.Context, u chat.Update)

type command struct {
	run         commandHandler
	adminOnly   bool
	privateOnly bool
}

var commands = map[string]command{
	"start":    {run: (*Bot).cmdStart, privateOnly: true},
	"whoami":   {run: (*Bot).cmdWhoami},
	"groupid":  {run: (*Bot).cmdGroupID},
	"job":      {run: (*Bot).cmdJob},
	"register": {run: (*Bot).cmdRegister, privateOnly: true},
	"auth":     {run: (*Bot).cmdAuth, privateOnly: true},

	"cfg_show":   {run: (*Bot).cmdConfigShow, adminOnly: true},
	"cfg_reload": {run: (*Bot).cmdConfigReload, adminOnly: true},
	"team_list":  {run: (*Bot).cmdTeamList, adminOnly: true},
	"team_add":   {run: (*Bot).cmdTeamAdd, adminOnly: true},
	"team_rm":    {run: (*Bot).cmdTeamRemove, adminOnly: true},
	"sched_show": {run: (*Bot).cmdScheduleShow, adminOnly: true},
	"sched_set":  {run: (*Bot).cmdScheduleSet, adminOnly: true},
	"vac_show":   {run: (*Bot).cmdVacationShow, adminOnly: true},
	"vac_add":    {run: (*Bot).cmdVacationAdd, adminOnly: true},
	"vac_rm":     {run: (*Bot).cmdVacationRemove, adminOnly: true},
	"time_set":   {run: (*Bot).cmdTimeSet, adminOnly: true},
	"live_set":   {run: (*Bot).cmdLiveSet, adminOnly: true},
	"sched_info": {run: (*Bot).cmdScheduleInfo, adminOnly: true},
}

func (b *Bot) cmdStart(ctx context.Context, u chat.Update) {
	b.reply(ctx, u, fmt.Sprintf(msgStart, strings.Join(b.snapshot().Team, ", ")))
}

func (b *Bot) cmdWhoami(ctx context.Context, u chat.Update) {
	b.reply(ctx, u, fmt.Sprintf(msgWhoami, u.ChatID))
}

func (b *Bot) cmdGroupID(ctx context.Context, u chat.Update) {
	b.reply(ctx, u, fmt.Sprintf(msgGroupID, u.ChatID))
}

func (b *Bot) cmdJob(ctx context.Context, u chat.Update) {
	cfg := b.snapshot()
	day := dates.Day(b.now(), b.loc)

	lines := []string{fmt.Sprintf(msgJobHeader, day.Format(dates.Format))}
	for _, member := range cfg.Team {
		lines = append(lines, fmt.Sprintf(msgJobLine, member, modeLabel(cfg.MemberMode(member, day))))
	}
	b.reply(ctx, u, strings.Join(lines, "\n"))
}

func modeLabel(mode scrum.Mode) string {
	switch mode {
	case scrum.ModeVacation:
		return modeVacationLabel
	case scrum.ModeRemote:
		return modeRemoteLabel
	default:
		return modeOfficeLabel
	}
}

func (b *Bot) cmdRegister(ctx context.Context, u chat.Update) {
	raw := strings.TrimSpace(u.Args)
	if raw == "" {
		b.reply(ctx, u, msgRegisterUsage)
		return
	}

	cfg := b.snapshot()
	name, ok := cfg.CanonicalName(raw)
	if !ok {
		b.reply(ctx, u, fmt.Sprintf(msgRegisterUnknown, raw, strings.Join(cfg.Team, ", ")))
		return
	}

	if err := b.registry.Register(ctx, name, u.ChatID); err != nil {
		slog.Error("failed to register member", "member", name, "chat_id", u.ChatID, "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
		return
	}
	slog.Info("member registered", "member", name, "chat_id", u.ChatID)
	b.reply(ctx, u, fmt.Sprintf(msgRegistered, name, u.ChatID))
}

func (b *Bot) cmdAuth(ctx context.Context, u chat.Update) {
	pin := strings.TrimSpace(u.Args)
	if pin == "" {
		b.reply(ctx, u, msgAuthUsage)
		return
	}
	if !b.admins.CheckPIN(pin) {
		slog.Warn("admin auth rejected", "chat_id", u.ChatID)
		b.reply(ctx, u, msgAuthBad)
		return
	}
	if err := b.admins.Grant(ctx, u.ChatID); err != nil {
		slog.Error("failed to grant admin", "chat_id", u.ChatID, "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
		return
	}
	slog.Info("admin granted", "chat_id", u.ChatID)
	b.reply(ctx, u, msgAuthOK)
}

func (b *Bot) cmdConfigShow(ctx context.Context, u chat.Update) {
	persisted, err := b.scrum.Persisted(ctx)
	if err != nil {
		b.reply(ctx, u, fmt.Sprintf(msgReloadFailed, err))
		return
	}

	pretty, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		slog.Error("failed to render configuration", "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
		return
	}

	s := string(pretty)
	if len(s) <= configShowLimit {
		b.reply(ctx, u, "```json\n"+s+"\n```")
		return
	}
	b.reply(ctx, u, msgConfigParts)
	for i := 0; i < len(s); i += configShowChunk {
		end := min(i+configShowChunk, len(s))
		b.reply(ctx, u, "```json\n"+s[i:end]+"\n```")
	}
}

func (b *Bot) cmdConfigReload(ctx context.Context, u chat.Update) {
	if _, err := b.scrum.Reload(ctx); err != nil {
		b.reply(ctx, u, fmt.Sprintf(msgReloadFailed, err))
		return
	}
	b.reply(ctx, u, msgReloadOK)
}

func (b *Bot) cmdTeamList(ctx context.Context, u chat.Update) {
	persisted, err := b.scrum.Persisted(ctx)
	if err != nil {
		b.reply(ctx, u, fmt.Sprintf(msgReloadFailed, err))
		return
	}
	if len(persisted.Team) == 0 {
		b.reply(ctx, u, msgTeamEmpty)
		return
	}
	b.reply(ctx, u, msgTeamHeader+"\n- "+strings.Join(persisted.Team, "\n- "))
}

func (b *Bot) cmdTeamAdd(ctx context.Context, u chat.Update) {
	name := strings.TrimSpace(u.Args)
	if name == "" {
		b.reply(ctx, u, msgTeamAddUsage)
		return
	}

	err := b.scrum.AddMember(ctx, name)
	switch {
	case errors.Is(err, scrum.ErrMemberExists):
		b.reply(ctx, u, fmt.Sprintf(msgTeamExists, name))
	case err != nil:
		slog.Error("failed to add member", "member", name, "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
	default:
		b.reply(ctx, u, fmt.Sprintf(msgTeamAdded, name))
	}
}

func (b *Bot) cmdTeamRemove(ctx context.Context, u chat.Update) {
	raw := strings.TrimSpace(u.Args)
	if raw == "" {
		b.reply(ctx, u, msgTeamRmUsage)
		return
	}

	name, err := b.scrum.RemoveMember(ctx, raw)
	switch {
	case errors.Is(err, scrum.ErrUnknownMember):
		b.reply(ctx, u, fmt.Sprintf(msgTeamNotFound, raw))
	case err != nil:
		slog.Error("failed to remove member", "member", raw, "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
	default:
		b.reply(ctx, u, fmt.Sprintf(msgTeamRemoved, name))
	}
}

func (b *Bot) cmdScheduleShow(ctx context.Context, u chat.Update) {
	persisted, err := b.scrum.Persisted(ctx)
	if err != nil {
		b.reply(ctx, u, fmt.Sprintf(msgReloadFailed, err))
		return
	}

	if raw := strings.TrimSpace(u.Args); raw != "" {
		name, ok := persisted.CanonicalName(raw)
		if !ok {
			b.reply(ctx, u, fmt.Sprintf(msgTeamNotFound, raw))
			return
		}
		if days := persisted.WeeklySchedule[name]; len(days) > 0 {
			b.reply(ctx, u, fmt.Sprintf("%s: %v", name, days))
		} else {
			b.reply(ctx, u, fmt.Sprintf("%s: —", name))
		}
		return
	}

	if len(persisted.WeeklySchedule) == 0 {
		b.reply(ctx, u, msgSchedEmpty)
		return
	}
	lines := []string{msgSchedHeader}
	for _, name := range scheduleNames(persisted) {
		lines = append(lines, fmt.Sprintf("- %s: %v", name, persisted.WeeklySchedule[name]))
	}
	b.reply(ctx, u, strings.Join(lines, "\n"))
}

// scheduleNames lists schedule keys in roster order, with any entries for
// names no longer on the roster sorted after them.
func scheduleNames(cfg *scrum.Configuration) []string {
	var names []string
	seen := map[string]bool{}
	for _, name := range cfg.Team {
		if _, ok := cfg.WeeklySchedule[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extras []string
	for name := range maps.Keys(cfg.WeeklySchedule) {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	slices.Sort(extras)
	return append(names, extras...)
}

func (b *Bot) cmdScheduleSet(ctx context.Context, u chat.Update) {
	raw, rest, found := strings.Cut(strings.TrimSpace(u.Args), " ")
	if !found || strings.TrimSpace(rest) == "" {
		b.reply(ctx, u, msgSchedSetUsage)
		return
	}

	days, err := scrum.ParseWeekdays(rest)
	if err != nil {
		b.reply(ctx, u, msgSchedBadDays)
		return
	}

	name, err := b.scrum.SetWeekdays(ctx, raw, days)
	switch {
	case errors.Is(err, scrum.ErrUnknownMember):
		b.reply(ctx, u, fmt.Sprintf(msgTeamNotFound, raw))
	case errors.Is(err, scrum.ErrInvalidWeekdaySet):
		b.reply(ctx, u, msgSchedBadDays)
	case err != nil:
		slog.Error("failed to set schedule", "member", raw, "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
	default:
		b.reply(ctx, u, fmt.Sprintf(msgSchedSet, name, days))
	}
}

func (b *Bot) cmdVacationShow(ctx context.Context, u chat.Update) {
	persisted, err := b.scrum.Persisted(ctx)
	if err != nil {
		b.reply(ctx, u, fmt.Sprintf(msgReloadFailed, err))
		return
	}

	if raw := strings.TrimSpace(u.Args); raw != "" {
		name, ok := persisted.CanonicalName(raw)
		if !ok {
			b.reply(ctx, u, fmt.Sprintf(msgTeamNotFound, raw))
			return
		}
		b.reply(ctx, u, fmt.Sprintf("%s: %s", name, vacationList(persisted.Vacations[name])))
		return
	}

	if len(persisted.Vacations) == 0 {
		b.reply(ctx, u, msgVacEmpty)
		return
	}
	lines := []string{msgVacHeader}
	for _, name := range vacationNames(persisted) {
		lines = append(lines, fmt.Sprintf("- %s: %s", name, vacationList(persisted.Vacations[name])))
	}
	b.reply(ctx, u, strings.Join(lines, "\n"))
}

func vacationNames(cfg *scrum.Configuration) []string {
	var names []string
	seen := map[string]bool{}
	for _, name := range cfg.Team {
		if _, ok := cfg.Vacations[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extras []string
	for name := range maps.Keys(cfg.Vacations) {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	slices.Sort(extras)
	return append(names, extras...)
}

func vacationList(ranges []scrum.VacationRange) string {
	if len(ranges) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, "; ")
}

func (b *Bot) cmdVacationAdd(ctx context.Context, u chat.Update) {
	fields := strings.Fields(u.Args)
	if len(fields) != 3 {
		b.reply(ctx, u, msgVacAddUsage)
		return
	}

	name, err := b.scrum.AddVacation(ctx, fields[0], fields[1], fields[2])
	switch {
	case errors.Is(err, scrum.ErrInvalidDateRange):
		b.reply(ctx, u, msgVacBadDate)
	case errors.Is(err, scrum.ErrUnknownMember):
		b.reply(ctx, u, fmt.Sprintf(msgTeamNotFound, fields[0]))
	case err != nil:
		slog.Error("failed to add vacation", "member", fields[0], "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
	default:
		b.reply(ctx, u, fmt.Sprintf(msgVacAdded, name, fields[1], fields[2]))
	}
}

func (b *Bot) cmdVacationRemove(ctx context.Context, u chat.Update) {
	fields := strings.Fields(u.Args)
	if len(fields) != 3 {
		b.reply(ctx, u, msgVacRmUsage)
		return
	}

	name, err := b.scrum.RemoveVacation(ctx, fields[0], fields[1], fields[2])
	switch {
	case errors.Is(err, scrum.ErrUnknownMember):
		b.reply(ctx, u, fmt.Sprintf(msgTeamNotFound, fields[0]))
	case err != nil:
		slog.Error("failed to remove vacation", "member", fields[0], "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
	default:
		b.reply(ctx, u, fmt.Sprintf(msgVacRemoved, name, fields[1], fields[2]))
	}
}

func (b *Bot) cmdTimeSet(ctx context.Context, u chat.Update) {
	fields := strings.Fields(u.Args)
	if len(fields) != 2 {
		b.reply(ctx, u, msgTimeSetUsage)
		return
	}
	which := strings.ToLower(fields[0])
	if which != "prompt" && which != "summary" {
		b.reply(ctx, u, msgTimeSetUsage)
		return
	}

	hour, minute, err := dates.ParseHHMM(fields[1])
	if err != nil {
		b.reply(ctx, u, msgBadClock)
		return
	}

	if which == "prompt" {
		err = b.scrum.SetPromptTime(ctx, hour, minute)
	} else {
		err = b.scrum.SetSummaryTime(ctx, hour, minute)
	}
	if err != nil {
		slog.Error("failed to set job time", "job", which, "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
		return
	}
	b.reply(ctx, u, fmt.Sprintf(msgTimeSaved, which, hour, minute))
}

func (b *Bot) cmdLiveSet(ctx context.Context, u chat.Update) {
	raw := strings.TrimSpace(u.Args)
	if raw == "" {
		b.reply(ctx, u, msgLiveSetUsage)
		return
	}

	hour, minute, err := dates.ParseHHMM(raw)
	if err != nil {
		b.reply(ctx, u, msgBadClock)
		return
	}
	normalized := fmt.Sprintf("%02d:%02d", hour, minute)

	if err := b.scrum.SetLiveScrumAt(ctx, normalized); err != nil {
		slog.Error("failed to set live scrum time", "error", err)
		b.reply(ctx, u, fmt.Sprintf(msgOpFailed, err))
		return
	}
	b.reply(ctx, u, fmt.Sprintf(msgLiveSaved, normalized))
}

func (b *Bot) cmdScheduleInfo(ctx context.Context, u chat.Update) {
	runs := b.disp.NextRuns()
	if len(runs) == 0 {
		b.reply(ctx, u, msgSchedInfoEmpty)
		return
	}

	lines := []string{msgSchedInfoHeader}
	for _, id := range slices.Sorted(maps.Keys(runs)) {
		at := runs[id].In(b.loc).Format("2006-01-02 15:04:05")
		lines = append(lines, fmt.Sprintf(msgSchedInfoLine, id, at))
	}
	b.reply(ctx, u, strings.Join(lines, "\n"))
}
