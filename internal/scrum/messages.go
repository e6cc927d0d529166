package scrum

import (
	"fmt"
	"strings"

	"github.com/bakulab/scrumbot/internal/ledger"
)

const (
	msgPromptBody = "Salam! Bu gün remote-san. Xahiş edirəm bu 3 suala qısa cavab yaz:\n" +
		"1) Dünən nə etdin?\n" +
		"2) Bu gün nə edəcəksən?\n" +
		"3) Bloklayan problem varmı?\n" +
		"Qeyd: Cavabınızı saat %02d:%02d-a kimi göndərin."

	msgPromptsSent    = "🕘 Remote olanlara scrum sorğusu göndərildi: %s"
	msgNoRemoteToday  = "🕘 Bu gün remote siyahısı boşdur (scrum sorğusu göndərilmədi)."
	msgLiveScrum      = "📣 Remote olmayanlar üçün %s-də live scrum: %s"
	msgSummaryHeader  = "📋 %s — Scrum cavabları:"
	msgSummaryEmpty   = "📋 %s üçün cavab yoxdur."
	msgSummaryAnswers = "• %s: %s"
)

func promptText(cfg *Configuration) string {
	return fmt.Sprintf(msgPromptBody, cfg.SummaryHour, cfg.SummaryMinute)
}

func promptGroupText(sent []string) string {
	if len(sent) == 0 {
		return msgNoRemoteToday
	}
	return fmt.Sprintf(msgPromptsSent, strings.Join(sent, ", "))
}

func liveScrumText(at string, nonRemote []string) string {
	return fmt.Sprintf(msgLiveScrum, at, strings.Join(nonRemote, ", "))
}

func summaryText(date string, entries []ledger.Entry) string {
	if len(entries) == 0 {
		return fmt.Sprintf(msgSummaryEmpty, date)
	}
	lines := []string{fmt.Sprintf(msgSummaryHeader, date)}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf(msgSummaryAnswers, e.Member, e.Text))
	}
	return strings.Join(lines, "\n")
}
