package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/bakulab/scrumbot/internal/store"
)

// Entry is one member's answer for a day.
type Entry struct {
	Member string `json:"member"`
	Text   string `json:"text"`
}

// Ledger collects the daily answers, keyed by calendar date. Entries for a
// day keep the order of first submission; a repeated answer from the same
// member replaces the text in place.
type Ledger struct {
	docs store.Store

	mu   sync.Mutex
	days map[string][]Entry
}

func NewLedger(ctx context.Context, docs store.Store) (*Ledger, error) {
	l := &Ledger{docs: docs, days: map[string][]Entry{}}
	if err := docs.Load(ctx, store.DocAnswers, &l.days); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return l, nil
}

// Record stores member's answer for date and writes the document through.
func (l *Ledger) Record(ctx context.Context, date, member, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.days[date]
	replaced := false
	for i := range entries {
		if entries[i].Member == member {
			entries[i].Text = text
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, Entry{Member: member, Text: text})
	}
	l.days[date] = entries
	return l.docs.Save(ctx, store.DocAnswers, l.days)
}

// Day returns the answers recorded for date in first-submission order.
func (l *Ledger) Day(date string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.days[date]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
