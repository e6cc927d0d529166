package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"slices"
	"sync"

	"github.com/bakulab/scrumbot/internal/store"
)

// Gate keeps the allow-list of elevated chat addresses. Addresses join the
// list by presenting the shared PIN and stay on it across restarts.
type Gate struct {
	pin  string
	docs store.Store

	mu     sync.Mutex
	admins []int64
}

func NewGate(ctx context.Context, docs store.Store, pin string) (*Gate, error) {
	g := &Gate{pin: pin, docs: docs}
	if err := docs.Load(ctx, store.DocAdmins, &g.admins); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return g, nil
}

func (g *Gate) IsAdmin(address int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Contains(g.admins, address)
}

// CheckPIN compares a candidate against the configured PIN in constant time.
func (g *Gate) CheckPIN(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(g.pin)) == 1
}

// Grant puts address on the allow-list. Granting an existing admin again is a
// no-op that skips the write.
func (g *Gate) Grant(ctx context.Context, address int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if slices.Contains(g.admins, address) {
		return nil
	}
	g.admins = append(g.admins, address)
	return g.docs.Save(ctx, store.DocAdmins, g.admins)
}
