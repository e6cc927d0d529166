package identity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bakulab/scrumbot/internal/store"
)

// Binding ties a roster name to the chat address it registered from.
type Binding struct {
	Address      int64     `json:"address"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Registry maps team member names to private chat addresses. Bindings are
// kept in memory and written through to the users document on every change.
type Registry struct {
	docs store.Store

	mu       sync.Mutex
	bindings map[string]Binding
}

func NewRegistry(ctx context.Context, docs store.Store) (*Registry, error) {
	r := &Registry{docs: docs, bindings: map[string]Binding{}}
	if err := docs.Load(ctx, store.DocUsers, &r.bindings); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return r, nil
}

// Register binds member to address, replacing any previous binding for that
// member. Registering from a new device simply overwrites the old address.
func (r *Registry) Register(ctx context.Context, member string, address int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[member] = Binding{Address: address, RegisteredAt: time.Now().UTC()}
	return r.docs.Save(ctx, store.DocUsers, r.bindings)
}

// Address looks up the chat address bound to member.
func (r *Registry) Address(member string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bindings[member]
	return b.Address, ok
}

// Resolve finds the member bound to an address. When several members share an
// address the most recent registration wins; equal timestamps fall back to
// the lexicographically smallest name so the answer never depends on map
// iteration order.
func (r *Registry) Resolve(address int64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	best := ""
	var bestAt time.Time
	for name, b := range r.bindings {
		if b.Address != address {
			continue
		}
		switch {
		case best == "":
			best, bestAt = name, b.RegisteredAt
		case b.RegisteredAt.After(bestAt):
			best, bestAt = name, b.RegisteredAt
		case b.RegisteredAt.Equal(bestAt) && name < best:
			best = name
		}
	}
	return best, best != ""
}
