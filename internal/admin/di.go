package admin

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/bakulab/scrumbot/internal/config"
	"github.com/bakulab/scrumbot/internal/store"
)

const loadTimeout = 15 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Gate, error) {
		cfg := do.MustInvoke[*config.Config](i)
		docs := do.MustInvoke[store.Store](i)
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return NewGate(ctx, docs, cfg.AdminPIN)
	})
}
