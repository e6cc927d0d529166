package scrum

import (
	"github.com/samber/do/v2"

	"github.com/bakulab/scrumbot/internal/chat"
	"github.com/bakulab/scrumbot/internal/config"
	"github.com/bakulab/scrumbot/internal/identity"
	"github.com/bakulab/scrumbot/internal/ledger"
	"github.com/bakulab/scrumbot/internal/store"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Store, error) {
		docs := do.MustInvoke[store.Store](i)
		return NewStore(docs), nil
	})
	do.Provide(injector, func(i do.Injector) (*Jobs, error) {
		cfg := do.MustInvoke[*config.Config](i)
		s := do.MustInvoke[*Store](i)
		registry := do.MustInvoke[*identity.Registry](i)
		led := do.MustInvoke[*ledger.Ledger](i)
		sender := do.MustInvoke[chat.Sender](i)
		return NewJobs(cfg, s, registry, led, sender), nil
	})
}
