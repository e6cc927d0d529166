package bot

import (
	"github.com/samber/do/v2"

	"github.com/bakulab/scrumbot/internal/admin"
	"github.com/bakulab/scrumbot/internal/chat"
	"github.com/bakulab/scrumbot/internal/config"
	"github.com/bakulab/scrumbot/internal/identity"
	"github.com/bakulab/scrumbot/internal/ledger"
	"github.com/bakulab/scrumbot/internal/sched"
	"github.com/bakulab/scrumbot/internal/scrum"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		scrumStore := do.MustInvoke[*scrum.Store](i)
		registry := do.MustInvoke[*identity.Registry](i)
		led := do.MustInvoke[*ledger.Ledger](i)
		admins := do.MustInvoke[*admin.Gate](i)
		sender := do.MustInvoke[chat.Sender](i)
		disp := do.MustInvoke[*sched.Dispatcher](i)
		return NewBot(cfg, scrumStore, registry, led, admins, sender, disp), nil
	})
}
