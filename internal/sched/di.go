package sched

import (
	"github.com/samber/do/v2"

	"github.com/bakulab/scrumbot/internal/config"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Dispatcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewDispatcher(cfg.Location()), nil
	})
}
