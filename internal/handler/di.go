package handler

import (
	"github.com/samber/do/v2"

	"github.com/bakulab/scrumbot/internal/bot"
	"github.com/bakulab/scrumbot/internal/chat"
	"github.com/bakulab/scrumbot/internal/sched"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Handler, error) {
		core := do.MustInvoke[*bot.Bot](i)
		disp := do.MustInvoke[*sched.Dispatcher](i)
		decode := do.MustInvoke[chat.UpdateDecoder](i)
		return NewHandler(core, disp, decode), nil
	})
}
