package telegram

import (
	"github.com/samber/do/v2"

	chatpkg "github.com/bakulab/scrumbot/internal/chat"
	"github.com/bakulab/scrumbot/internal/config"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (chatpkg.Sender, error) {
		c := do.MustInvoke[*config.Config](i)
		client, err := NewClient(c.BotToken)
		if err != nil {
			return nil, err
		}
		return client, nil
	})
	do.ProvideValue(injector, chatpkg.UpdateDecoder(DecodeUpdate))
}
