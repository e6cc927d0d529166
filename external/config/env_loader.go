package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	internalconfig "github.com/bakulab/scrumbot/internal/config"
)

type envConfig struct {
	Env         string `env:"ENV" envDefault:"production"`
	ServerAddr  string `env:"SERVER_ADDR" envDefault:":8080"`
	BotToken    string `env:"BOT_TOKEN,required"`
	GroupChatID int64  `env:"GROUP_CHAT_ID" envDefault:"0"`
	AdminPIN    string `env:"BOT_ADMIN_PIN" envDefault:"changeme"`
	Timezone    string `env:"TIMEZONE" envDefault:"Asia/Baku"`
	DataDir     string `env:"DATA_DIR" envDefault:"data"`
	DatabaseURL string `env:"DATABASE_URL"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:         raw.Env,
		ServerAddr:  raw.ServerAddr,
		BotToken:    raw.BotToken,
		GroupChatID: raw.GroupChatID,
		AdminPIN:    raw.AdminPIN,
		Timezone:    raw.Timezone,
		DataDir:     raw.DataDir,
		DatabaseURL: raw.DatabaseURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
