package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env         string
	ServerAddr  string
	BotToken    string
	GroupChatID int64
	AdminPIN    string
	Timezone    string
	DataDir     string
	DatabaseURL string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.DatabaseURL == "" && c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required when DATABASE_URL is not set")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "BOT_TOKEN", value: c.BotToken},
		{name: "BOT_ADMIN_PIN", value: c.AdminPIN},
		{name: "TIMEZONE", value: c.Timezone},
	}
}

// Location resolves the configured timezone. Validate has already checked it,
// so failures only happen on an unvalidated Config and fall back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
