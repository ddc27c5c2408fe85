package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration from config.json
type Config struct {
	BotToken string  `json:"bot_token"`
	AdminIDs []int64 `json:"admin_ids"`

	Database struct {
		Path string `json:"path"`
	} `json:"database"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log"`

	Guess struct {
		Min         int `json:"min"`
		Max         int `json:"max"`
		MaxAttempts int `json:"max_attempts"`
	} `json:"guess"`

	// ForceJoin lists channels a user must be a member of before the bot
	// serves them. Empty list disables the gate.
	ForceJoin struct {
		Channels []string `json:"channels"`
	} `json:"force_join"`
}

// defaultConfig returns a config with sane defaults applied.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Database.Path = "komibot.db"
	cfg.Log.Level = "info"
	cfg.Guess.Min = 1
	cfg.Guess.Max = 100
	cfg.Guess.MaxAttempts = 10
	return cfg
}

// loadConfig reads configuration from config.json with smart defaults
// and environment overrides. A .env file is honored when present.
func loadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// Environment wins over the file for secrets and deployment knobs.
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.BotToken = v
	}
	if v := os.Getenv("KOMIBOT_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("KOMIBOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("KOMIBOT_ADMIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.AdminIDs = append(cfg.AdminIDs, id)
		}
	}

	sanitizeConfig(cfg)

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("bot token missing: set bot_token in %s or BOT_TOKEN in the environment", path)
	}

	return cfg, nil
}

// sanitizeConfig clamps nonsensical values back to defaults.
func sanitizeConfig(cfg *Config) {
	if cfg.Guess.Min <= 0 {
		cfg.Guess.Min = 1
	}
	if cfg.Guess.Max <= cfg.Guess.Min {
		cfg.Guess.Max = cfg.Guess.Min + 99
	}
	if cfg.Guess.MaxAttempts <= 0 {
		cfg.Guess.MaxAttempts = 10
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "komibot.db"
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		cfg.Log.Level = "info"
	}

	var channels []string
	for _, ch := range cfg.ForceJoin.Channels {
		ch = strings.TrimSpace(ch)
		if ch == "" {
			continue
		}
		if !strings.HasPrefix(ch, "@") {
			ch = "@" + ch
		}
		channels = append(channels, ch)
	}
	cfg.ForceJoin.Channels = channels
}
