package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPrefix       = "pp "
	DefaultHypixelURL   = "https://api.hypixel.net"
	DefaultHypixelLimit = 10 * time.Second
	DefaultLogLevel     = "info"
	DefaultRefresh      = 30 * time.Minute
)

// ErrNoToken is returned by Validate when the bot has nothing to log in with.
var ErrNoToken = errors.New("DISCORD_TOKEN is not set")

// Config is read from an optional YAML file, then overridden by the environment.
type Config struct {
	DiscordToken   string        `yaml:"discord_token" env:"DISCORD_TOKEN"`
	HypixelAPIKey  string        `yaml:"hypixel_api_key" env:"HYPIXEL_API_KEY"`
	HypixelBaseURL string        `yaml:"hypixel_base_url" env:"HYPIXEL_BASE_URL"`
	HypixelTimeout time.Duration `yaml:"hypixel_timeout" env:"HYPIXEL_TIMEOUT"`
	// CatalogRefresh is how often cached catalogs are reloaded; negative disables it.
	CatalogRefresh time.Duration `yaml:"catalog_refresh" env:"CATALOG_REFRESH"`
	TestGuildID    string        `yaml:"test_guild_id" env:"TEST_GUILD_ID"`
	CommandPrefix  string        `yaml:"command_prefix" env:"COMMAND_PREFIX"`
	DeveloperID    string        `yaml:"developer_id" env:"DEVELOPER_ID"`
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL"`
}

// Load reads .env (if any), the YAML file named by CONFIG_FILE (if any) and
// the process environment, in that order of increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HypixelBaseURL == "" {
		c.HypixelBaseURL = DefaultHypixelURL
	}
	if c.HypixelTimeout <= 0 {
		c.HypixelTimeout = DefaultHypixelLimit
	}
	if c.CatalogRefresh == 0 {
		c.CatalogRefresh = DefaultRefresh
	}
	if c.CommandPrefix == "" {
		c.CommandPrefix = DefaultPrefix
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks what the Discord process needs to start.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return ErrNoToken
	}
	return nil
}

// HasTestGuild reports whether TestGuildID looks like a real snowflake.
func (c *Config) HasTestGuild() bool {
	id := c.TestGuildID
	if id == "" || strings.Trim(id, "0") == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
