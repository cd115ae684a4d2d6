// internal/config/config.go
//
// Server configuration.
// Sources, later ones winning:
//   1. assets/defaults.yaml (embedded).
//   2. An optional YAML file (CONFIG_PATH).
//   3. Environment variables, including those loaded from .env by godotenv
//      in main.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/robalobadob/seton/assets"
	"github.com/robalobadob/seton/internal/game"
)

// Config is the full server configuration.
type Config struct {
	Port          string        `yaml:"port"`
	LogLevel      string        `yaml:"log_level"`
	LogPretty     bool          `yaml:"log_pretty"`
	ClientOrigin  string        `yaml:"client_origin"`
	SessionSecret string        `yaml:"session_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	SessionIdle   time.Duration `yaml:"session_idle"`
	SweepEvery    time.Duration `yaml:"sweep_every"`
	PushEvery     time.Duration `yaml:"push_every"` // websocket countdown push interval
	DailySalt     string        `yaml:"daily_salt"`
	Game          GameConfig    `yaml:"game"`
}

// GameConfig holds the settings new sessions start with and their limits.
type GameConfig struct {
	Defaults game.Config `yaml:"defaults"`
	Limits   game.Limits `yaml:"limits"`
}

// Load builds the configuration from the embedded defaults, the YAML file at
// path (skipped when path is empty) and the environment.
func Load(path string) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(assets.DefaultConfig(), &c); err != nil {
		return nil, fmt.Errorf("parse built-in defaults: %w", err)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.UnmarshalStrict(raw, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("PORT", &c.Port)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("CLIENT_ORIGIN", &c.ClientOrigin)
	setString("SESSION_SECRET", &c.SessionSecret)
	setString("DAILY_SALT", &c.DailySalt)

	if v := os.Getenv("LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_PRETTY: %w", err)
		}
		c.LogPretty = b
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must be set")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("session_secret must be set")
	}
	for name, d := range map[string]time.Duration{
		"token_ttl":    c.TokenTTL,
		"session_idle": c.SessionIdle,
		"sweep_every":  c.SweepEvery,
		"push_every":   c.PushEvery,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if err := c.Game.Limits.Validate(); err != nil {
		return fmt.Errorf("game.%w", err)
	}
	if err := c.Game.Limits.Check(c.Game.Defaults); err != nil {
		return fmt.Errorf("game.defaults: %w", err)
	}
	return nil
}
