package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/seton/internal/game"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_PRETTY", "CLIENT_ORIGIN", "SESSION_SECRET", "DAILY_SALT", "TOKEN_TTL"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "seton.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "5175" || c.LogLevel != "info" || c.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Game.Defaults != game.DefaultConfig() {
		t.Fatalf("game defaults = %+v", c.Game.Defaults)
	}
	if c.Game.Limits != game.DefaultLimits() {
		t.Fatalf("game limits = %+v", c.Game.Limits)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, `
port: "9000"
push_every: 1s
game:
  defaults:
    board_size: 8
    black_stones: 4
    white_stones: 6
    time_seconds: 20
  limits:
    board_size: {min: 5, max: 10}
    black_stones: {min: 1, max: 10}
    white_stones: {min: 1, max: 10}
    time_seconds: {min: 1, max: 60}
`)
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("TOKEN_TTL", "90m")

	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "7000" {
		t.Fatalf("env did not override port: %s", c.Port)
	}
	if !c.LogPretty || c.TokenTTL != 90*time.Minute || c.PushEvery != time.Second {
		t.Fatalf("overrides not applied: %+v", c)
	}
	want := game.Config{BoardSize: 8, BlackStones: 4, WhiteStones: 6, TimeSeconds: 20}
	if c.Game.Defaults != want {
		t.Fatalf("defaults = %+v", c.Game.Defaults)
	}
	if c.SessionSecret != "dev_secret_change_me" {
		t.Fatalf("unset keys should keep built-in values, got %q", c.SessionSecret)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"unknown key":       "colour: red\n",
		"inverted limits":   "game:\n  limits:\n    board_size: {min: 9, max: 6}\n",
		"default off range": "game:\n  defaults:\n    board_size: 3\n",
		"zero duration":     "session_idle: 0s\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("missing file: %v", err)
	}

	t.Setenv("LOG_PRETTY", "maybe")
	if _, err := Load(""); err == nil {
		t.Fatal("expected LOG_PRETTY error")
	}
}
