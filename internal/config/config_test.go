package config

import (
	"testing"
	"time"

	"fantasy-war-room/internal/platform/logging"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DRAFT_ID", "d1")
	t.Setenv("SHEET_URL", "https://example.com/roster.csv")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Draft.NumTeams != 10 || cfg.Draft.MySlot != 1 {
		t.Fatalf("draft defaults = %+v", cfg.Draft)
	}
	if cfg.Sources.PicksTTL != 10*time.Second {
		t.Fatalf("picks ttl = %s", cfg.Sources.PicksTTL)
	}
	if cfg.Sources.SheetTimeout != 20*time.Second || cfg.Webhook.Timeout != 10*time.Second {
		t.Fatalf("timeout defaults = sheet %s, webhook %s", cfg.Sources.SheetTimeout, cfg.Webhook.Timeout)
	}
	if cfg.App.HTTPAddr != ":8080" || cfg.App.LogLevel != logging.LevelInfo {
		t.Fatalf("app defaults = %+v", cfg.App)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("NUM_TEAMS", "12")
	t.Setenv("MY_SLOT", "7")
	t.Setenv("PICKS_CACHE_TTL", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHEET_TIMEOUT", "5s")
	t.Setenv("SLEEPER_TIMEOUT", "45s")
	t.Setenv("WEBHOOK_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Draft.NumTeams != 12 || cfg.Draft.MySlot != 7 {
		t.Fatalf("draft = %+v", cfg.Draft)
	}
	if cfg.Sources.PicksTTL != 30*time.Second {
		t.Fatalf("picks ttl = %s", cfg.Sources.PicksTTL)
	}
	// Sheet and webhook timeouts are independent of the Sleeper timeout.
	if cfg.Sources.SheetTimeout != 5*time.Second || cfg.Sources.SleeperTimeout != 45*time.Second {
		t.Fatalf("timeouts = sheet %s, sleeper %s", cfg.Sources.SheetTimeout, cfg.Sources.SleeperTimeout)
	}
	if cfg.Webhook.Timeout != 2*time.Second {
		t.Fatalf("webhook timeout = %s", cfg.Webhook.Timeout)
	}
	if cfg.App.LogLevel != logging.LevelDebug {
		t.Fatalf("log level = %v", cfg.App.LogLevel)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing draft id", env: map[string]string{"SHEET_URL": "x"}},
		{name: "missing sheet url", env: map[string]string{"DRAFT_ID": "d1"}},
		{name: "teams too small", env: map[string]string{"DRAFT_ID": "d1", "SHEET_URL": "x", "NUM_TEAMS": "1"}},
		{name: "teams too large", env: map[string]string{"DRAFT_ID": "d1", "SHEET_URL": "x", "NUM_TEAMS": "17"}},
		{name: "slot beyond teams", env: map[string]string{"DRAFT_ID": "d1", "SHEET_URL": "x", "NUM_TEAMS": "8", "MY_SLOT": "9"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("want validation error")
			}
		})
	}
}

func TestMalformedNumbersFallBack(t *testing.T) {
	setRequired(t)
	t.Setenv("SLEEPER_MAX_RETRIES", "many")
	t.Setenv("PICKS_CACHE_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sources.SleeperMaxRetries != 2 {
		t.Fatalf("retries = %d, want fallback 2", cfg.Sources.SleeperMaxRetries)
	}
	if cfg.Sources.PicksTTL != 10*time.Second {
		t.Fatalf("picks ttl = %s, want fallback 10s", cfg.Sources.PicksTTL)
	}
}
