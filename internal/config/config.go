package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fantasy-war-room/internal/platform/logging"
)

type App struct {
	Name     string
	Env      string
	Version  string
	HTTPAddr string
	LogLevel logging.Level
}

type Draft struct {
	ID       string
	NumTeams int
	MySlot   int
}

type Sources struct {
	SheetURL          string
	SheetTimeout      time.Duration
	SheetMaxRetries   int
	SleeperBaseURL    string
	SleeperTimeout    time.Duration
	SleeperMaxRetries int
	SleeperRPS        float64
	RosterTTL         time.Duration
	CatalogTTL        time.Duration
	PicksTTL          time.Duration
}

type Jobs struct {
	SyncMaxWorkers   int
	InternalJobToken string
}

type Webhook struct {
	URL     string
	Token   string
	Timeout time.Duration
}

type Observability struct {
	UptraceDSN       string
	PyroscopeEnabled bool
	PyroscopeAddr    string
	PyroscopeToken   string
	PprofEnabled     bool
	PprofAddr        string
}

type Config struct {
	App           App
	Draft         Draft
	Sources       Sources
	Jobs          Jobs
	Webhook       Webhook
	Observability Observability
}

// Load reads configuration from the environment. Required values missing or
// out of range fail loudly at startup rather than surfacing mid-draft.
func Load() (Config, error) {
	cfg := Config{
		App: App{
			Name:     getEnv("APP_NAME", "fantasy-war-room"),
			Env:      getEnv("APP_ENV", "development"),
			Version:  getEnv("APP_VERSION", "dev"),
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
			LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
		},
		Draft: Draft{
			ID:       os.Getenv("DRAFT_ID"),
			NumTeams: getEnvInt("NUM_TEAMS", 10),
			MySlot:   getEnvInt("MY_SLOT", 1),
		},
		Sources: Sources{
			SheetURL:          os.Getenv("SHEET_URL"),
			SheetTimeout:      getEnvDuration("SHEET_TIMEOUT", 20*time.Second),
			SheetMaxRetries:   getEnvInt("SHEET_MAX_RETRIES", 2),
			SleeperBaseURL:    getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app"),
			SleeperTimeout:    getEnvDuration("SLEEPER_TIMEOUT", 15*time.Second),
			SleeperMaxRetries: getEnvInt("SLEEPER_MAX_RETRIES", 2),
			SleeperRPS:        getEnvFloat("SLEEPER_REQUESTS_PER_SEC", 5),
			RosterTTL:         getEnvDuration("ROSTER_CACHE_TTL", time.Hour),
			CatalogTTL:        getEnvDuration("CATALOG_CACHE_TTL", time.Hour),
			PicksTTL:          getEnvDuration("PICKS_CACHE_TTL", 10*time.Second),
		},
		Jobs: Jobs{
			SyncMaxWorkers:   getEnvInt("SYNC_MAX_WORKERS", 3),
			InternalJobToken: os.Getenv("INTERNAL_JOB_TOKEN"),
		},
		Webhook: Webhook{
			URL:     os.Getenv("WEBHOOK_URL"),
			Token:   os.Getenv("WEBHOOK_TOKEN"),
			Timeout: getEnvDuration("WEBHOOK_TIMEOUT", 10*time.Second),
		},
		Observability: Observability{
			UptraceDSN:       os.Getenv("UPTRACE_DSN"),
			PyroscopeEnabled: getEnvBool("PYROSCOPE_ENABLED", false),
			PyroscopeAddr:    os.Getenv("PYROSCOPE_SERVER_ADDRESS"),
			PyroscopeToken:   os.Getenv("PYROSCOPE_AUTH_TOKEN"),
			PprofEnabled:     getEnvBool("PPROF_ENABLED", false),
			PprofAddr:        getEnv("PPROF_ADDR", "localhost:6060"),
		},
	}

	if cfg.Draft.ID == "" {
		return Config{}, fmt.Errorf("DRAFT_ID is required")
	}
	if cfg.Sources.SheetURL == "" {
		return Config{}, fmt.Errorf("SHEET_URL is required")
	}
	if cfg.Draft.NumTeams < 2 || cfg.Draft.NumTeams > 16 {
		return Config{}, fmt.Errorf("NUM_TEAMS must be between 2 and 16, got %d", cfg.Draft.NumTeams)
	}
	if cfg.Draft.MySlot < 1 || cfg.Draft.MySlot > cfg.Draft.NumTeams {
		return Config{}, fmt.Errorf("MY_SLOT must be between 1 and %d, got %d", cfg.Draft.NumTeams, cfg.Draft.MySlot)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseLogLevel(raw string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
