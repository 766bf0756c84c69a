// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// State store backends.
const (
	StateBackendMemory   = "memory"
	StateBackendPostgres = "postgres"
)

// Exchange rate providers.
const (
	RatesProviderStatic      = "static"
	RatesProviderCBR         = "cbr"
	RatesProviderFrankfurter = "frankfurter"
)

// Telemetry exporters.
const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPGRPC = "otlp-grpc"
	ExporterOTLPHTTP = "otlp-http"
)

// Config holds all configuration for the application.
type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	LogLevel         string
	LogFormat        string

	Timezone        string
	BaseCurrency    string
	DefaultLanguage string
	SuperAdminIDs   []int64
	StateBackend    string

	GoalSweepCron         string
	ReminderSweepInterval time.Duration
	MaxReminderAttempts   int

	RatesProvider    string
	RatesRefreshCron string
	RatesAPIURL      string
	RatesTimeout     time.Duration

	PomodoroWork  time.Duration
	PomodoroBreak time.Duration

	OTelExporter    string
	OTelEndpoint    string
	OTelServiceName string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogFormat:        envOr("LOG_FORMAT", "console"),

		Timezone:        envOr("TIMEZONE", "Europe/Moscow"),
		BaseCurrency:    strings.ToUpper(envOr("BASE_CURRENCY", "RUB")),
		DefaultLanguage: strings.ToLower(envOr("DEFAULT_LANGUAGE", "ru")),
		StateBackend:    strings.ToLower(envOr("STATE_BACKEND", StateBackendMemory)),

		GoalSweepCron:         envOr("GOAL_SWEEP_CRON", "0 9 * * *"),
		ReminderSweepInterval: time.Minute,
		MaxReminderAttempts:   5,

		RatesProvider:    strings.ToLower(envOr("RATES_PROVIDER", RatesProviderStatic)),
		RatesRefreshCron: envOr("RATES_REFRESH_CRON", "0 */6 * * *"),
		RatesAPIURL:      os.Getenv("RATES_API_URL"),
		RatesTimeout:     10 * time.Second,

		PomodoroWork:  25 * time.Minute,
		PomodoroBreak: 5 * time.Minute,

		OTelExporter:    strings.ToLower(envOr("OTEL_EXPORTER", ExporterNone)),
		OTelEndpoint:    os.Getenv("OTEL_ENDPOINT"),
		OTelServiceName: envOr("OTEL_SERVICE_NAME", "finance-bot"),
	}

	cfg.ReminderSweepInterval = envDuration("REMINDER_SWEEP_INTERVAL", cfg.ReminderSweepInterval)
	cfg.RatesTimeout = envDuration("RATES_TIMEOUT", cfg.RatesTimeout)
	cfg.PomodoroWork = envDuration("POMODORO_WORK", cfg.PomodoroWork)
	cfg.PomodoroBreak = envDuration("POMODORO_BREAK", cfg.PomodoroBreak)

	if s := os.Getenv("MAX_REMINDER_ATTEMPTS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.MaxReminderAttempts = n
		}
	}

	if ids := os.Getenv("SUPERADMIN_IDS"); ids != "" {
		for idStr := range strings.SplitSeq(ids, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				continue
			}
			cfg.SuperAdminIDs = append(cfg.SuperAdminIDs, id)
		}
	}

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present and well formed.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("TIMEZONE %q is invalid", c.Timezone))
	}

	if len(c.BaseCurrency) != 3 {
		errs = append(errs, fmt.Sprintf("BASE_CURRENCY %q must be a 3-letter code", c.BaseCurrency))
	}

	if !slices.Contains([]string{StateBackendMemory, StateBackendPostgres}, c.StateBackend) {
		errs = append(errs, fmt.Sprintf("STATE_BACKEND %q is not supported", c.StateBackend))
	}

	if !slices.Contains([]string{RatesProviderStatic, RatesProviderCBR, RatesProviderFrankfurter}, c.RatesProvider) {
		errs = append(errs, fmt.Sprintf("RATES_PROVIDER %q is not supported", c.RatesProvider))
	}

	if !slices.Contains([]string{ExporterNone, ExporterStdout, ExporterOTLPGRPC, ExporterOTLPHTTP}, c.OTelExporter) {
		errs = append(errs, fmt.Sprintf("OTEL_EXPORTER %q is not supported", c.OTelExporter))
	}

	if _, err := cron.ParseStandard(c.GoalSweepCron); err != nil {
		errs = append(errs, fmt.Sprintf("GOAL_SWEEP_CRON %q is invalid: %v", c.GoalSweepCron, err))
	}

	if _, err := cron.ParseStandard(c.RatesRefreshCron); err != nil {
		errs = append(errs, fmt.Sprintf("RATES_REFRESH_CRON %q is invalid: %v", c.RatesRefreshCron, err))
	}

	if c.ReminderSweepInterval <= 0 {
		errs = append(errs, "REMINDER_SWEEP_INTERVAL must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsSuperAdmin checks if a user is a superadmin defined via environment variables.
func (c *Config) IsSuperAdmin(userID int64) bool {
	return slices.Contains(c.SuperAdminIDs, userID)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
