// Package main is the entry point for the personal finance Telegram bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/yelinaung/finance-bot/internal/bot"
	"gitlab.com/yelinaung/finance-bot/internal/config"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/exchange"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/repository"
	"gitlab.com/yelinaung/finance-bot/internal/scheduler"
	"gitlab.com/yelinaung/finance-bot/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("finance-bot %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	logger.InitHashSalt()
	i18n.SetDefault(cfg.DefaultLanguage)

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up telemetry")
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()
		if err := shutdownTelemetry(sctx); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to flush telemetry")
		}
	}()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := repository.NewAdminRepository(pool).EnsureSuperAdmins(ctx, cfg.SuperAdminIDs); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to register superadmins")
	}

	refresher := exchange.NewRefresher(newRateProvider(cfg), repository.NewCurrencyRepository(pool), cfg.BaseCurrency)
	if err := refresher.Seed(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to seed exchange rates")
	}

	logger.Log.Info().Msg("Database initialized successfully")

	telegramBot, err := bot.New(cfg, pool)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to create bot")
	}
	defer telegramBot.Close()

	jobs := scheduler.New(cfg.Location(), scheduler.DefaultJobTimeout)
	if err := registerJobs(jobs, cfg, telegramBot, refresher); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to schedule jobs")
	}
	jobs.Start(ctx)
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()
		jobs.Stop(sctx)
	}()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()
	}()

	telegramBot.Start(ctx)
}

// newRateProvider picks the rates source named in the configuration.
func newRateProvider(cfg *config.Config) exchange.RateProvider {
	switch cfg.RatesProvider {
	case config.RatesProviderCBR:
		return exchange.NewCBRProvider(cfg.RatesAPIURL, cfg.RatesTimeout)
	case config.RatesProviderFrankfurter:
		return exchange.NewFrankfurterProvider(cfg.RatesAPIURL, cfg.RatesTimeout)
	default:
		return exchange.NewStaticProvider()
	}
}

// registerJobs schedules the goal, reminder and rate refresh jobs.
func registerJobs(s *scheduler.Scheduler, cfg *config.Config, b *bot.Bot, refresher *exchange.Refresher) error {
	if err := s.Add("goal_sweep", cfg.GoalSweepCron, b.SweepGoals); err != nil {
		return err
	}
	if err := s.Add("reminder_sweep", "@every "+cfg.ReminderSweepInterval.String(), b.SweepReminders); err != nil {
		return err
	}
	if cfg.RatesProvider == config.RatesProviderStatic {
		return nil
	}
	return s.Add("rates_refresh", cfg.RatesRefreshCron, refresher.Refresh)
}
