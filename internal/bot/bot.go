// Package bot provides the Telegram bot initialization and handlers.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"gitlab.com/yelinaung/finance-bot/internal/config"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/exchange"
	"gitlab.com/yelinaung/finance-bot/internal/flow"
	"gitlab.com/yelinaung/finance-bot/internal/goals"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/ledger"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/pomodoro"
	"gitlab.com/yelinaung/finance-bot/internal/reminders"
	"gitlab.com/yelinaung/finance-bot/internal/repository"
	"gitlab.com/yelinaung/finance-bot/internal/state"
	"gitlab.com/yelinaung/finance-bot/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Bot wraps the Telegram bot with application dependencies.
type Bot struct {
	bot           *bot.Bot
	messageSender TelegramAPI
	cfg           *config.Config
	loc           *time.Location
	now           func() time.Time

	userRepo     *repository.UserRepository
	opRepo       *repository.OperationRepository
	settingsRepo *repository.SettingsRepository
	adminRepo    *repository.AdminRepository

	states    state.Store
	flow      *flow.Engine
	ledger    *ledger.Service
	converter *exchange.Converter
	goals     *goals.Service
	reminders *reminders.Service
	pomodoro  *pomodoro.Manager
}

// New creates a new Bot instance.
func New(cfg *config.Config, db database.PGXDB) (*Bot, error) {
	b := newBot(cfg, db, nil)

	opts := []bot.Option{
		bot.WithMiddlewares(b.userMiddleware),
		bot.WithDefaultHandler(b.defaultHandler),
	}

	telegramBot, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.bot = telegramBot
	b.messageSender = telegramBot
	b.registerHandlers()

	return b, nil
}

// newBot wires repositories and services over db. sender may be nil until
// the Telegram client exists.
func newBot(cfg *config.Config, db database.PGXDB, sender TelegramAPI) *Bot {
	loc := cfg.Location()
	b := &Bot{
		messageSender: sender,
		cfg:           cfg,
		loc:           loc,
		now:           time.Now,
		userRepo:      repository.NewUserRepository(db),
		opRepo:        repository.NewOperationRepository(db),
		settingsRepo:  repository.NewSettingsRepository(db, cfg.BaseCurrency),
		adminRepo:     repository.NewAdminRepository(db),
		converter:     exchange.NewConverter(db, cfg.BaseCurrency),
	}

	if cfg.StateBackend == config.StateBackendPostgres {
		b.states = state.NewPostgresStore(db)
	} else {
		b.states = state.NewMemoryStore()
	}

	b.ledger = ledger.NewService(b.opRepo, loc)
	b.goals = goals.NewService(repository.NewGoalRepository(db), b.userRepo, b)
	b.reminders = reminders.NewService(repository.NewReminderRepository(db), b.userRepo, b, cfg.MaxReminderAttempts)
	b.pomodoro = pomodoro.NewManager(b, cfg.PomodoroWork, cfg.PomodoroBreak)
	b.flow = flow.NewEngine(b.states, b.opRepo, b.settingsRepo, b.reminders, b.goals, loc)
	return b
}

// Start begins polling for updates. It blocks until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	logger.Log.Info().Msg("Bot started polling")
	b.bot.Start(ctx)
}

// Close stops running pomodoro timers.
func (b *Bot) Close() {
	b.pomodoro.Close()
}

// Notify sends a plain text message. It satisfies the notifier interfaces of
// the goal, reminder and pomodoro services.
func (b *Bot) Notify(ctx context.Context, chatID int64, text string) error {
	if b.messageSender == nil {
		return errors.New("telegram client not initialized")
	}
	_, err := b.messageSender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

// SweepGoals runs the daily goal check.
func (b *Bot) SweepGoals(ctx context.Context) error {
	res, err := b.goals.Sweep(ctx)
	if err != nil {
		return err
	}
	logger.Log.Info().
		Int("checked", res.Checked).
		Int("completed", res.Completed).
		Int("digests", res.Digests).
		Msg("Goal sweep finished")
	return nil
}

// SweepReminders delivers reminders that are due.
func (b *Bot) SweepReminders(ctx context.Context) error {
	res, err := b.reminders.Sweep(ctx, b.now())
	if err != nil {
		return err
	}
	if res.Sent+res.Failed > 0 {
		logger.Log.Info().
			Int("sent", res.Sent).
			Int("failed", res.Failed).
			Int("abandoned", res.Abandoned).
			Msg("Reminder sweep finished")
	}
	return nil
}

// registerHandlers sets up command handlers.
func (b *Bot) registerHandlers() {
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, b.handleStart)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, b.handleHelp)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, b.handleCancel)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypePrefix, b.handleAdmin)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/user_stats", bot.MatchTypePrefix, b.handleUserStats)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/add_admin", bot.MatchTypePrefix, b.handleAddAdmin)
}

// userMiddleware registers the sender and traces the update before any handler runs.
func (b *Bot) userMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
		ctx, span := telemetry.Tracer().Start(ctx, "telegram.update")
		defer span.End()

		if !b.prepareUpdate(ctx, update) {
			return
		}
		span.SetAttributes(attribute.String("user.hash", logger.HashUserID(update.Message.From.ID)))

		next(ctx, tgBot, update)
	}
}

// prepareUpdate upserts the sender, picks a language on first contact and
// logs the action. It reports false for updates that should be ignored.
func (b *Bot) prepareUpdate(ctx context.Context, update *tgmodels.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}
	from := update.Message.From
	logUserAction(update)

	user := &models.User{
		ID:        from.ID,
		Username:  from.Username,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	}
	created, err := b.userRepo.Upsert(ctx, user)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(from.ID)).Msg("Failed to register user")
		return true
	}

	if _, err := b.userRepo.GetLanguage(ctx, from.ID); errors.Is(err, repository.ErrNotFound) {
		lang := i18n.Match(from.LanguageCode)
		if err := b.userRepo.SetLanguage(ctx, from.ID, lang); err != nil {
			logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(from.ID)).Msg("Failed to store language")
		}
	}

	if created {
		logger.Log.Info().Str("user_id", logger.HashUserID(from.ID)).Msg("New user registered")
	}
	return true
}

// logUserAction logs the user's input with hashed identifiers.
func logUserAction(update *tgmodels.Update) {
	msg := update.Message
	event := logger.Log.Info().
		Str("user_id", logger.HashUserID(msg.From.ID)).
		Str("chat_id", logger.HashChatID(msg.Chat.ID))

	if msg.Text != "" {
		event = event.Str("text", logger.SanitizeText(msg.Text))
	}
	if msg.Document != nil {
		event = event.Str("type", "document")
	}

	event.Msg("User input")
}

// language returns the user's stored language or the default.
func (b *Bot) language(ctx context.Context, userID int64) string {
	lang, err := b.userRepo.GetLanguage(ctx, userID)
	if err != nil || !i18n.Supported(lang) {
		return i18n.DefaultLanguage
	}
	return lang
}

// currency returns the user's display currency.
func (b *Bot) currency(ctx context.Context, userID int64) string {
	settings, err := b.settingsRepo.GetCurrencySettings(ctx, userID)
	if err != nil {
		logger.Log.Warn().Err(err).Str("user_id", logger.HashUserID(userID)).Msg("Falling back to base currency")
		return b.cfg.BaseCurrency
	}
	return settings.Currency
}

// defaultHandler routes every text message not claimed by a command handler.
func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleTextCore(ctx, tgBot, update)
}
