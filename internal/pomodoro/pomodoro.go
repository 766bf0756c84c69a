// Package pomodoro runs per-user focus timers that alternate work and break
// intervals until stopped.
package pomodoro

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
)

// SendTimeout bounds a single timer notification.
const SendTimeout = 30 * time.Second

// Notifier delivers a text message to a chat.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

type session struct {
	id     uuid.UUID
	chatID int64
	lang   string
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
}

// Manager owns the running timers, at most one per user.
type Manager struct {
	notifier Notifier
	work     time.Duration
	rest     time.Duration

	mu       sync.Mutex
	sessions map[int64]*session
	wg       sync.WaitGroup
}

// NewManager creates a Manager cycling work and rest intervals.
func NewManager(notifier Notifier, work, rest time.Duration) *Manager {
	return &Manager{
		notifier: notifier,
		work:     work,
		rest:     rest,
		sessions: make(map[int64]*session),
	}
}

// WorkMinutes is the configured work interval in whole minutes.
func (m *Manager) WorkMinutes() int { return int(m.work / time.Minute) }

// RestMinutes is the configured break interval in whole minutes.
func (m *Manager) RestMinutes() int { return int(m.rest / time.Minute) }

// Start launches a timer for userID. It returns false if one is already running.
func (m *Manager) Start(userID, chatID int64, lang string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[userID]; ok {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{id: uuid.New(), chatID: chatID, lang: lang, cancel: cancel}
	m.sessions[userID] = s

	m.wg.Add(1)
	go m.run(ctx, userID, s)

	logger.Log.Info().
		Str("user_id", logger.HashUserID(userID)).
		Str("session", s.id.String()).
		Msg("Pomodoro started")
	return true
}

// Stop ends the user's timer. It returns false if none was running.
// No notification from the stopped session is sent after Stop returns.
func (m *Manager) Stop(userID int64) bool {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.halt()

	logger.Log.Info().
		Str("user_id", logger.HashUserID(userID)).
		Str("session", s.id.String()).
		Msg("Pomodoro stopped")
	return true
}

// Running reports whether userID has an active timer.
func (m *Manager) Running(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	return ok
}

// Close stops every timer and waits for their goroutines to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[int64]*session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.halt()
	}
	m.wg.Wait()
}

func (s *session) halt() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.cancel()
}

func (m *Manager) run(ctx context.Context, userID int64, s *session) {
	defer m.wg.Done()
	defer m.release(userID, s)

	for {
		if !wait(ctx, m.work) || !m.notify(ctx, userID, s, i18n.Tf(s.lang, "pomodoro_break", m.RestMinutes())) {
			return
		}
		if !wait(ctx, m.rest) || !m.notify(ctx, userID, s, i18n.Tf(s.lang, "pomodoro_work", m.WorkMinutes())) {
			return
		}
	}
}

// notify sends text unless the session was stopped. A failed send ends the session.
func (m *Manager) notify(ctx context.Context, userID int64, s *session, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}

	sendCtx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()
	if err := m.notifier.Notify(sendCtx, s.chatID, text); err != nil {
		logger.Log.Warn().Err(err).
			Str("user_id", logger.HashUserID(userID)).
			Str("session", s.id.String()).
			Msg("Failed to send pomodoro notification, stopping timer")
		return false
	}
	return true
}

// release drops s from the registry if it is still the user's current session.
func (m *Manager) release(userID int64, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[userID]; ok && cur.id == s.id {
		delete(m.sessions, userID)
	}
	s.cancel()
}

func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
