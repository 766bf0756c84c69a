package goals

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gitlab.com/yelinaung/finance-bot/internal/i18n"
	"gitlab.com/yelinaung/finance-bot/internal/logger"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/telemetry"
)

// SweepResult summarizes one sweep run.
type SweepResult struct {
	Checked   int
	Completed int
	Digests   int
}

// Sweep announces reached goals that were not yet announced and sends a
// progress digest to users with notifications enabled. A failure for one
// user does not stop the others.
func (s *Service) Sweep(ctx context.Context) (SweepResult, error) {
	goals, err := s.store.ListIncomplete(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to list goals: %w", err)
	}

	var res SweepResult
	active := map[int64][]models.Goal{}
	var order []int64

	for i := range goals {
		goal := &goals[i]
		res.Checked++

		if goal.Reached() {
			if s.notifyCompletion(ctx, goal) {
				res.Completed++
			}
			continue
		}
		if goal.IsCompleted {
			continue
		}
		if _, seen := active[goal.UserID]; !seen {
			order = append(order, goal.UserID)
		}
		active[goal.UserID] = append(active[goal.UserID], *goal)
	}

	for _, userID := range order {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if s.sendDigest(ctx, userID, active[userID]) {
			res.Digests++
		}
	}

	return res, nil
}

func (s *Service) sendDigest(ctx context.Context, userID int64, goals []models.Goal) bool {
	enabled, err := s.prefs.GetNotifications(ctx, userID)
	if err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(userID)).Msg("Failed to read notification setting")
		return false
	}
	if !enabled {
		return false
	}

	lang := s.language(ctx, userID)
	text := Digest(lang, goals, s.now())
	if err := s.notifier.Notify(ctx, userID, text); err != nil {
		logger.Log.Error().Err(err).Str("user_id", logger.HashUserID(userID)).Msg("Failed to send goal digest")
		return false
	}
	telemetry.GoalNotification(ctx, "digest")
	return true
}

// Digest renders a progress summary of goals.
func Digest(lang string, goals []models.Goal, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(i18n.T(lang, "goal_digest_header"))
	for i, g := range goals {
		sb.WriteString("\n")
		sb.WriteString(Line(lang, i+1, g))
		if g.Deadline == nil {
			continue
		}
		days := int(math.Floor(g.Deadline.Sub(now).Hours() / 24))
		if days < 0 {
			sb.WriteString("\n   ⚠️ " + i18n.T(lang, "goal_overdue"))
		} else {
			sb.WriteString("\n   📅 " + i18n.Tf(lang, "goal_days_left", days))
		}
	}
	return sb.String()
}

// Line renders one numbered goal with its progress.
func Line(lang string, n int, g models.Goal) string {
	line := i18n.Tf(lang, "goal_line", n, g.Name,
		g.CurrentAmount.StringFixed(2), g.TargetAmount.StringFixed(2), g.Percent().StringFixed(1))
	if g.Deadline != nil {
		line += " " + i18n.Tf(lang, "goal_deadline", g.Deadline.Format("02.01.2006"))
	}
	return line
}
