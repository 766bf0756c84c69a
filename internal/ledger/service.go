package ledger

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/yelinaung/finance-bot/internal/models"
)

// OperationLister fetches a user's operations, optionally since a start time.
type OperationLister interface {
	ListByUser(ctx context.Context, userID int64, since *time.Time) ([]models.Operation, error)
}

// Service reads fresh operations from the store and aggregates them.
type Service struct {
	ops OperationLister
	loc *time.Location
	now func() time.Time
}

// NewService creates a Service. Periods are resolved in loc.
func NewService(ops OperationLister, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{ops: ops, loc: loc, now: time.Now}
}

// Balance summarizes the user's operations within period.
func (s *Service) Balance(ctx context.Context, userID int64, period Period) (Summary, error) {
	ops, err := s.ops.ListByUser(ctx, userID, period.Since(s.now().In(s.loc)))
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load operations: %w", err)
	}
	return Summarize(ops), nil
}

// Stats computes all-time statistics for the user.
func (s *Service) Stats(ctx context.Context, userID int64) (Stats, error) {
	ops, err := s.ops.ListByUser(ctx, userID, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load operations: %w", err)
	}
	return Statistics(ops), nil
}
