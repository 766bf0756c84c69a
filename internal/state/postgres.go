package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/finance-bot/internal/database"
)

// PostgresStore keeps conversations in the conversation_states table so they
// survive restarts.
type PostgresStore struct {
	db database.PGXDB
}

// NewPostgresStore creates a PostgresStore.
func NewPostgresStore(db database.PGXDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get loads the user's conversation.
func (s *PostgresStore) Get(ctx context.Context, userID int64) (Conversation, error) {
	var (
		st  string
		raw []byte
	)
	err := s.db.QueryRow(ctx, `
		SELECT state, data FROM conversation_states WHERE user_id = $1
	`, userID).Scan(&st, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return New(None), nil
		}
		return Conversation{}, fmt.Errorf("failed to load conversation state: %w", err)
	}

	conv := New(State(st))
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &conv.Data); err != nil {
			return Conversation{}, fmt.Errorf("failed to decode conversation data: %w", err)
		}
	}
	return conv, nil
}

// Set stores the user's conversation. Setting None clears it.
func (s *PostgresStore) Set(ctx context.Context, userID int64, conv Conversation) error {
	if conv.State == None {
		return s.Clear(ctx, userID)
	}
	data := conv.Data
	if data == nil {
		data = map[string]string{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode conversation data: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO conversation_states (user_id, state, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			state = EXCLUDED.state,
			data = EXCLUDED.data,
			updated_at = NOW()
	`, userID, string(conv.State), raw)
	if err != nil {
		return fmt.Errorf("failed to save conversation state: %w", err)
	}
	return nil
}

// Clear removes the user's conversation.
func (s *PostgresStore) Clear(ctx context.Context, userID int64) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM conversation_states WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear conversation state: %w", err)
	}
	return nil
}
