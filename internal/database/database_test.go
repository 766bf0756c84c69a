package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
	}{
		{"malformed url", "invalid://connection"},
		{"unreachable host", "postgres://localhost:59999/nonexistent?connect_timeout=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := Connect(ctx, tt.url)
			require.Error(t, err)
			require.Nil(t, pool)
		})
	}
}

func TestTestHelpers(t *testing.T) {
	t.Run("shared pool is reused", func(t *testing.T) {
		require.Same(t, TestPool(t), TestPool(t))
	})

	t.Run("transaction rolls back", func(t *testing.T) {
		ctx := context.Background()
		var id int64 = 9_000_001

		t.Run("insert", func(t *testing.T) {
			tx := TestTx(t)
			_, err := tx.Exec(ctx, `INSERT INTO users (id) VALUES ($1)`, id)
			require.NoError(t, err)
		})

		var n int
		err := TestPool(t).QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE id = $1`, id).Scan(&n)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}
