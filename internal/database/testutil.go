package database

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// testDatabaseURLEnv names the variable that enables integration tests.
const testDatabaseURLEnv = "TEST_DATABASE_URL"

var (
	sharedPool     *pgxpool.Pool
	sharedPoolOnce sync.Once
	sharedPoolErr  error
)

func testDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv(testDatabaseURLEnv)
	if url == "" {
		t.Skip(testDatabaseURLEnv + " not set, skipping integration test")
	}
	return url
}

// TestDB opens a dedicated pool for tests that need their own connections,
// such as schema tests. The pool is closed when the test ends.
func TestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := Connect(context.Background(), testDatabaseURL(t))
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// TestPool returns the pool shared by all tests in the process, migrated on
// first use.
func TestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := testDatabaseURL(t)

	sharedPoolOnce.Do(func() {
		ctx := context.Background()
		if sharedPool, sharedPoolErr = Connect(ctx, url); sharedPoolErr != nil {
			return
		}
		sharedPoolErr = RunMigrations(ctx, sharedPool)
	})
	if sharedPoolErr != nil {
		t.Fatalf("failed to set up test database: %v", sharedPoolErr)
	}
	return sharedPool
}

// TestTx returns a transaction on the shared pool that is rolled back when
// the test ends. Repositories built on it see only the test's own rows.
func TestTx(t *testing.T) PGXDB {
	t.Helper()
	tx, err := TestPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("failed to begin test transaction: %v", err)
	}
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}
