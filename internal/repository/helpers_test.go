package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-bot/internal/database"
	"gitlab.com/yelinaung/finance-bot/internal/models"
)

func createTestUser(t *testing.T, db database.PGXDB, id int64) *models.User {
	t.Helper()
	user := &models.User{ID: id, Username: "user", FirstName: "Test"}
	_, err := NewUserRepository(db).Upsert(context.Background(), user)
	require.NoError(t, err)
	return user
}
