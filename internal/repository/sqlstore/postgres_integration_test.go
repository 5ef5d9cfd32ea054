package sqlstore

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/errors"
)

func TestPostgres_ItemLifecycle(t *testing.T) {
	dbURL := os.Getenv("TODO_TEST_PG_URL")
	if dbURL == "" {
		t.Skip("TODO_TEST_PG_URL not set (integration test)")
	}

	ctx := context.Background()
	repo, err := New(ctx, Options{Driver: DialectPostgres, DSN: dbURL})
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Migrate(ctx))

	item := &Item{Name: "pg item"}
	require.NoError(t, repo.CreateItem(ctx, item))
	assert.Greater(t, item.ID, int64(0))
	t.Cleanup(func() { repo.DeleteItem(context.Background(), item.ID) })

	item.IsComplete = true
	require.NoError(t, repo.UpdateItem(ctx, item))

	got, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsComplete)

	require.NoError(t, repo.DeleteItem(ctx, item.ID))
	assert.True(t, errors.IsNotFound(repo.DeleteItem(ctx, item.ID)))
}
