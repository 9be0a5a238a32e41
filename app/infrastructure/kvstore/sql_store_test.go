package kvstore

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real database when TEST_POSTGRES_DSN is set.
func TestSQLStore(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	s, err := NewSQLStore(Options{URL: dsn, Prefix: "kv_" + id + ":"})
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
	require.NoError(t, s.HealthCheck(context.Background()))
}

// LIKE treats '_' as a wildcard, so a neighbour whose prefix differs only where the
// underscore sits must stay out of Keys.
func TestSQLStore_KeysIgnoreWildcardNeighbours(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	mine, err := NewSQLStore(Options{URL: dsn, Prefix: "kv_" + id + ":"})
	require.NoError(t, err)
	defer mine.Close()
	neighbour, err := NewSQLStore(Options{URL: dsn, Prefix: "kvX" + id + ":"})
	require.NoError(t, err)
	defer neighbour.Close()

	require.NoError(t, mine.Set(ctx, "token", "a"))
	require.NoError(t, neighbour.Set(ctx, "other", "b"))
	defer func() {
		_ = mine.Remove(ctx, "token")
		_ = neighbour.Remove(ctx, "other")
	}()

	keys, err := mine.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"token"}, keys)
}
