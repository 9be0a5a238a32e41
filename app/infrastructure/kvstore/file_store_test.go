package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menlo.ai/learning-client/config/environment_variables"
)

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "store.json"))
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "token", "abc"))
	require.NoError(t, first.Close())

	second, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, second.Set(ctx, "authToken", "x"))
	keys, err := first.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"authToken", "token"}, keys, "open stores see each other's writes")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestFileStore_UnreadableContentStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.Set(ctx, "token", "abc"))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(raw))
}

func TestNewStore_DefaultsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	for _, storeType := range []string{"", TypeFile} {
		t.Run("type="+storeType, func(t *testing.T) {
			store := newStore(storeType, Options{DB: -1, Path: path})
			fs, ok := store.(*FileStore)
			require.True(t, ok)
			assert.Equal(t, path, fs.Path())
		})
	}
}

func TestNewStore_UnusableFilePathFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	store := newStore(TypeFile, Options{Path: filepath.Join(blocker, "store.json")})
	_, ok := store.(*MemoryStore)
	assert.True(t, ok)
}

func TestNewDurableStore_DefaultConfigurationPersists(t *testing.T) {
	ctx := context.Background()
	env := &environment_variables.EnvironmentVariables
	previousType, previousPath := env.STORE_TYPE, env.STORE_PATH
	env.STORE_TYPE = ""
	env.STORE_PATH = filepath.Join(t.TempDir(), "store.json")
	t.Cleanup(func() { env.STORE_TYPE, env.STORE_PATH = previousType, previousPath })

	require.NoError(t, NewDurableStore().Set(ctx, "token", "abc"))

	v, ok, err := NewDurableStore().Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}
