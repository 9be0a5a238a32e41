package cron

import (
	"context"
	"encoding/json"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/crontab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menlo.ai/learning-client/app/infrastructure/cache"
	"menlo.ai/learning-client/app/infrastructure/kvstore"
	"menlo.ai/learning-client/config/environment_variables"
)

type countingJanitor struct {
	calls atomic.Int32
}

func (j *countingJanitor) Purge(ctx context.Context) int {
	j.calls.Add(1)
	return 0
}

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }
	store := kvstore.NewMemoryStore()
	manager := cache.NewManager(store, cache.WithClock(func() time.Time { return clock() }))
	manager.Set(ctx, "leaderboard", json.RawMessage(`[]`))
	manager.Set(ctx, "badges", json.RawMessage(`[]`))

	cs := NewService(manager, store)
	assert.Nil(t, cs.Locker, "memory stores are not shared")
	assert.Zero(t, cs.PurgeExpired(ctx))

	later := now.Add(cache.DefaultTTL)
	clock = func() time.Time { return later }
	assert.Equal(t, 2, cs.PurgeExpired(ctx))
}

func TestPurgeExpired_NilService(t *testing.T) {
	var cs *CronService
	assert.Zero(t, cs.PurgeExpired(context.Background()))
}

func TestStart(t *testing.T) {
	janitor := &countingJanitor{}
	cs := &CronService{Cache: janitor}
	ctab := crontab.New()
	t.Cleanup(ctab.Shutdown)

	require.NoError(t, cs.Start(context.Background(), ctab))
	assert.EqualValues(t, 1, janitor.calls.Load(), "purges once at start")

	ctab.RunAll()
	require.Eventually(t, func() bool { return janitor.calls.Load() == 2 }, time.Second, 10*time.Millisecond)
}

func TestStart_JobLeavesConfigurationAlone(t *testing.T) {
	env := &environment_variables.EnvironmentVariables
	previous := env.API_BASE_URL
	env.API_BASE_URL = "http://configured.example"
	t.Cleanup(func() { env.API_BASE_URL = previous })

	janitor := &countingJanitor{}
	ctab := crontab.New()
	t.Cleanup(ctab.Shutdown)
	require.NoError(t, (&CronService{Cache: janitor}).Start(context.Background(), ctab))

	ctab.RunAll()
	require.Eventually(t, func() bool { return janitor.calls.Load() == 2 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "http://configured.example", env.API_BASE_URL)
}

func TestStart_InvalidSchedule(t *testing.T) {
	environment_variables.EnvironmentVariables.CACHE_PURGE_SCHEDULE = "every now and then"
	t.Cleanup(func() { environment_variables.EnvironmentVariables.CACHE_PURGE_SCHEDULE = "" })

	ctab := crontab.New()
	t.Cleanup(ctab.Shutdown)
	assert.Error(t, (&CronService{Cache: &countingJanitor{}}).Start(context.Background(), ctab))
}

// Runs against a real server when TEST_REDIS_URL is set.
func TestPurgeExpired_SkipsWhileLocked(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	store, err := kvstore.NewRedisStore(kvstore.Options{URL: redisURL, DB: -1, Prefix: "test:" + uuid.NewString() + ":"})
	require.NoError(t, err)
	defer store.Close()

	janitor := &countingJanitor{}
	cs := &CronService{Cache: janitor, Locker: store}

	held := store.NewMutex(purgeLockName)
	require.NoError(t, held.LockContext(ctx))
	assert.Zero(t, cs.PurgeExpired(ctx))
	assert.Zero(t, janitor.calls.Load(), "another process owns the purge")

	_, err = held.UnlockContext(ctx)
	require.NoError(t, err)
	cs.PurgeExpired(ctx)
	assert.EqualValues(t, 1, janitor.calls.Load())
}
