package cron

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/mileusna/crontab"
	"menlo.ai/learning-client/app/infrastructure/cache"
	"menlo.ai/learning-client/app/infrastructure/kvstore"
	"menlo.ai/learning-client/app/utils/logger"
	"menlo.ai/learning-client/config/environment_variables"
)

// DefaultPurgeSchedule runs the janitor once per cache lifetime.
const DefaultPurgeSchedule = "*/5 * * * *"

const (
	purgeLockName   = "cache-janitor"
	purgeLockExpiry = time.Minute
)

type CacheJanitor interface {
	Purge(ctx context.Context) int
}

// CronService removes expired cache entries that are never read again and would
// otherwise stay in a durable store forever.
// Locker is set when the durable store is shared between processes; only the
// process holding the lock purges.
type CronService struct {
	Cache  CacheJanitor
	Locker kvstore.Locker
}

func NewService(cacheManager *cache.Manager, store kvstore.DurableStore) *CronService {
	locker, _ := store.(kvstore.Locker)
	return &CronService{
		Cache:  cacheManager,
		Locker: locker,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) error {
	cs.PurgeExpired(ctx)

	schedule := environment_variables.EnvironmentVariables.CACHE_PURGE_SCHEDULE
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	return ctab.AddJob(schedule, func() {
		cs.PurgeExpired(ctx)
	})
}

func (cs *CronService) PurgeExpired(ctx context.Context) int {
	if cs == nil || cs.Cache == nil {
		return 0
	}
	if cs.Locker != nil {
		mutex := cs.Locker.NewMutex(purgeLockName, redsync.WithTries(1), redsync.WithExpiry(purgeLockExpiry))
		if err := mutex.TryLockContext(ctx); err != nil {
			logger.GetLogger().Debugf("cron service: purge skipped: %v", err)
			return 0
		}
		defer func() {
			if _, err := mutex.UnlockContext(ctx); err != nil {
				logger.GetLogger().Warnf("cron service: release purge lock: %v", err)
			}
		}()
	}
	removed := cs.Cache.Purge(ctx)
	if removed > 0 {
		logger.GetLogger().Infof("cron service: purged %d cache entries", removed)
	}
	return removed
}
