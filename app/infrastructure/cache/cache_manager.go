package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"menlo.ai/learning-client/app/infrastructure/kvstore"
	"menlo.ai/learning-client/app/utils/functional"
	"menlo.ai/learning-client/app/utils/logger"
	"menlo.ai/learning-client/config/environment_variables"
)

// DefaultTTL is the validity window of every cache entry.
const DefaultTTL = 5 * time.Minute

// DefaultPrefix separates cache entries from other keys in the store.
const DefaultPrefix = "cache_"

// Entry is the stored form of a cached payload. Timestamp is in unix milliseconds.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Stats counts cache activity since the manager was created.
type Stats struct {
	Hits        int64
	Misses      int64
	Writes      int64
	WriteErrors int64
}

// Manager caches JSON payloads under logical keys in a key-value store. Store failures
// never reach the caller: reads degrade to misses and writes are logged and dropped.
type Manager struct {
	store  kvstore.Store
	prefix string
	ttl    time.Duration
	now    func() time.Time

	hits, misses, writes, writeErrors atomic.Int64
}

type Option func(*Manager)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(m *Manager) { m.prefix = prefix }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(store kvstore.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewCacheManager builds the manager over the durable store, honouring CACHE_PREFIX.
func NewCacheManager(store kvstore.DurableStore) *Manager {
	prefix := environment_variables.EnvironmentVariables.CACHE_PREFIX
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return NewManager(store, WithPrefix(prefix))
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Get returns the payload cached under key. Expired entries are deleted.
func (m *Manager) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	storeKey := m.prefix + key
	raw, ok, err := m.store.Get(ctx, storeKey)
	if err != nil {
		logger.GetLogger().Warnf("cache: read %s failed: %v", key, err)
		m.misses.Add(1)
		return nil, false
	}
	if !ok {
		m.misses.Add(1)
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		logger.GetLogger().Debugf("cache: corrupt entry %s: %v", key, err)
		m.misses.Add(1)
		return nil, false
	}
	if m.expired(entry) {
		if err := m.store.Remove(ctx, storeKey); err != nil {
			logger.GetLogger().Warnf("cache: remove expired %s failed: %v", key, err)
		}
		m.misses.Add(1)
		return nil, false
	}
	m.hits.Add(1)
	return entry.Data, true
}

// Set stores data under key with the current timestamp.
func (m *Manager) Set(ctx context.Context, key string, data json.RawMessage) {
	value, err := json.Marshal(Entry{Data: data, Timestamp: m.now().UnixMilli()})
	if err != nil {
		m.writeErrors.Add(1)
		logger.GetLogger().Warnf("cache: encode %s failed: %v", key, err)
		return
	}
	if err := m.store.Set(ctx, m.prefix+key, string(value)); err != nil {
		m.writeErrors.Add(1)
		logger.GetLogger().Warnf("cache: write %s failed: %v", key, err)
		return
	}
	m.writes.Add(1)
}

// Invalidate removes every entry whose logical key starts with prefix. An empty
// prefix removes all cache entries and leaves other keys in the store alone.
func (m *Manager) Invalidate(ctx context.Context, prefix string) {
	keys, err := m.cacheKeys(ctx)
	if err != nil {
		logger.GetLogger().Warnf("cache: list keys failed: %v", err)
		return
	}
	matched := functional.Filter(keys, func(k string) bool {
		return strings.HasPrefix(k, m.prefix+prefix)
	})
	for _, k := range matched {
		if err := m.store.Remove(ctx, k); err != nil {
			logger.GetLogger().Warnf("cache: remove %s failed: %v", k, err)
		}
	}
	logger.GetLogger().WithField("prefix", prefix).Debugf("cache: invalidated %d entries", len(matched))
}

// Purge removes expired and unreadable entries and returns how many were removed.
func (m *Manager) Purge(ctx context.Context) int {
	keys, err := m.cacheKeys(ctx)
	if err != nil {
		logger.GetLogger().Warnf("cache: list keys failed: %v", err)
		return 0
	}
	removed := 0
	for _, k := range keys {
		raw, ok, err := m.store.Get(ctx, k)
		if err != nil || !ok {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(raw), &entry); err == nil && !m.expired(entry) {
			continue
		}
		if err := m.store.Remove(ctx, k); err != nil {
			logger.GetLogger().Warnf("cache: remove %s failed: %v", k, err)
			continue
		}
		removed++
	}
	return removed
}

func (m *Manager) Stats() Stats {
	return Stats{
		Hits:        m.hits.Load(),
		Misses:      m.misses.Load(),
		Writes:      m.writes.Load(),
		WriteErrors: m.writeErrors.Load(),
	}
}

func (m *Manager) expired(entry Entry) bool {
	age := m.now().UnixMilli() - entry.Timestamp
	return age >= m.ttl.Milliseconds()
}

func (m *Manager) cacheKeys(ctx context.Context) ([]string, error) {
	keys, err := m.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	return functional.Filter(keys, func(k string) bool {
		return strings.HasPrefix(k, m.prefix)
	}), nil
}
