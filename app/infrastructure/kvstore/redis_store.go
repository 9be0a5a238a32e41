package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"menlo.ai/learning-client/app/utils/functional"
	"menlo.ai/learning-client/app/utils/logger"
)

// RedisStore is a durable store on Redis. Keys are namespaced with Options.Prefix so
// several applications can share one database.
type RedisStore struct {
	client *redis.Client
	prefix string
	locks  *redsync.Redsync
}

// NewRedisStore connects to Redis. An unparsable URL falls back to localhost.
func NewRedisStore(opts Options) (*RedisStore, error) {
	redisURL := opts.URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	ro, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.GetLogger().Error(fmt.Sprintf("Failed to parse Redis URL: %v", err))
		ro = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	if opts.Password != "" {
		ro.Password = opts.Password
	}
	if opts.DB >= 0 {
		ro.DB = opts.DB
	}

	client := redis.NewClient(ro)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping: %v", ErrUnavailable, err)
	}
	logger.GetLogger().Info("Successfully connected to Redis")

	return NewRedisStoreWithClient(client, opts.Prefix), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		locks:  redsync.New(goredis.NewPool(client)),
	}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get value: %w", err)
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

// Remove unlinks the key so the server frees it asynchronously.
func (r *RedisStore) Remove(ctx context.Context, key string) error {
	if err := r.client.Unlink(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to unlink key: %w", err)
	}
	return nil
}

// Keys scans the namespace and returns keys without the prefix.
func (r *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		out    []string
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 1000).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}
		for _, k := range keys {
			out = append(out, strings.TrimPrefix(k, r.prefix))
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	// SCAN may return a key more than once
	return functional.Distinct(out), nil
}

func (r *RedisStore) Len(ctx context.Context) (int, error) {
	keys, err := r.Keys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// NewMutex returns a Redlock mutex living in the store's namespace.
func (r *RedisStore) NewMutex(name string, options ...redsync.Option) *redsync.Mutex {
	return r.locks.NewMutex(r.prefix+"lock:"+name, options...)
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
