package kvstore

import (
	"context"
	"errors"

	"github.com/go-redsync/redsync/v4"
)

// ErrUnavailable is returned by stores whose backend cannot be reached.
var ErrUnavailable = errors.New("kvstore: backend unavailable")

// Store is a string-keyed storage medium. A durable store survives restarts and is
// shared by every client pointed at it; an ephemeral store lives as long as the process.
type Store interface {
	// Get returns the value stored under key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value string) error

	// Remove deletes key. Removing a missing key is not an error
	Remove(ctx context.Context, key string) error

	// Keys lists every key in the store
	Keys(ctx context.Context) ([]string, error)

	// Len returns the number of keys in the store
	Len(ctx context.Context) (int, error)

	// Close releases the underlying connection
	Close() error
}

// Locker is implemented by stores that can hand out mutexes shared by every process
// using the same backend.
type Locker interface {
	NewMutex(name string, options ...redsync.Option) *redsync.Mutex
}

// HealthChecker is implemented by stores backed by a remote service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
