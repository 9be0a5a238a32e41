package kvstore

import (
	"strings"

	"menlo.ai/learning-client/app/utils/logger"
	"menlo.ai/learning-client/config/environment_variables"
)

const (
	TypeFile     = "file"
	TypeMemory   = "memory"
	TypeRedis    = "redis"
	TypeValkey   = "valkey"
	TypePostgres = "postgres"
)

// DurableStore and EphemeralStore distinguish the two stores for dependency injection.
type (
	DurableStore   Store
	EphemeralStore Store
)

// NewDurableStore creates the durable store selected by STORE_TYPE, a JSON file under
// the user's configuration directory by default. Backends that cannot be reached
// degrade to an in-memory store so the client keeps working without persistence.
func NewDurableStore() DurableStore {
	storeType := strings.ToLower(environment_variables.EnvironmentVariables.STORE_TYPE)
	return newStore(storeType, OptionsFromEnv())
}

// NewEphemeralStore creates the session-scoped store.
func NewEphemeralStore() EphemeralStore {
	return NewMemoryStore()
}

func newStore(storeType string, opts Options) Store {
	var (
		store Store
		err   error
	)
	switch storeType {
	case "", TypeFile:
		storeType = TypeFile
		store, err = NewFileStore(opts.Path)
	case TypeRedis:
		store, err = NewRedisStore(opts)
	case TypeValkey:
		store, err = NewValkeyStore(opts)
	case TypePostgres:
		store, err = NewSQLStore(opts)
	case TypeMemory:
		return NewMemoryStore()
	default:
		logger.GetLogger().Warnf("kvstore: unknown STORE_TYPE %q, using memory", storeType)
		return NewMemoryStore()
	}
	if err != nil {
		logger.GetLogger().Warnf("kvstore: %s store unavailable, using memory: %v", storeType, err)
		return NewMemoryStore()
	}
	return store
}
