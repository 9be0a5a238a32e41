package session

import (
	"context"
	"sync"

	"menlo.ai/learning-client/app/infrastructure/kvstore"
	"menlo.ai/learning-client/app/utils/logger"
)

type Persistence string

const (
	PersistenceDurable   Persistence = "durable"
	PersistenceEphemeral Persistence = "ephemeral"
)

// ReturnToKey holds the location to resume after logging in again.
const ReturnToKey = "redirectAfterLogin"

// Location is one place a token may be stored.
type Location struct {
	Scope Persistence
	Key   string
}

// DefaultLocations lists the key names older clients used, newest first. The first
// location of each scope is where new tokens are written.
var DefaultLocations = []Location{
	{Scope: PersistenceDurable, Key: "token"},
	{Scope: PersistenceDurable, Key: "access_token"},
	{Scope: PersistenceDurable, Key: "authToken"},
	{Scope: PersistenceEphemeral, Key: "token"},
	{Scope: PersistenceEphemeral, Key: "access_token"},
	{Scope: PersistenceEphemeral, Key: "authToken"},
}

// Session is a snapshot of the current credential.
type Session struct {
	Token       string
	Persistence Persistence
}

// Manager owns the bearer token. It is safe for concurrent use.
type Manager struct {
	durable   kvstore.Store
	ephemeral kvstore.Store
	locations []Location

	mu          sync.RWMutex
	token       string
	persistence Persistence
}

func NewManager(durable kvstore.Store, ephemeral kvstore.Store, locations []Location) *Manager {
	if len(locations) == 0 {
		locations = DefaultLocations
	}
	return &Manager{
		durable:   durable,
		ephemeral: ephemeral,
		locations: locations,
	}
}

// NewSessionManager is the injector-facing constructor using DefaultLocations.
func NewSessionManager(durable kvstore.DurableStore, ephemeral kvstore.EphemeralStore) *Manager {
	return NewManager(durable, ephemeral, DefaultLocations)
}

// Initialize loads the first non-empty token found in the configured locations.
// Without a match the session stays unauthenticated.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.persistence = ""
	for _, loc := range m.locations {
		value, ok, err := m.storeFor(loc.Scope).Get(ctx, loc.Key)
		if err != nil {
			logger.GetLogger().Warnf("session: read %s/%s failed: %v", loc.Scope, loc.Key, err)
			continue
		}
		if ok && value != "" {
			m.token = value
			m.persistence = loc.Scope
			logger.GetLogger().Debugf("session: restored token from %s/%s", loc.Scope, loc.Key)
			return
		}
	}
}

// SetToken stores token in the durable store when remember is set and in the
// ephemeral store otherwise, removing it from every other location.
func (m *Manager) SetToken(ctx context.Context, token string, remember bool) error {
	scope := PersistenceEphemeral
	if remember {
		scope = PersistenceDurable
	}
	primary, ok := m.primary(scope)
	if !ok {
		primary = Location{Scope: scope, Key: DefaultLocations[0].Key}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.persistence = scope

	if err := m.storeFor(scope).Set(ctx, primary.Key, token); err != nil {
		return err
	}
	for _, loc := range m.locations {
		if loc == primary {
			continue
		}
		if err := m.storeFor(loc.Scope).Remove(ctx, loc.Key); err != nil {
			logger.GetLogger().Warnf("session: remove %s/%s failed: %v", loc.Scope, loc.Key, err)
		}
	}
	return nil
}

// ClearToken removes the token from every location and from memory.
func (m *Manager) ClearToken(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.persistence = ""
	for _, loc := range m.locations {
		if err := m.storeFor(loc.Scope).Remove(ctx, loc.Key); err != nil {
			logger.GetLogger().Warnf("session: remove %s/%s failed: %v", loc.Scope, loc.Key, err)
		}
	}
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Session{Token: m.token, Persistence: m.persistence}
}

// AuthHeader returns the Authorization header for the current token, or an empty map
// when unauthenticated so callers can merge it unconditionally.
func (m *Manager) AuthHeader() map[string]string {
	token := m.Token()
	if token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// SaveReturnTo remembers where to go after the next login.
func (m *Manager) SaveReturnTo(ctx context.Context, location string) {
	if location == "" {
		return
	}
	if err := m.ephemeral.Set(ctx, ReturnToKey, location); err != nil {
		logger.GetLogger().Warnf("session: save return location failed: %v", err)
	}
}

// TakeReturnTo returns and forgets the saved post-login location.
func (m *Manager) TakeReturnTo(ctx context.Context) (string, bool) {
	location, ok, err := m.ephemeral.Get(ctx, ReturnToKey)
	if err != nil || !ok || location == "" {
		return "", false
	}
	if err := m.ephemeral.Remove(ctx, ReturnToKey); err != nil {
		logger.GetLogger().Warnf("session: remove return location failed: %v", err)
	}
	return location, true
}

func (m *Manager) primary(scope Persistence) (Location, bool) {
	for _, loc := range m.locations {
		if loc.Scope == scope {
			return loc, true
		}
	}
	return Location{}, false
}

func (m *Manager) storeFor(scope Persistence) kvstore.Store {
	if scope == PersistenceDurable {
		return m.durable
	}
	return m.ephemeral
}
