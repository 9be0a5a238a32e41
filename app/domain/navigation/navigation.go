package navigation

import (
	"context"
	"sync"

	"menlo.ai/learning-client/app/utils/logger"
)

// LoginLocation is where unauthenticated users are sent.
const LoginLocation = "/login"

// Navigator is the boundary to whatever presents views to the user.
type Navigator interface {
	// CurrentLocation is the location to come back to after logging in
	CurrentLocation(ctx context.Context) string

	// ToLogin transfers control to the login view
	ToLogin(ctx context.Context)
}

// Tracker remembers the last location visited and logs transfers to the login
// view. Command-line clients use it in place of a router.
type Tracker struct {
	mu       sync.Mutex
	location string
	logins   int
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Visit records location as the current one.
func (t *Tracker) Visit(location string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.location = location
}

func (t *Tracker) CurrentLocation(ctx context.Context) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.location
}

func (t *Tracker) ToLogin(ctx context.Context) {
	t.mu.Lock()
	from := t.location
	t.location = LoginLocation
	t.logins++
	t.mu.Unlock()
	logger.GetLogger().WithField("from", from).Info("session expired, login required")
}

// LoginRedirects returns how many times ToLogin was called.
func (t *Tracker) LoginRedirects() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.logins
}

// Funcs adapts plain functions to Navigator. Nil fields are no-ops.
type Funcs struct {
	Current func(ctx context.Context) string
	Login   func(ctx context.Context)
}

func (f Funcs) CurrentLocation(ctx context.Context) string {
	if f.Current == nil {
		return ""
	}
	return f.Current(ctx)
}

func (f Funcs) ToLogin(ctx context.Context) {
	if f.Login != nil {
		f.Login(ctx)
	}
}
