// Package apiclienttest wires a Client against a recording fake backend.
package apiclienttest

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"menlo.ai/learning-client/app/domain/navigation"
	"menlo.ai/learning-client/app/domain/session"
	"menlo.ai/learning-client/app/infrastructure/apiclient"
	"menlo.ai/learning-client/app/infrastructure/cache"
	"menlo.ai/learning-client/app/infrastructure/inflight"
	"menlo.ai/learning-client/app/infrastructure/kvstore"
	"menlo.ai/learning-client/app/utils/testbackend"
	"resty.dev/v3"
)

type Env struct {
	Client    *apiclient.Client
	Backend   *testbackend.Backend
	Cache     *cache.Manager
	Session   *session.Manager
	Durable   *kvstore.MemoryStore
	Ephemeral *kvstore.MemoryStore
	Navigator *navigation.Tracker
}

// New starts a fake backend with the given routes and returns a client pointed at it.
func New(t testing.TB, register func(r gin.IRouter)) *Env {
	t.Helper()
	backend := testbackend.New(t, register)
	durable := kvstore.NewMemoryStore()
	ephemeral := kvstore.NewMemoryStore()
	sess := session.NewManager(durable, ephemeral, nil)
	cacheManager := cache.NewManager(durable)
	nav := navigation.NewTracker()

	client := apiclient.NewClient(
		apiclient.Config{BaseURL: backend.URL(), Timeout: 5 * time.Second},
		resty.New(),
		cacheManager,
		inflight.NewRegistry(),
		sess,
		nav,
	)
	return &Env{
		Client:    client,
		Backend:   backend,
		Cache:     cacheManager,
		Session:   sess,
		Durable:   durable,
		Ephemeral: ephemeral,
		Navigator: nav,
	}
}
