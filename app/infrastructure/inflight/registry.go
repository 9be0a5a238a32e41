package inflight

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// call is the shared state of one pending URL. Its context belongs to the registry,
// not to any caller, and is cancelled when the last waiter leaves.
type call struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// Registry collapses concurrent calls for the same URL into one execution. It holds
// no state beyond the calls currently running.
type Registry struct {
	group singleflight.Group

	mu    sync.Mutex
	calls map[string]*call
}

func NewRegistry() *Registry {
	return &Registry{calls: make(map[string]*call)}
}

// Do runs fn for url unless a call for url is already pending, in which case it waits
// for that call and returns its result. shared reports whether the result was handed
// to more than one caller.
//
// fn receives a context that outlives any single caller: a caller whose ctx ends gets
// ctx.Err() while the others keep waiting. When the last waiter leaves, the shared
// context is cancelled and url is forgotten so the next caller starts a fresh call.
func (r *Registry) Do(ctx context.Context, url string, fn func(ctx context.Context) (any, error)) (v any, shared bool, err error) {
	r.mu.Lock()
	c, ok := r.calls[url]
	if !ok {
		callCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		c = &call{ctx: callCtx, cancel: cancel}
		r.calls[url] = c
	}
	c.waiters++
	ch := r.group.DoChan(url, func() (any, error) {
		return fn(c.ctx)
	})
	r.mu.Unlock()
	defer r.leave(url, c)

	select {
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Forget drops url so the next Do starts a new call.
func (r *Registry) Forget(url string) {
	r.group.Forget(url)
}

// Len returns the number of distinct URLs with a waiting caller.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Waiting returns how many callers are waiting on url.
func (r *Registry) Waiting(url string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.calls[url]; ok {
		return c.waiters
	}
	return 0
}

func (r *Registry) leave(url string, c *call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.waiters--
	if c.waiters > 0 {
		return
	}
	if r.calls[url] == c {
		delete(r.calls, url)
	}
	c.cancel()
	r.group.Forget(url)
}
