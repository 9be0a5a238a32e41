package inflight

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CollapsesConcurrentCalls(t *testing.T) {
	r := NewRegistry()
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "payload", nil
	}

	const callers = 5
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := r.Do(context.Background(), "http://api/assignments", fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	require.Eventually(t, func() bool { return r.Waiting("http://api/assignments") == callers }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "payload", v)
	}
	assert.Zero(t, r.Len())
}

func TestRegistry_SharesErrors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	release := make(chan struct{})
	var calls atomic.Int32
	fn := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return nil, boom
	}

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, _, err := r.Do(context.Background(), "u", fn)
			errs <- err
		}()
	}
	require.Eventually(t, func() bool { return r.Waiting("u") == 2 }, time.Second, time.Millisecond)
	close(release)

	assert.ErrorIs(t, <-errs, boom)
	assert.ErrorIs(t, <-errs, boom)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistry_EntryRemovedAfterSettle(t *testing.T) {
	r := NewRegistry()
	var calls atomic.Int32
	fn := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, errors.New("fail")
	}

	_, _, err := r.Do(context.Background(), "u", fn)
	require.Error(t, err)
	_, _, err = r.Do(context.Background(), "u", fn)
	require.Error(t, err)

	assert.Equal(t, int32(2), calls.Load(), "a settled failure must not suppress later calls")
	assert.Zero(t, r.Len())
}

func TestRegistry_CancelForgetsEntry(t *testing.T) {
	r := NewRegistry()
	block := make(chan struct{})
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := r.Do(ctx, "u", func(context.Context) (any, error) {
			<-block
			return "stale", nil
		})
		done <- err
	}()
	require.Eventually(t, func() bool { return r.Len() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	v, _, err := r.Do(context.Background(), "u", func(context.Context) (any, error) { return "fresh", nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestRegistry_CancelledWaiterKeepsPendingCall(t *testing.T) {
	r := NewRegistry()
	release := make(chan struct{})
	var calls atomic.Int32
	fn := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "payload", nil
	}

	leader := make(chan any, 1)
	go func() {
		v, _, _ := r.Do(context.Background(), "u", fn)
		leader <- v
	}()
	require.Eventually(t, func() bool { return r.Waiting("u") == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	waiter := make(chan error, 1)
	go func() {
		_, _, err := r.Do(ctx, "u", fn)
		waiter <- err
	}()
	require.Eventually(t, func() bool { return r.Waiting("u") == 2 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-waiter, context.Canceled)
	assert.Equal(t, 1, r.Waiting("u"))

	late := make(chan any, 1)
	go func() {
		v, _, _ := r.Do(context.Background(), "u", fn)
		late <- v
	}()
	require.Eventually(t, func() bool { return r.Waiting("u") == 2 }, time.Second, time.Millisecond)
	close(release)

	assert.Equal(t, "payload", <-leader)
	assert.Equal(t, "payload", <-late)
	assert.Equal(t, int32(1), calls.Load(), "the late caller joins the pending call")
	assert.Zero(t, r.Len())
}

func TestRegistry_LeaderCancelDoesNotFailWaiters(t *testing.T) {
	r := NewRegistry()
	release := make(chan struct{})
	var calls atomic.Int32
	fn := func(ctx context.Context) (any, error) {
		calls.Add(1)
		select {
		case <-release:
			return "payload", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	leader := make(chan error, 1)
	go func() {
		_, _, err := r.Do(ctx, "u", fn)
		leader <- err
	}()
	require.Eventually(t, func() bool { return r.Waiting("u") == 1 }, time.Second, time.Millisecond)

	waiter := make(chan any, 1)
	go func() {
		v, _, err := r.Do(context.Background(), "u", fn)
		assert.NoError(t, err)
		waiter <- v
	}()
	require.Eventually(t, func() bool { return r.Waiting("u") == 2 }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-leader, context.Canceled)
	close(release)
	assert.Equal(t, "payload", <-waiter)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistry_LastWaiterCancelsSharedContext(t *testing.T) {
	r := NewRegistry()
	observed := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := r.Do(ctx, "u", func(callCtx context.Context) (any, error) {
			<-callCtx.Done()
			observed <- callCtx.Err()
			return nil, callCtx.Err()
		})
		done <- err
	}()
	require.Eventually(t, func() bool { return r.Len() == 1 }, time.Second, time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	select {
	case err := <-observed:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("shared call was not cancelled")
	}
}
