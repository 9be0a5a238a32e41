package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker()
	tr.Visit("/student/quiz/4")
	assert.Equal(t, "/student/quiz/4", tr.CurrentLocation(ctx))

	tr.ToLogin(ctx)
	assert.Equal(t, LoginLocation, tr.CurrentLocation(ctx))
	assert.Equal(t, 1, tr.LoginRedirects())
}

func TestFuncs(t *testing.T) {
	ctx := context.Background()
	var nav Navigator = Funcs{}
	assert.Empty(t, nav.CurrentLocation(ctx))
	assert.NotPanics(t, func() { nav.ToLogin(ctx) })

	called := false
	nav = Funcs{
		Current: func(context.Context) string { return "/teacher/dashboard" },
		Login:   func(context.Context) { called = true },
	}
	assert.Equal(t, "/teacher/dashboard", nav.CurrentLocation(ctx))
	nav.ToLogin(ctx)
	assert.True(t, called)
}
