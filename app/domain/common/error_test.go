package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"menlo.ai/learning-client/app/infrastructure/apiclient"
)

func TestFromError(t *testing.T) {
	loginRequired := NewError("login_required", "not logged in")
	tests := []struct {
		name string
		err  error
		want *Error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "already converted", err: fmt.Errorf("run: %w", loginRequired), want: loginRequired},
		{
			name: "backend rejection",
			err:  &apiclient.Error{Kind: apiclient.KindRequestFailed, Status: 400, Message: "Email already registered"},
			want: NewError(CodeRequestFailed, "Email already registered"),
		},
		{
			name: "unreachable backend",
			err:  &apiclient.Error{Kind: apiclient.KindTransport, Message: "request failed: connection refused"},
			want: NewError(CodeUnavailable, "request failed: connection refused"),
		},
		{name: "anything else", err: errors.New("boom"), want: NewError(CodeUnknown, "boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err))
		})
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewError("session_expired", "log in again"))
	assert.ErrorIs(t, err, NewError("session_expired", "other text"))
	assert.NotErrorIs(t, err, NewError("login_required", "log in again"))

	var empty *Error
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "", empty.Error())
}
