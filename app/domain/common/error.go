package common

import (
	"errors"

	"menlo.ai/learning-client/app/infrastructure/apiclient"
)

const (
	CodeRequestFailed = "request_failed"
	CodeUnavailable   = "backend_unavailable"
	CodeUnknown       = "unknown"
)

// Error is a failure shown to the user, identified by a stable code
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// FromError converts err for display. Backend errors keep the backend's message.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == apiclient.KindTransport {
			return NewError(CodeUnavailable, apiErr.Message)
		}
		return NewError(CodeRequestFailed, apiErr.Message)
	}
	return NewError(CodeUnknown, err.Error())
}

// IsEmpty checks if the error is empty (no error)
func (e *Error) IsEmpty() bool {
	return e == nil || e.Code == ""
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Is matches errors with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}
