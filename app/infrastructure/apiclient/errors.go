package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/buger/jsonparser"
)

type Kind string

const (
	// KindRequestFailed is a non-2xx, non-401 answer from the backend
	KindRequestFailed Kind = "request_failed"
	// KindTransport covers unreachable backends, cancellations and malformed responses
	KindTransport Kind = "transport"
)

// Error is returned for failed requests. Payload holds the raw error body when the
// backend sent one.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Payload json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return "api: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func newRequestError(status int, statusText string, body []byte) *Error {
	return &Error{
		Kind:    KindRequestFailed,
		Status:  status,
		Message: errorMessage(body, statusText),
		Payload: rawPayload(body),
	}
}

func newTransportError(message string, err error) *Error {
	if err != nil {
		message = message + ": " + err.Error()
	}
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// errorMessage picks a readable message out of an error body: a string "detail", a
// list of field errors under "detail", "message" or "error". Anything else falls
// back to the status text.
func errorMessage(body []byte, statusText string) string {
	if value, dataType, _, err := jsonparser.Get(body, "detail"); err == nil {
		switch dataType {
		case jsonparser.String:
			if s, err := jsonparser.ParseString(value); err == nil && s != "" {
				return s
			}
		case jsonparser.Array:
			if msg := fieldErrors(value); msg != "" {
				return msg
			}
		case jsonparser.Object:
			if s, err := jsonparser.GetString(value, "message"); err == nil && s != "" {
				return s
			}
		}
	}
	for _, key := range []string{"message", "error"} {
		if s, err := jsonparser.GetString(body, key); err == nil && s != "" {
			return s
		}
	}
	return statusText
}

// fieldErrors renders [{"loc":["body","email"],"msg":"field required"}] as
// "email: field required", joining several with "; ".
func fieldErrors(list []byte) string {
	var parts []string
	_, _ = jsonparser.ArrayEach(list, func(item []byte, dataType jsonparser.ValueType, _ int, _ error) {
		switch dataType {
		case jsonparser.String:
			if s, err := jsonparser.ParseString(item); err == nil && s != "" {
				parts = append(parts, s)
			}
		case jsonparser.Object:
			msg, _ := jsonparser.GetString(item, "msg")
			if msg == "" {
				msg, _ = jsonparser.GetString(item, "message")
			}
			if msg == "" {
				return
			}
			if field := fieldName(item); field != "" {
				msg = field + ": " + msg
			}
			parts = append(parts, msg)
		}
	})
	return strings.Join(parts, "; ")
}

// fieldName is the last element of "loc", or "field" when there is no location.
func fieldName(item []byte) string {
	var last string
	_, _ = jsonparser.ArrayEach(item, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
		last = string(value)
	}, "loc")
	if last != "" {
		return last
	}
	field, _ := jsonparser.GetString(item, "field")
	return field
}

func rawPayload(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	encoded, _ := json.Marshal(string(body))
	return encoded
}

func statusText(status int, fallback string) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fallback
}
