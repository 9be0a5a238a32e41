package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is a parsed response body. JSON bodies are kept as they are; other bodies
// are held as a JSON string.
type Payload json.RawMessage

// Empty reports whether there is no usable value, as after an expired session.
func (p Payload) Empty() bool {
	trimmed := bytes.TrimSpace(p)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Decode unmarshals the payload into dest. An empty payload leaves dest untouched.
func (p Payload) Decode(dest any) error {
	if p.Empty() {
		return nil
	}
	if err := json.Unmarshal(p, dest); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// Text returns the body of a text response, or the raw JSON otherwise.
func (p Payload) Text() string {
	var s string
	if err := json.Unmarshal(p, &s); err == nil {
		return s
	}
	return string(p)
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// Response is the outcome of Client.Do.
type Response struct {
	Status  int
	Payload Payload

	// FromCache is set when no network call was made
	FromCache bool
	// Shared is set when the result came from a concurrent identical request
	Shared bool
	// SessionExpired is set when the backend answered 401; Payload is empty
	SessionExpired bool
}
