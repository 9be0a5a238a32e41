package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "detail string", body: `{"detail":"Email already registered"}`, want: "Email already registered"},
		{
			name: "validation list",
			body: `{"detail":[{"loc":["body","email"],"msg":"field required","type":"missing"}]}`,
			want: "email: field required",
		},
		{
			name: "list without location",
			body: `{"detail":[{"msg":"bad"},{"field":"title","message":"empty"}]}`,
			want: "bad; title: empty",
		},
		{name: "list of strings", body: `{"detail":["a","b"]}`, want: "a; b"},
		{name: "numeric location", body: `{"detail":[{"loc":["body","questions",0],"msg":"invalid"}]}`, want: "0: invalid"},
		{name: "message field", body: `{"message":"Quiz not found"}`, want: "Quiz not found"},
		{name: "error field", body: `{"code":"x","error":"failed to invalidate cache"}`, want: "failed to invalidate cache"},
		{name: "empty detail falls through", body: `{"detail":"","message":"m"}`, want: "m"},
		{name: "not json", body: `Internal Server Error`, want: "Bad Gateway"},
		{name: "empty body", body: ``, want: "Bad Gateway"},
		{name: "unknown shape", body: `{"foo":1}`, want: "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body), "Bad Gateway"))
		})
	}
}

func TestRawPayload(t *testing.T) {
	assert.Nil(t, rawPayload(nil))
	assert.JSONEq(t, `{"detail":"x"}`, string(rawPayload([]byte(`{"detail":"x"}`))))
	assert.JSONEq(t, `"oops"`, string(rawPayload([]byte("oops"))))
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Not Found", statusText(404, "404 Not Found"))
	assert.Equal(t, "599 Custom", statusText(599, "599 Custom"))
}

func TestPayload(t *testing.T) {
	var empty Payload
	assert.True(t, empty.Empty())
	assert.True(t, Payload("null").Empty())

	var dest struct{ N int }
	dest.N = 5
	assert.NoError(t, empty.Decode(&dest))
	assert.Equal(t, 5, dest.N)

	assert.NoError(t, Payload(`{"N":2}`).Decode(&dest))
	assert.Equal(t, 2, dest.N)
	assert.Error(t, Payload(`[1]`).Decode(&dest))

	assert.Equal(t, "hello", Payload(`"hello"`).Text())
	assert.Equal(t, `{"a":1}`, Payload(`{"a":1}`).Text())
}
