package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_Unmarshal(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "naive", input: `"2024-05-01T10:30:00"`, want: want},
		{name: "naive with micros", input: `"2024-05-01T10:30:00.000000"`, want: want},
		{name: "with offset", input: `"2024-05-01T12:30:00+02:00"`, want: want},
		{name: "space separated", input: `"2024-05-01 10:30:00"`, want: want},
		{name: "null", input: `null`},
		{name: "empty", input: `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTimestamp_Marshal(t *testing.T) {
	data, err := json.Marshal(struct {
		At   Timestamp  `json:"at"`
		Zero *Timestamp `json:"zero"`
	}{At: Timestamp{time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-05-01T10:30:00Z","zero":null}`, string(data))
}
