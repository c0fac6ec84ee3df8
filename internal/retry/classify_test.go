package retry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		transient bool
	}{
		{"connection timeout", "connection timeout", true},
		{"plain timeout", "request timeout after 30s", true},
		{"hyphenated time-out", "upstream time-out", true},
		{"network error", "network is unreachable", true},
		{"connection refused", "dial tcp: connection refused", true},
		{"socket hang up", "socket hang up", true},
		{"temporarily unavailable", "service temporarily unavailable", true},
		{"rate limit", "429: rate limit exceeded", false},
		{"quota", "monthly quota exhausted", false},
		{"authentication", "authentication failed", false},
		{"api key", "incorrect api key provided", false},
		{"invalid", "invalid request body", false},
		{"not found", "model not found", false},
		{"private", "resource is private", false},
		{"inaccessible", "endpoint inaccessible", false},
		{"validation", "validation failed: missing field", false},
		{"unrelated", "something unexpected happened", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, IsTransient(errors.New(tt.message)))
		})
	}
}

func TestIsTransient_PermanentWinsOverTransient(t *testing.T) {
	// Both marker sets match; the permanent set takes precedence.
	mixed := []string{
		"connection error: rate limit exceeded",
		"network timeout: invalid api key",
		"host not found", // "not found" is permanent even though "host not found" is transient
		"connection timed out waiting for quota",
	}

	for _, msg := range mixed {
		assert.False(t, IsTransient(fmt.Errorf("%s", msg)), "message: %s", msg)
	}
}

func TestIsTransient_CaseInsensitive(t *testing.T) {
	assert.True(t, IsTransient(errors.New("Connection TIMEOUT")))
	assert.False(t, IsTransient(errors.New("Rate Limit Exceeded")))
}

func TestIsTransient_NilError(t *testing.T) {
	assert.False(t, IsTransient(nil))
}
