package registrationController

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntakeMeta_ClientIP(t *testing.T) {
	tests := []struct {
		name     string
		meta     IntakeMeta
		expected string
	}{
		{
			name:     "first forwarded hop wins",
			meta:     IntakeMeta{ForwardedFor: "103.120.1.9, 10.0.0.1", RemoteIP: "172.16.0.1"},
			expected: "103.120.1.9",
		},
		{
			name:     "single forwarded hop",
			meta:     IntakeMeta{ForwardedFor: "103.120.1.9"},
			expected: "103.120.1.9",
		},
		{
			name:     "forwarded hop trimmed",
			meta:     IntakeMeta{ForwardedFor: "  103.120.1.9 , 10.0.0.1"},
			expected: "103.120.1.9",
		},
		{
			name:     "falls back to remote address",
			meta:     IntakeMeta{RemoteIP: "172.16.0.1"},
			expected: "172.16.0.1",
		},
		{
			name:     "empty forwarded header falls through",
			meta:     IntakeMeta{ForwardedFor: " ", RemoteIP: "172.16.0.1"},
			expected: "172.16.0.1",
		},
		{
			name:     "nothing known",
			meta:     IntakeMeta{},
			expected: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.meta.ClientIP())
		})
	}
}
