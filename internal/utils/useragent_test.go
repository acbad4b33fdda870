package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDevice(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		expected DeviceInfo
	}{
		{
			name: "desktop firefox",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
			expected: DeviceInfo{
				OS:      "GNU/Linux",
				Browser: "Firefox",
				Device:  "Desktop",
			},
		},
		{
			name: "android chrome is mobile",
			ua:   "Mozilla/5.0 (Linux; Android 13; SM-A525F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Mobile Safari/537.36",
			expected: DeviceInfo{
				OS:      "Android",
				Browser: "Chrome",
				Device:  "Mobile",
			},
		},
		{
			name:     "empty header",
			ua:       "",
			expected: DeviceInfo{OS: "Unknown", Browser: "Unknown", Device: "Unknown"},
		},
		{
			name:     "unparseable header",
			ua:       "definitely-not-a-browser",
			expected: DeviceInfo{OS: "Unknown", Browser: "Unknown", Device: "Unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDevice(tt.ua))
		})
	}
}
