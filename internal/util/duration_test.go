package util

import (
	"strings"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  time.Duration
		wantError bool
	}{
		// Integer seconds
		{
			name:     "integer seconds - 30",
			input:    "30",
			expected: 30 * time.Second,
		},
		{
			name:     "integer seconds - 0",
			input:    "0",
			expected: 0,
		},
		{
			name:     "integer seconds with spaces",
			input:    " 10 ",
			expected: 10 * time.Second,
		},

		// Duration strings
		{
			name:     "duration string - seconds",
			input:    "45s",
			expected: 45 * time.Second,
		},
		{
			name:     "duration string - minutes and seconds",
			input:    "1m30s",
			expected: 90 * time.Second,
		},

		// Error cases
		{
			name:      "invalid format - letters",
			input:     "abc",
			wantError: true,
		},
		{
			name:      "negative seconds",
			input:     "-5",
			wantError: true,
		},
		{
			name:      "negative duration",
			input:     "-5s",
			wantError: true,
		},
		{
			name:      "empty string",
			input:     "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)

			if tt.wantError {
				if err == nil {
					t.Errorf("ParseDuration(%q) expected error but got none", tt.input)
				}
				// Verify error message contains helpful format info
				if err != nil && !strings.Contains(err.Error(), "Valid formats") {
					t.Errorf("ParseDuration(%q) error should contain format help, got: %v", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseDuration(%q) unexpected error: %v", tt.input, err)
				return
			}

			if got != tt.expected {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseSecondsRange(t *testing.T) {
	tests := []struct {
		input     string
		min, max  int
		wantError bool
	}{
		{input: "3-33", min: 3, max: 33},
		{input: " 1 - 5 ", min: 1, max: 5},
		{input: "7", min: 7, max: 7},
		{input: "0-0", min: 0, max: 0},
		{input: "5-2", wantError: true},
		{input: "a-b", wantError: true},
		{input: "3-", wantError: true},
		{input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			min, max, err := ParseSecondsRange(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseSecondsRange(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSecondsRange(%q) unexpected error: %v", tt.input, err)
			}
			if min != tt.min || max != tt.max {
				t.Errorf("ParseSecondsRange(%q) = %d,%d, want %d,%d", tt.input, min, max, tt.min, tt.max)
			}
		})
	}
}
