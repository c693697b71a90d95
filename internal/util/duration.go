package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const durationHelp = "\n\nValid formats:\n" +
	"• Seconds: a bare number (e.g., '30')\n" +
	"• Duration: Go duration syntax (e.g., '45s', '2m', '1m30s')"

const rangeHelp = "\n\nValid formats:\n" +
	"• Seconds range: MIN-MAX (e.g., '3-33')\n" +
	"• Fixed pause: a single number (e.g., '5')"

// ParseDuration parses a bare integer as seconds, or anything time.ParseDuration accepts.
// Negative values are rejected.
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if seconds, err := strconv.Atoi(input); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("Invalid duration format: %s"+durationHelp, input)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil || duration < 0 {
		return 0, fmt.Errorf("Invalid duration format: %s"+durationHelp, input)
	}
	return duration, nil
}

// ParseSecondsRange parses "MIN-MAX" (or a single "N") into inclusive second bounds.
func ParseSecondsRange(input string) (int, int, error) {
	input = strings.TrimSpace(input)
	lo, hi, found := strings.Cut(input, "-")
	if !found {
		hi = lo
	}
	min, err1 := strconv.Atoi(strings.TrimSpace(lo))
	max, err2 := strconv.Atoi(strings.TrimSpace(hi))
	if err1 != nil || err2 != nil || min < 0 || min > max {
		return 0, 0, fmt.Errorf("Invalid delay range: %s"+rangeHelp, input)
	}
	return min, max, nil
}
