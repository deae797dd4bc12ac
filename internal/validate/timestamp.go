package validate

import (
	"errors"
	"strconv"
	"strings"
)

// Time constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60

	// MaxSpanSeconds caps both snippet length and full-extraction duration (4 hours)
	MaxSpanSeconds = 4 * SecondsPerHour

	// MaxComponent bounds each parsed component so the weighted sum cannot
	// overflow; anything this large already fails the span checks
	MaxComponent = 2 * MaxSpanSeconds
)

// ParseTimestamp converts "SS", "MM:SS" or "HH:MM:SS" into seconds. Each
// malformed component counts as zero; more than three components yield zero.
func ParseTimestamp(ts string) int {
	parts := strings.Split(strings.TrimSpace(ts), ":")
	values := make([]int, len(parts))
	for i, p := range parts {
		values[i] = parseComponent(p)
	}

	switch len(values) {
	case 1:
		return values[0]
	case 2:
		return values[0]*SecondsPerMinute + values[1]
	case 3:
		return values[0]*SecondsPerHour + values[1]*SecondsPerMinute + values[2]
	default:
		return 0
	}
}

func parseComponent(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// out of range but numeric: treat as the largest value
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(s), "-") {
			return MaxComponent
		}
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > MaxComponent {
		return MaxComponent
	}
	return n
}
