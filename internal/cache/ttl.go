package cache

import (
	"fmt"
	"strconv"
	"time"
)

// TTL bounds.
const (
	DefaultTTLSeconds = 300
	MinTTLSeconds     = 1
	MaxTTLSeconds     = 86400

	minutesPerHour = 60
)

// ErrInvalidTTL is returned for TTLs outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// ValidateTTL checks seconds against the allowed range and converts it.
func ValidateTTL(seconds int) (time.Duration, error) {
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

// ParseTTL accepts integer seconds ("300") or a duration ("5m", "1h30m").
func ParseTTL(s string) (int, error) {
	if seconds, err := strconv.Atoi(s); err == nil {
		if _, vErr := ValidateTTL(seconds); vErr != nil {
			return 0, vErr
		}
		return seconds, nil
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid TTL format: %w", err)
	}
	seconds := int(duration.Seconds())
	if _, vErr := ValidateTTL(seconds); vErr != nil {
		return 0, vErr
	}
	return seconds, nil
}

// FormatDuration renders d compactly: "45s", "5m", "1h30m".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
}
