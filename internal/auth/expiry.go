package auth

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultExpirySeconds is used when the expiry expression is empty or
// unrecognized. A malformed expression must degrade to this, never to a
// zero-length or unbounded token lifetime.
const DefaultExpirySeconds = 3600

var expiryPattern = regexp.MustCompile(`(?i)^(\d+)\s*([smhdw])?$`)

var unitSeconds = map[string]int{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
	"w": 604800,
}

// ParseExpirySeconds converts an expiry expression ("1h", "7d", "30m",
// "15s", "2w") or a bare second count ("3600") into seconds. Empty or
// unparseable input yields DefaultExpirySeconds.
func ParseExpirySeconds(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultExpirySeconds
	}

	m := expiryPattern.FindStringSubmatch(raw)
	if m == nil {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return DefaultExpirySeconds
		}
		return n
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultExpirySeconds
	}
	unit := strings.ToLower(m[2])
	if unit == "" {
		unit = "s"
	}
	secs := value * unitSeconds[unit]
	if secs <= 0 {
		return DefaultExpirySeconds
	}
	return secs
}

// ParseExpiry returns the expiry expression as a duration.
func ParseExpiry(raw string) time.Duration {
	return time.Duration(ParseExpirySeconds(raw)) * time.Second
}
