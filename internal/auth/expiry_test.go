package auth

import (
	"testing"
	"time"
)

func TestParseExpirySeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{"", 3600},
		{"   ", 3600},
		{"1h", 3600},
		{"7d", 604800},
		{"30m", 1800},
		{"15s", 15},
		{"2w", 1209600},
		{"3600", 3600},
		{"45", 45},
		{"1H", 3600},
		{" 90 s ", 90},
		{"garbage", 3600},
		{"1y", 3600},
		{"-5", 3600},
		{"0", 3600},
		{"0s", 3600},
	}

	for _, tt := range tests {
		if got := ParseExpirySeconds(tt.raw); got != tt.want {
			t.Errorf("ParseExpirySeconds(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseExpiry(t *testing.T) {
	t.Parallel()

	if got := ParseExpiry("1h"); got != time.Hour {
		t.Errorf("ParseExpiry(1h) = %v, want 1h", got)
	}
	if got := ParseExpiry(""); got != time.Hour {
		t.Errorf("ParseExpiry empty = %v, want default 1h", got)
	}
}
