package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeWithOffset(t *testing.T) {
	tests := []struct {
		in      string
		wantKey string
		clock   string
	}{
		{"2025-03-01T10:05:59+10:00", "2025-03-01T10:05", "1005"},
		{"2025-03-01T10:05:00+1000", "2025-03-01T10:05", "1005"},
		{"2025-03-01T10:05:00Z", "2025-03-01T10:05", "1005"},
		{"2025-03-01T22:40:00", "2025-03-01T22:40", "2240"},
		{"2025-03-01 06:15", "2025-03-01T06:15", "0615"},
		{" 2025-03-01T06:15 ", "2025-03-01T06:15", "0615"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeWithOffset(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, MinuteKey(got))
			assert.Equal(t, tt.clock, ClockKey(got))
		})
	}
}

func TestParseOrZero(t *testing.T) {
	assert.True(t, ParseOrZero("tomorrow").IsZero())
	assert.True(t, ParseOrZero("").IsZero())
	assert.Equal(t, "", MinuteKey(time.Time{}))
	assert.Equal(t, "", ClockKey(time.Time{}))
}

func TestDistance(t *testing.T) {
	a := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	b := a.Add(-90 * time.Minute)
	assert.Equal(t, 90*time.Minute, Distance(a, b))
	assert.Equal(t, 90*time.Minute, Distance(b, a))
}
