package timezone

import (
	"strings"
	"time"
)

const (
	minuteLayout = "2006-01-02T15:04"
	clockLayout  = "1504"
)

var offsetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700", // Without colon
	"2006-01-02T15:04-07:00",
	"2006-01-02T15:04:05Z",
}

// Providers often send wall-clock times with no offset; these are read as
// local airport time and kept in a UTC-labelled zone so the clock is not
// shifted.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTimeWithOffset parses a provider timestamp, keeping the offset it was
// written with.
func ParseTimeWithOffset(timeStr string) (time.Time, error) {
	timeStr = strings.TrimSpace(timeStr)

	for _, format := range offsetLayouts {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}
	for _, format := range localLayouts {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

// ParseOrZero is ParseTimeWithOffset with failures degraded to the zero time.
func ParseOrZero(timeStr string) time.Time {
	t, err := ParseTimeWithOffset(timeStr)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MinuteKey renders t at minute precision in the offset it carries.
func MinuteKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(minuteLayout)
}

// ClockKey renders the local wall-clock time as HHMM.
func ClockKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(clockLayout)
}

// Distance is the absolute time between a and b.
func Distance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d
}
