package utils

import "time"

// ISOMillis is the ISO-8601 layout used for product timestamps: UTC with
// millisecond precision and a literal Z suffix.
const ISOMillis = "2006-01-02T15:04:05.000Z"

// NowUTC returns the current time truncated to milliseconds in UTC
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FormatISO formats t with the ISOMillis layout
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}

// ParseISO parses a timestamp written by FormatISO. RFC3339 strings with
// other precisions are accepted as well.
func ParseISO(s string) (time.Time, error) {
	if t, err := time.Parse(ISOMillis, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
