package utils

import (
	"errors"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var errEmptyDate = errors.New("empty date")

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
// dateOnly reports whether the input carried no time of day.
func ParseDate(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, errEmptyDate
	}
	if t, err = time.Parse(DateLayout, s); err == nil {
		return t.UTC(), true, nil
	}
	if t, err = time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, err
}

// EndOfDay returns the last representable instant of t's UTC calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)
}

func NowUTC() time.Time { return time.Now().UTC() }
