package datastore

import (
	"strconv"
	"strings"
	"time"
)

// NormalizeString trims v; blank input yields "".
func NormalizeString(v string) string {
	return strings.TrimSpace(v)
}

// FirstNonEmpty returns the first value that is not blank after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := NormalizeString(v); s != "" {
			return s
		}
	}
	return ""
}

// ParseBoolean understands true/false, 1/0, yes/no and y/n in any case.
// Anything else is treated as absent.
func ParseBoolean(v string) *bool {
	var b bool
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "y":
		b = true
	case "false", "0", "no", "n":
		b = false
	default:
		return nil
	}
	return &b
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Shorter digit strings are years, not unix milliseconds.
const minUnixMilliDigits = 10

// ParseTimestamp accepts ISO-8601 forms and unix milliseconds. The result is
// UTC truncated to microseconds so both backends agree on ordering.
func ParseTimestamp(v string) *time.Time {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = CanonicalTime(t)
			return &t
		}
	}
	if len(s) < minUnixMilliDigits {
		return nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t := CanonicalTime(time.UnixMilli(ms))
		return &t
	}
	return nil
}

// CanonicalTime matches the precision of a timestamptz column.
func CanonicalTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// NormalizeUserID parses the leading integer of v, as owner ids arrive both
// as numbers and as strings.
func NormalizeUserID(v string) *int64 {
	s := strings.TrimSpace(v)
	end := 0
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func FormatUserID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
