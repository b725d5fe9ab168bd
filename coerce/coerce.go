// Package coerce normalizes loosely-typed JSON values the way clients
// actually send them: numbers arrive as JSON numbers or as numeric strings.
package coerce

import (
	"strconv"
	"strings"
)

// Int64 converts a decoded JSON value to an int64. Returns false for nil,
// non-numeric strings and anything else that does not carry a number.
func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// String converts a decoded JSON value to its string representation.
// Returns false only for nil.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	default:
		return "", false
	}
}
