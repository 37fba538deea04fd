package settings

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Strings returns the list stored at key, or an empty slice.
func Strings(s Store, key string) []string {
	v, ok := s.Get(key)
	if !ok {
		return []string{}
	}
	out, err := cast.ToStringSliceE(v)
	if err != nil || out == nil {
		return []string{}
	}
	return out
}

// Bool returns the boolean stored at key, or def.
func Bool(s Store, key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// Int returns the integer stored at key, or def. Fractional values are
// truncated.
func Int(s Store, key string, def int) int {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	if f, isFloat := v.(float64); isFloat {
		return int(f)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// String returns the string stored at key, or def. Numbers are formatted.
func String(s Store, key string, def string) string {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	str, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return str
}

// Map returns the mapping stored at key, or an empty map.
func Map(s Store, key string) map[string]any {
	v, ok := s.Get(key)
	if !ok {
		return map[string]any{}
	}
	m, err := cast.ToStringMapE(v)
	if err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

// ParseValue coerces free-form input the way a settings editor does: input
// that parses fully as a number is stored as a number (int when integral),
// anything else is kept as the string.
func ParseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return int(n)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return raw
}
