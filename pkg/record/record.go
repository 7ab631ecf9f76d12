// Package record implements the generic entity service: a field mapper driven
// by a Schema, the Backend contract shared by all storage variants, the error
// taxonomy and the batch result normalizer.
package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IDKey is the stable identifier key in both UI and storage shapes.
const IDKey = "Id"

// Record is a single entity row. UI records use camelCase keys, storage
// records use provider column names; both carry IDKey once assigned.
type Record map[string]any

// ID returns the record identifier, or 0 when it is missing or malformed.
func (r Record) ID() int64 {
	id, ok := toInt64(r[IDKey])
	if !ok {
		return 0
	}
	return id
}

// Clone returns a shallow copy. Nested maps and slices are copied one level
// deep so callers can mutate the copy without touching backend state.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		switch t := v.(type) {
		case map[string]any:
			m := make(map[string]any, len(t))
			for kk, vv := range t {
				m[kk] = vv
			}
			out[k] = m
		case Record:
			out[k] = t.Clone()
		case []string:
			out[k] = append([]string(nil), t...)
		default:
			out[k] = v
		}
	}
	return out
}

// Get reads a possibly dotted key ("stats.totalFarms").
func (r Record) Get(path string) (any, bool) { return getPath(r, path) }

// Set writes a possibly dotted key, creating intermediate maps.
func (r Record) Set(path string, v any) { setPath(r, path, v) }

// Strings reads a list value in any of the accepted shapes.
func (r Record) Strings(path string) []string {
	v, _ := getPath(r, path)
	return splitList(v)
}

// Bool reads a flag the way the mapper coerces it; absent is false.
func (r Record) Bool(path string) bool {
	v, ok := getPath(r, path)
	return ok && v != nil && toBool(v)
}

// String reads a value as text; absent is "".
func (r Record) String(path string) string {
	v, ok := getPath(r, path)
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

// Float reads a numeric value; absent or unparseable is 0.
func (r Record) Float(path string) float64 {
	v, _ := getPath(r, path)
	f, _ := toFloat64(v)
	return f
}

// ParseID validates a caller-supplied id. Strings are parsed the way a form
// value would be; numbers must be whole and positive.
func ParseID(v any) (int64, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: id %q is not a positive integer", ErrInvalidArgument, s)
		}
		return n, nil
	}
	if f, ok := toFloat64(v); ok && f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: id %v is not a positive integer", ErrInvalidArgument, v)
	}
	n, ok := toInt64(v)
	if !ok || n <= 0 {
		return 0, fmt.Errorf("%w: id %v is not a positive integer", ErrInvalidArgument, v)
	}
	return n, nil
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	case float32:
		return floatToInt(float64(t))
	case float64:
		return floatToInt(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if f, err := t.Float64(); err == nil {
			return floatToInt(f)
		}
	case string:
		return parseIntPrefix(t)
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		return parseFloatPrefix(t)
	}
	return 0, false
}

// parseIntPrefix mirrors form-input parsing: leading whitespace is skipped and
// the longest leading integer is taken ("12ha" -> 12, "3.9" -> 3).
func parseIntPrefix(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	return n, err == nil
}

// parseFloatPrefix takes the longest leading decimal number ("12.5 ha" -> 12.5).
// An exponent counts only when digits follow it ("1e5x" -> 1e5, "2em" -> 2).
func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '-' || s[exp] == '+') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp]) {
			for exp < len(s) && isDigit(s[exp]) {
				exp++
			}
			end = exp
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
