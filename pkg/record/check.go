package record

import (
	"strconv"
	"strings"
	"time"
)

// Check runs the input checks that must pass before any backend call:
// required fields, parseable numbers, enum membership, bounds and the
// schema's cross-field rules. Updates are full-record, so required fields
// are enforced in both modes.
func (s *Schema) Check(ui Record) FieldErrors {
	var errs FieldErrors
	for _, f := range s.Fields {
		raw, present := getPath(ui, f.Name)
		if !present || isBlank(raw) {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: "is required"})
			}
			continue
		}
		if fe := f.check(raw); fe != nil {
			errs = append(errs, *fe)
		}
	}
	for _, rule := range s.Rules {
		if fe := rule(ui); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

func (f Field) check(v any) *FieldError {
	switch f.Kind {
	case Int, Float, Ref:
		n, ok := strictNumber(v)
		if !ok {
			if f.Kind == Ref {
				if id, ok := unwrapRef(v); ok {
					n = float64(id)
					break
				}
			}
			return &FieldError{Field: f.Name, Message: "must be a number"}
		}
		if f.Kind != Float && n != float64(int64(n)) {
			return &FieldError{Field: f.Name, Message: "must be a whole number"}
		}
		if f.Kind == Ref && n <= 0 {
			return &FieldError{Field: f.Name, Message: "must reference a positive id"}
		}
		if f.Min != nil && n < *f.Min {
			return &FieldError{Field: f.Name, Message: "must be at least " + formatBound(*f.Min)}
		}
		if f.Max != nil && n > *f.Max {
			return &FieldError{Field: f.Name, Message: "must be at most " + formatBound(*f.Max)}
		}
	case Bool:
		switch t := v.(type) {
		case bool:
		case string:
			if _, err := strconv.ParseBool(strings.TrimSpace(t)); err != nil {
				return &FieldError{Field: f.Name, Message: "must be true or false"}
			}
		default:
			return &FieldError{Field: f.Name, Message: "must be true or false"}
		}
	case Time:
		if _, ok := ParseTime(stringify(v)); !ok {
			return &FieldError{Field: f.Name, Message: "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"}
		}
	case String:
		if len(f.Enum) > 0 && !contains(f.Enum, stringify(v)) {
			return &FieldError{Field: f.Name, Message: "must be one of " + strings.Join(f.Enum, ", ")}
		}
	case List:
		if len(f.Enum) > 0 {
			for _, item := range splitList(v) {
				if !contains(f.Enum, item) {
					return &FieldError{Field: f.Name, Message: "contains unknown value " + strconv.Quote(item)}
				}
			}
		}
	}
	return nil
}

// strictNumber accepts numbers and strings that parse completely.
func strictNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	if _, isMap := v.(map[string]any); isMap {
		return 0, false
	}
	return toFloat64(v)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime accepts the date and timestamp forms the UI sends.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
