package record

import (
	"fmt"
	"strconv"
	"strings"
)

// ToStorage maps a UI record to the storage shape. It never fails: values
// that cannot be coerced become 0 for required numbers and nil otherwise.
// In Replace mode the UI id is carried as IDKey.
func (s *Schema) ToStorage(ui Record, mode Mode) Record {
	out := make(Record, len(s.Fields)+2)
	if mode == Replace {
		if id := ui.ID(); id > 0 {
			out[IDKey] = id
		}
	}
	for _, f := range s.Fields {
		raw, present := getPath(ui, f.Name)
		if !present {
			if mode == Replace {
				continue
			}
			raw = f.Default
		}
		v := f.toStorage(raw)
		out[f.Column] = v
		if f.Mirror != "" {
			out[f.Mirror] = v
		}
	}
	return out
}

// FromStorage maps a storage record back to the UI shape. Relation columns
// are unwrapped to bare ids and missing values take the field default.
func (s *Schema) FromStorage(st Record) Record {
	out := make(Record, len(s.Fields)+1)
	if id, ok := toInt64(st[IDKey]); ok {
		out[IDKey] = id
	}
	for _, f := range s.Fields {
		raw := st[f.Column]
		if f.Mirror != "" && isBlank(raw) {
			if alt, ok := st[f.Mirror]; ok && !isBlank(alt) {
				raw = alt
			}
		}
		v := f.fromStorage(raw)
		if v == nil && f.Default != nil {
			v = f.fromStorage(f.toStorage(f.Default))
		}
		setPath(out, f.Name, v)
	}
	return out
}

func (f Field) toStorage(v any) any {
	if v == nil {
		return nil
	}
	switch f.Kind {
	case String, Time:
		return stringify(v)
	case Int:
		if isBlank(v) {
			return nil
		}
		if n, ok := toInt64(v); ok {
			return n
		}
		if f.Optional {
			return nil
		}
		return int64(0)
	case Float:
		if isBlank(v) {
			return nil
		}
		if n, ok := toFloat64(v); ok {
			return n
		}
		if f.Optional {
			return nil
		}
		return float64(0)
	case Bool:
		return toBool(v)
	case List:
		sep := f.Sep
		if sep == "" {
			sep = ","
		}
		switch t := v.(type) {
		case string:
			return t
		case []string:
			return strings.Join(nonEmpty(t), sep)
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				parts = append(parts, stringify(p))
			}
			return strings.Join(nonEmpty(parts), sep)
		}
		return stringify(v)
	case Ref:
		if id, ok := unwrapRef(v); ok {
			return id
		}
		return nil
	}
	return v
}

func (f Field) fromStorage(v any) any {
	switch f.Kind {
	case String, Time:
		if v == nil {
			return nil
		}
		return stringify(v)
	case Int:
		if isBlank(v) {
			return nil
		}
		if n, ok := toInt64(v); ok {
			return n
		}
		return nil
	case Float:
		if isBlank(v) {
			return nil
		}
		if n, ok := toFloat64(v); ok {
			return n
		}
		return nil
	case Bool:
		if v == nil {
			return nil
		}
		return toBool(v)
	case List:
		return splitList(v)
	case Ref:
		if id, ok := unwrapRef(v); ok {
			return id
		}
		return nil
	}
	return v
}

// unwrapRef accepts a bare id or a relation object carrying IDKey. Zero and
// negative ids mean "no relation".
func unwrapRef(v any) (int64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case map[string]any:
		return unwrapRef(t[IDKey])
	case Record:
		return unwrapRef(t[IDKey])
	}
	if isBlank(v) {
		return 0, false
	}
	id, ok := toInt64(v)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func splitList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case nil:
	case string:
		for _, p := range strings.Split(t, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	case []string:
		out = append(out, nonEmpty(t)...)
	case []any:
		for _, p := range t {
			if s := strings.TrimSpace(stringify(p)); s != "" {
				out = append(out, s)
			}
		}
	default:
		return splitList(stringify(v))
	}
	return out
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	}
	if n, ok := toFloat64(v); ok {
		return n != 0
	}
	return false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
