package record

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the coercion rule applied to a field when it crosses the mapper.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	// Time values are ISO-8601 strings and pass through unchanged.
	Time
	// List is []string in the UI shape and a delimiter-joined string in storage.
	List
	// Ref is a foreign key: a bare int64 in the UI shape, either a bare id or
	// an {"Id": n} object when read from storage.
	Ref
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Time:
		return "time"
	case List:
		return "list"
	case Ref:
		return "ref"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Mode selects how ToStorage treats fields missing from the UI record.
type Mode int

const (
	// Create fills declared defaults and maps other absent fields to nil.
	Create Mode = iota
	// Replace omits absent fields so a merging backend keeps their stored
	// values. Explicit nulls are still sent.
	Replace
)

// Field maps one UI key to one storage column.
type Field struct {
	// Name is the UI key. Dotted names address nested maps ("stats.totalFarms").
	Name   string
	Column string
	Kind   Kind
	// Mirror is a provider system column written with the same value and read
	// as a fallback when Column is empty.
	Mirror   string
	Default  any
	Optional bool
	Required bool
	Enum     []string
	Min      *float64
	Max      *float64
	// Sep joins List values on write; reads always split on ",".
	Sep        string
	Searchable bool
}

// Rule is a cross-field input check over a UI record.
type Rule func(ui Record) *FieldError

// Schema is the per-entity configuration that parameterises Service.
type Schema struct {
	Entity string
	// Path is the collection name used in URLs and CLI arguments.
	Path   string
	Table  string
	Fields []Field
	Rules  []Rule
	// Derive fills computed fields on a copy of the UI record before it is
	// mapped for writing.
	Derive func(ui Record, mode Mode, now time.Time)
	// Carry, when set, runs on update with the stored record in UI shape
	// and may copy values the caller left out. Updates of schemas without
	// it never read the stored record.
	Carry func(stored, ui Record, now time.Time)
}

// Bound is a convenience for Field.Min and Field.Max.
func Bound(v float64) *float64 { return &v }

// Field returns the field declared under the given UI name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns is the storage field selector: every declared column plus mirrored
// system columns, in declaration order, without duplicates.
func (s *Schema) Columns() []string {
	seen := make(map[string]bool, len(s.Fields)+1)
	var out []string
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, f := range s.Fields {
		add(f.Mirror)
	}
	for _, f := range s.Fields {
		add(f.Column)
	}
	return out
}

// SearchFields lists the UI fields Service.Search matches against.
func (s *Schema) SearchFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Searchable {
			out = append(out, f)
		}
	}
	return out
}

// Validate reports configuration mistakes in the schema itself.
func (s *Schema) Validate() error {
	if s.Entity == "" || s.Table == "" || s.Path == "" {
		return fmt.Errorf("schema: entity, path and table are required")
	}
	names := map[string]bool{}
	cols := map[string]bool{}
	for _, f := range s.Fields {
		if f.Name == "" || f.Column == "" {
			return fmt.Errorf("schema %s: field with empty name or column", s.Entity)
		}
		if f.Name == IDKey || f.Column == IDKey {
			return fmt.Errorf("schema %s: %s is reserved", s.Entity, IDKey)
		}
		if names[f.Name] {
			return fmt.Errorf("schema %s: duplicate field %s", s.Entity, f.Name)
		}
		if cols[f.Column] {
			return fmt.Errorf("schema %s: duplicate column %s", s.Entity, f.Column)
		}
		names[f.Name] = true
		cols[f.Column] = true
		if f.Default != nil && len(f.Enum) > 0 {
			if d, ok := f.Default.(string); !ok || !contains(f.Enum, d) {
				return fmt.Errorf("schema %s: default of %s is not in its enum", s.Entity, f.Name)
			}
		}
		if f.Required && f.Optional {
			return fmt.Errorf("schema %s: field %s is both required and optional", s.Entity, f.Name)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// getPath reads a possibly dotted key from a record.
func getPath(r Record, name string) (any, bool) {
	if v, ok := r[name]; ok {
		return v, true
	}
	head, rest, nested := strings.Cut(name, ".")
	if !nested {
		return nil, false
	}
	switch m := r[head].(type) {
	case map[string]any:
		return getPath(Record(m), rest)
	case Record:
		return getPath(m, rest)
	}
	return nil, false
}

// setPath writes a possibly dotted key, creating intermediate maps.
func setPath(r Record, name string, v any) {
	head, rest, nested := strings.Cut(name, ".")
	if !nested {
		r[name] = v
		return
	}
	var m map[string]any
	switch t := r[head].(type) {
	case map[string]any:
		m = t
	case Record:
		m = t
	default:
		m = map[string]any{}
		r[head] = m
	}
	setPath(Record(m), rest, v)
}
