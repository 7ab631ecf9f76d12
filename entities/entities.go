// Package entities declares the farm-management record schemas. Each schema
// parameterises one record.Service.
package entities

import (
	"fmt"

	"farmhub/pkg/record"
)

// All returns every schema in dependency order: referenced entities first.
func All() []*record.Schema {
	return []*record.Schema{Farmer, Farm, Crop, Task, Subtask, Transaction, Weather}
}

// ByPath finds a schema by its collection name ("crops") or entity name ("crop").
func ByPath(name string) (*record.Schema, error) {
	for _, s := range All() {
		if s.Path == name || s.Entity == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown entity %q", record.ErrInvalidArgument, name)
}

func positive(field string) record.Rule {
	return func(ui record.Record) *record.FieldError {
		v, ok := ui.Get(field)
		if !ok || v == nil || ui.String(field) == "" {
			return nil
		}
		if ui.Float(field) <= 0 {
			return &record.FieldError{Field: field, Message: "must be greater than 0"}
		}
		return nil
	}
}

// after requires field to fall strictly after base when both are set.
func after(field, base string) record.Rule {
	return func(ui record.Record) *record.FieldError {
		t, ok := record.ParseTime(ui.String(field))
		if !ok {
			return nil
		}
		b, ok := record.ParseTime(ui.String(base))
		if !ok {
			return nil
		}
		if !t.After(b) {
			return &record.FieldError{Field: field, Message: "must be after " + base}
		}
		return nil
	}
}
