package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service is the UI-facing facade for one entity: a Schema bound to a
// Backend. It validates ids before any I/O and passes backend errors
// through unchanged.
type Service struct {
	schema  *Schema
	backend Backend
	log     *zap.Logger
	now     func() time.Time
}

// NewService binds a schema to a backend. A nil logger disables logging.
func NewService(schema *Schema, backend Backend, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		schema:  schema,
		backend: backend,
		log:     log.Named(schema.Entity),
		now:     time.Now,
	}
}

func (s *Service) Schema() *Schema  { return s.schema }
func (s *Service) Backend() Backend { return s.backend }

// GetAll returns every record in UI shape. An empty collection yields an
// empty, non-nil slice.
func (s *Service) GetAll(ctx context.Context) ([]Record, error) {
	rows, err := s.backend.List(ctx)
	if err != nil {
		return nil, s.fail("list", err)
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.schema.FromStorage(row))
	}
	return out, nil
}

// GetByID returns one record or ErrNotFound. All entities and all backends
// share this policy; there is no nil sentinel.
func (s *Service) GetByID(ctx context.Context, id any) (Record, error) {
	n, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	row, err := s.backend.Get(ctx, n)
	if err != nil {
		return nil, s.fail("get", err)
	}
	return s.schema.FromStorage(row), nil
}

// Create checks and maps the UI record, inserts it and returns the stored
// record with its assigned id.
func (s *Service) Create(ctx context.Context, in Record) (Record, error) {
	ui := in.Clone()
	delete(ui, IDKey)
	if s.schema.Derive != nil {
		s.schema.Derive(ui, Create, s.now().UTC())
	}
	if errs := s.schema.Check(ui); len(errs) > 0 {
		return nil, fmt.Errorf("create %s: %w", s.schema.Entity, errs)
	}
	row, err := s.backend.Insert(ctx, s.schema.ToStorage(ui, Create))
	if err != nil {
		return nil, s.fail("create", err)
	}
	return s.schema.FromStorage(row), nil
}

// Update replaces the record with the given id. Updates are full-record;
// how omitted fields are treated depends on Backend.Semantics.
func (s *Service) Update(ctx context.Context, id any, in Record) (Record, error) {
	n, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	ui := in.Clone()
	ui[IDKey] = n
	now := s.now().UTC()
	if s.schema.Derive != nil {
		s.schema.Derive(ui, Replace, now)
	}
	if errs := s.schema.Check(ui); len(errs) > 0 {
		return nil, fmt.Errorf("update %s %d: %w", s.schema.Entity, n, errs)
	}
	if s.schema.Carry != nil {
		stored, err := s.backend.Get(ctx, n)
		if err != nil {
			return nil, s.fail("update", err)
		}
		s.schema.Carry(s.schema.FromStorage(stored), ui, now)
	}
	row, err := s.backend.Replace(ctx, n, s.schema.ToStorage(ui, Replace))
	if err != nil {
		return nil, s.fail("update", err)
	}
	return s.schema.FromStorage(row), nil
}

// Delete removes the record. A second delete of the same id fails with
// ErrNotFound rather than returning false.
func (s *Service) Delete(ctx context.Context, id any) (bool, error) {
	n, err := ParseID(id)
	if err != nil {
		return false, err
	}
	ok, err := s.backend.Remove(ctx, n)
	if err != nil {
		return false, s.fail("delete", err)
	}
	return ok, nil
}

// Search returns records where any searchable field contains q,
// case-insensitively. List fields match on any element.
func (s *Service) Search(ctx context.Context, q string) ([]Record, error) {
	fields := s.schema.SearchFields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s does not support search", ErrInvalidArgument, s.schema.Entity)
	}
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(q))
	out := make([]Record, 0, len(all))
	for _, r := range all {
		if matches(r, fields, term) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Where returns the records whose UI field equals value after coercion to
// the field's kind.
func (s *Service) Where(ctx context.Context, field string, value any) ([]Record, error) {
	f, ok := s.schema.Field(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidArgument, s.schema.Entity, field)
	}
	want := f.fromStorage(f.toStorage(value))
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(all))
	for _, r := range all {
		got, _ := getPath(r, f.Name)
		if equalValue(got, want) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) fail(op string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidArgument):
		s.log.Debug(op+" rejected", zap.Error(err))
	case errors.Is(err, context.Canceled):
	default:
		s.log.Warn(op+" failed", zap.String("table", s.schema.Table), zap.Error(err))
	}
	return err
}

func matches(r Record, fields []Field, term string) bool {
	for _, f := range fields {
		v, _ := getPath(r, f.Name)
		switch t := v.(type) {
		case string:
			if strings.Contains(strings.ToLower(t), term) {
				return true
			}
		case []string:
			for _, item := range t {
				if strings.Contains(strings.ToLower(item), term) {
					return true
				}
			}
		}
	}
	return false
}

func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if la, ok := a.([]string); ok {
		lb, ok := b.([]string)
		if !ok || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if la[i] != lb[i] {
				return false
			}
		}
		return true
	}
	return a == b
}
