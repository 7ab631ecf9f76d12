package repositoryImp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"farmhub/pkg/record"
)

const (
	CreatedOnKey  = "CreatedOn"
	ModifiedOnKey = "ModifiedOn"
)

// DefaultLatency is the simulated round trip of the mock backend.
const DefaultLatency = 300 * time.Millisecond

type memoryRepo struct {
	table   string
	latency time.Duration
	now     func() time.Time

	mu   sync.Mutex
	rows []record.Record
}

// NewMemory returns the mock backend: an ordered in-memory list seeded with
// copies of seed. New ids are max(existing)+1, or 1 when empty, so an id
// freed below the maximum is never handed out again. Replace shallow-merges
// the given columns over the stored record.
func NewMemory(table string, seed []record.Record, latency time.Duration) record.Backend {
	m := &memoryRepo{table: table, latency: latency, now: time.Now}
	var next int64
	for _, r := range seed {
		if id := r.ID(); id > next {
			next = id
		}
	}
	for _, r := range seed {
		row := r.Clone()
		if id := r.ID(); id > 0 {
			row[record.IDKey] = id
		} else {
			next++
			row[record.IDKey] = next
		}
		m.rows = append(m.rows, row)
	}
	return m
}

func (m *memoryRepo) Table() string                      { return m.table }
func (m *memoryRepo) Semantics() record.ReplaceSemantics { return record.ReplaceMerge }

func (m *memoryRepo) List(ctx context.Context) ([]record.Record, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]record.Record, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (m *memoryRepo) Get(ctx context.Context, id int64) (record.Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return nil, record.NewNotFound(m.table, id)
	}
	return m.rows[i].Clone(), nil
}

func (m *memoryRepo) Insert(ctx context.Context, rec record.Record) (record.Record, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for _, r := range m.rows {
		if id := r.ID(); id > max {
			max = id
		}
	}
	return m.add(max+1, rec), nil
}

// InsertWithID stores rec under id, which must be unused.
func (m *memoryRepo) InsertWithID(ctx context.Context, id int64, rec record.Record) (record.Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID() == id {
			return nil, fmt.Errorf("%w: %s id %d already exists", record.ErrInvalidArgument, m.table, id)
		}
	}
	return m.add(id, rec), nil
}

// add appends a copy of rec under id; m.mu must be held.
func (m *memoryRepo) add(id int64, rec record.Record) record.Record {
	row := rec.Clone()
	if row == nil {
		row = record.Record{}
	}
	ts := m.now().UTC().Format(time.RFC3339Nano)
	row[record.IDKey] = id
	row[CreatedOnKey] = ts
	row[ModifiedOnKey] = ts
	m.rows = append(m.rows, row)
	return row.Clone()
}

func (m *memoryRepo) Replace(ctx context.Context, id int64, rec record.Record) (record.Record, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return nil, record.NewNotFound(m.table, id)
	}
	row := m.rows[i].Clone()
	for k, v := range rec {
		switch k {
		case record.IDKey, CreatedOnKey:
		default:
			row[k] = v
		}
	}
	row[ModifiedOnKey] = m.now().UTC().Format(time.RFC3339Nano)
	m.rows[i] = row
	return row.Clone(), nil
}

func (m *memoryRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return false, record.NewNotFound(m.table, id)
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return true, nil
}

func (m *memoryRepo) Ping(ctx context.Context) error { return ctx.Err() }

func (m *memoryRepo) index(id int64) int {
	for i, r := range m.rows {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

// wait simulates network latency and gives up when ctx is done.
func (m *memoryRepo) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func checkID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id %d is not a positive integer", record.ErrInvalidArgument, id)
	}
	return nil
}
