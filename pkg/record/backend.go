package record

import "context"

// ReplaceSemantics documents how a backend treats fields missing from the
// record passed to Replace. The variance is deliberate and is not reconciled.
type ReplaceSemantics int

const (
	// ReplaceFull expects the complete record; columns not sent are cleared
	// or left to the provider.
	ReplaceFull ReplaceSemantics = iota
	// ReplaceMerge shallow-merges the given columns over the stored record.
	ReplaceMerge
)

func (r ReplaceSemantics) String() string {
	if r == ReplaceMerge {
		return "merge"
	}
	return "full"
}

// Backend persists storage-shaped records for one table. Every variant
// reports failures with the error taxonomy in errors.go.
type Backend interface {
	Table() string
	Semantics() ReplaceSemantics

	// List returns every record. Only the in-memory backend guarantees
	// insertion order.
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	// Insert assigns a new id and returns the stored record.
	Insert(ctx context.Context, rec Record) (Record, error)
	Replace(ctx context.Context, id int64, rec Record) (Record, error)
	// Remove reports true on success and ErrNotFound when the id is absent.
	Remove(ctx context.Context, id int64) (bool, error)
}

// Seeder is implemented by local backends that can store a record under a
// caller-chosen id. An id already in use is ErrInvalidArgument.
type Seeder interface {
	InsertWithID(ctx context.Context, id int64, rec Record) (Record, error)
}

// Pinger is implemented by backends that can check their connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
