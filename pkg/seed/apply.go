package seed

import (
	"context"
	"fmt"

	"farmhub/pkg/record"
)

// Apply inserts rows into b when b is empty and reports how many were
// written. Backends implementing record.Seeder keep each positive seed id so
// relation columns still point at the right rows; elsewhere the backend
// assigns ids.
func Apply(ctx context.Context, b record.Backend, rows []record.Record) (int, error) {
	existing, err := b.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	seeder, keepIDs := b.(record.Seeder)
	for i, r := range rows {
		row := r.Clone()
		id := row.ID()
		delete(row, record.IDKey)
		if keepIDs && id > 0 {
			_, err = seeder.InsertWithID(ctx, id, row)
		} else {
			_, err = b.Insert(ctx, row)
		}
		if err != nil {
			return i, fmt.Errorf("seed %s row %d: %w", b.Table(), i+1, err)
		}
	}
	return len(rows), nil
}
