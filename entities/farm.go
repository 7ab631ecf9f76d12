package entities

import (
	"time"

	"farmhub/pkg/record"
)

var FarmStatuses = []string{"active", "inactive", "planning"}

var Farm = &record.Schema{
	Entity: "farm",
	Path:   "farms",
	Table:  "farm_c",
	Fields: []record.Field{
		{Name: "name", Column: "name_c", Mirror: "Name", Required: true},
		{Name: "location", Column: "location_c", Required: true},
		{Name: "size", Column: "size_c", Kind: record.Float, Min: record.Bound(0)},
		{Name: "status", Column: "status_c", Enum: FarmStatuses, Default: "active"},
		{Name: "description", Column: "description_c", Default: ""},
		{Name: "valuation", Column: "valuation_c", Kind: record.Float, Optional: true, Min: record.Bound(0)},
		{Name: "farmTypes", Column: "farm_types_c", Kind: record.List},
		{Name: "rating", Column: "rating_c", Kind: record.Int, Default: int64(0), Min: record.Bound(0), Max: record.Bound(5)},
		{Name: "createdAt", Column: "created_at_c", Kind: record.Time},
		{Name: "updatedAt", Column: "updated_at_c", Kind: record.Time},
	},
	Derive: func(ui record.Record, mode record.Mode, now time.Time) {
		ts := now.Format(time.RFC3339)
		if mode == record.Create {
			ui["createdAt"] = ts
		}
		ui["updatedAt"] = ts
	},
}
