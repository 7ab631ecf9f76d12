package record

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var plot = &Schema{
	Entity: "plot",
	Path:   "plots",
	Table:  "plot_c",
	Fields: []Field{
		{Name: "name", Column: "name_c", Mirror: "Name", Required: true, Searchable: true},
		{Name: "area", Column: "area_c", Kind: Float, Required: true},
		{Name: "count", Column: "count_c", Kind: Int},
		{Name: "yield", Column: "yield_c", Kind: Float, Optional: true},
		{Name: "done", Column: "done_c", Kind: Bool, Default: false},
		{Name: "tags", Column: "tags_c", Kind: List, Sep: ", ", Searchable: true},
		{Name: "status", Column: "status_c", Enum: []string{"planted", "growing"}, Default: "planted"},
		{Name: "farmId", Column: "farm_id_c", Kind: Ref},
		{Name: "stats.total", Column: "total_c", Kind: Int, Default: int64(1)},
	},
}

func TestToStorageCreate(t *testing.T) {
	got := plot.ToStorage(Record{
		"Id":     int64(9),
		"name":   "Corn",
		"area":   "12.5",
		"count":  "3x",
		"yield":  "abc",
		"tags":   []string{"a", " ", "b"},
		"farmId": map[string]any{"Id": float64(2), "Name": "Green Valley"},
	}, Create)

	want := Record{
		"Name":      "Corn",
		"name_c":    "Corn",
		"area_c":    12.5,
		"count_c":   int64(3),
		"yield_c":   nil,
		"done_c":    false,
		"tags_c":    "a, b",
		"status_c":  "planted",
		"farm_id_c": int64(2),
		"total_c":   int64(1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToStorage(Create) mismatch (-want +got):\n%s", diff)
	}
}

func TestToStorageReplaceOmitsAbsentFields(t *testing.T) {
	got := plot.ToStorage(Record{"Id": int64(7), "name": "Corn", "yield": nil}, Replace)

	want := Record{"Id": int64(7), "Name": "Corn", "name_c": "Corn", "yield_c": nil}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToStorage(Replace) mismatch (-want +got):\n%s", diff)
	}
}

func TestToStorageInvalidRequiredNumberIsZero(t *testing.T) {
	got := plot.ToStorage(Record{"name": "x", "area": "lots"}, Create)
	assert.Equal(t, float64(0), got["area_c"])
}

func TestFromStorage(t *testing.T) {
	got := plot.FromStorage(Record{
		"Id":        float64(7),
		"Name":      "Corn",
		"name_c":    "",
		"area_c":    "12.5",
		"farm_id_c": map[string]any{"Id": float64(2), "Name": "Green Valley"},
		"tags_c":    "a, b,,c",
		"done_c":    nil,
	})

	want := Record{
		"Id":     int64(7),
		"name":   "Corn",
		"area":   12.5,
		"count":  nil,
		"yield":  nil,
		"done":   false,
		"tags":   []string{"a", "b", "c"},
		"status": "planted",
		"farmId": int64(2),
		"stats":  map[string]any{"total": int64(1)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromStorage mismatch (-want +got):\n%s", diff)
	}
}

func TestFromStorageRefShapes(t *testing.T) {
	for _, raw := range []any{int64(4), float64(4), "4", map[string]any{"Id": 4}, Record{"Id": "4"}} {
		got := plot.FromStorage(Record{"farm_id_c": raw})
		assert.Equal(t, int64(4), got["farmId"], "raw %#v", raw)
	}
	for _, raw := range []any{nil, 0, "", map[string]any{"Name": "no id"}} {
		got := plot.FromStorage(Record{"farm_id_c": raw})
		assert.Nil(t, got["farmId"], "raw %#v", raw)
	}
}

func TestRoundTrip(t *testing.T) {
	ui := Record{
		"name":   "Corn",
		"area":   12.5,
		"count":  int64(3),
		"yield":  2.5,
		"done":   true,
		"tags":   []string{"x", "y"},
		"status": "growing",
		"farmId": int64(4),
		"stats":  map[string]any{"total": int64(2)},
	}
	got := plot.FromStorage(plot.ToStorage(ui, Create))
	if diff := cmp.Diff(ui, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestColumns(t *testing.T) {
	cols := plot.Columns()
	assert.Equal(t, "Name", cols[0])
	assert.Contains(t, cols, "total_c")
	assert.Len(t, cols, len(plot.Fields)+1)
}

func TestSchemaValidate(t *testing.T) {
	assert.NoError(t, plot.Validate())

	bad := *plot
	bad.Fields = append([]Field{}, plot.Fields...)
	bad.Fields = append(bad.Fields, Field{Name: "name", Column: "other_c"})
	assert.ErrorContains(t, bad.Validate(), "duplicate field name")

	bad.Fields = []Field{{Name: "s", Column: "s_c", Enum: []string{"a"}, Default: "b"}}
	assert.ErrorContains(t, bad.Validate(), "not in its enum")

	bad.Fields = []Field{{Name: "Id", Column: "id_c"}}
	assert.ErrorContains(t, bad.Validate(), "reserved")
}
