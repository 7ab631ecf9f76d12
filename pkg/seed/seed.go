// Package seed loads fixture datasets for the mock backend. Records are in
// storage shape and are not validated against any schema.
package seed

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"farmhub/pkg/record"
)

//go:embed data/*.json
var defaults embed.FS

// Dataset maps a storage table name to its records.
type Dataset map[string][]record.Record

// Tables lists the tables present, sorted.
func (d Dataset) Tables() []string {
	out := make([]string, 0, len(d))
	for t := range d {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Default returns the built-in demo dataset. Each call decodes a fresh copy.
func Default() (Dataset, error) {
	sub, err := fs.Sub(defaults, "data")
	if err != nil {
		return nil, err
	}
	return loadFS(sub)
}

// Load reads a dataset from path: an .xlsx workbook with one sheet per table,
// or a directory of <table>.json and <table>.csv files. An empty path
// returns Default.
func Load(path string) (Dataset, error) {
	if path == "" {
		return Default()
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	if st.IsDir() {
		return loadFS(os.DirFS(path))
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	return nil, fmt.Errorf("seed: %s is neither a directory nor an .xlsx workbook", path)
}

func loadFS(fsys fs.FS) (Dataset, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	ds := Dataset{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		table := strings.TrimSuffix(name, filepath.Ext(name))
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", name, err)
		}
		var recs []record.Record
		switch ext {
		case ".json":
			recs, err = decodeJSON(b)
		case ".csv":
			recs, err = decodeCSV(bytes.NewReader(b))
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", name, err)
		}
		ds[table] = append(ds[table], recs...)
	}
	return ds, nil
}

func decodeJSON(b []byte) ([]record.Record, error) {
	var recs []record.Record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func decodeCSV(r io.Reader) ([]record.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	var out []record.Record
	for {
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if rec := fromRow(head, row); len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}

// LoadXLSX reads one table per sheet; the sheet name is the table name and
// the first row holds column names.
func LoadXLSX(path string) (Dataset, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	defer x.Close()

	ds := Dataset{}
	for _, sheet := range x.GetSheetList() {
		rows, err := x.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("seed sheet %s: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}
		table := strings.TrimSpace(sheet)
		for _, row := range rows[1:] {
			if rec := fromRow(rows[0], row); len(rec) > 0 {
				ds[table] = append(ds[table], rec)
			}
		}
	}
	return ds, nil
}

// fromRow pairs a header with one row. Blank cells are left out so the
// mapper applies its defaults. Cells holding {"Id":n} stay relation objects.
func fromRow(head, row []string) record.Record {
	rec := record.Record{}
	for i, h := range head {
		col := normHeader(h)
		if col == "" || i >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[i])
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "{") {
			var obj map[string]any
			if json.Unmarshal([]byte(v), &obj) == nil {
				rec[col] = obj
				continue
			}
		}
		rec[col] = v
	}
	return rec
}

// normHeader strips a BOM and whitespace; "id" is accepted for the Id column.
func normHeader(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF"))
	if strings.EqualFold(s, record.IDKey) {
		return record.IDKey
	}
	return s
}
