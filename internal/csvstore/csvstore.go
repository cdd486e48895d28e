// Package csvstore reads and writes the comma-separated tables used by the
// corpus tools (consignas and results files). Tables are small enough to be
// held in memory, and writes go through a temp-file-and-rename so a failed
// run never leaves a half-written table behind.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoHeader is returned when a table file is empty.
var ErrNoHeader = errors.New("csv table has no header row")

// Table is an in-memory CSV table with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load reads the table at path into memory.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoHeader)
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// Save writes the table to path atomically: it writes a temp file in the
// same directory and renames it over the destination.
func Save(path string, t *Table) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(t.Header)
	if writeErr == nil {
		writeErr = w.WriteAll(t.Rows)
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write table %s: %w", path, writeErr)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace table %s: %w", path, err)
	}
	return nil
}

// ColumnIndex returns the index of the first header cell matching any of the
// candidate names, scanning candidates in order. Returns -1 when none match.
func (t *Table) ColumnIndex(names ...string) int {
	for _, name := range names {
		for i, h := range t.Header {
			if h == name {
				return i
			}
		}
	}
	return -1
}

// DropColumn removes the named column from the header and every row. It is a
// no-op when the column does not exist.
func (t *Table) DropColumn(name string) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return
	}
	t.Header = append(t.Header[:idx], t.Header[idx+1:]...)
	for i, row := range t.Rows {
		if idx < len(row) {
			t.Rows[i] = append(row[:idx], row[idx+1:]...)
		}
	}
}

// AppendColumn adds a column at the last position with one value per row.
func (t *Table) AppendColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// Get returns the cell at (row, col), or "" when the row is shorter than the
// header says it should be.
func (t *Table) Get(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
