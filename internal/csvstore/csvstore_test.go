package csvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	t.Run("Should round-trip a table including quoted fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.csv")
		in := &Table{
			Header: []string{"ID", "Consigna"},
			Rows: [][]string{
				{"11410001", "Descriu, amb detall, la teva escola"},
				{"11410002", "Línia amb \"cometes\""},
			},
		}
		require.NoError(t, Save(path, in))

		out, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, in.Header, out.Header)
		assert.Equal(t, in.Rows, out.Rows)
	})

	t.Run("Should replace the destination atomically without leftovers", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "table.csv")
		require.NoError(t, Save(path, &Table{Header: []string{"A"}, Rows: [][]string{{"1"}}}))
		require.NoError(t, Save(path, &Table{Header: []string{"A"}, Rows: [][]string{{"2"}}}))

		out, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "2", out.Get(0, 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("Should reject an empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrNoHeader)
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
		assert.Error(t, err)
	})
}

func TestColumnIndex(t *testing.T) {
	table := &Table{Header: []string{"FileID", "File ID", "Consigna"}}

	t.Run("Should prefer candidates in argument order", func(t *testing.T) {
		assert.Equal(t, 1, table.ColumnIndex("File ID", "FileID"))
		assert.Equal(t, 0, table.ColumnIndex("FileID", "File ID"))
	})

	t.Run("Should return -1 when nothing matches", func(t *testing.T) {
		assert.Equal(t, -1, table.ColumnIndex("Nom"))
	})
}

func TestDropAndAppendColumn(t *testing.T) {
	t.Run("Should drop a middle column everywhere", func(t *testing.T) {
		table := &Table{
			Header: []string{"A", "B", "C"},
			Rows:   [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
		}
		table.DropColumn("B")
		assert.Equal(t, []string{"A", "C"}, table.Header)
		assert.Equal(t, [][]string{{"1", "3"}, {"4", "6"}}, table.Rows)
	})

	t.Run("Should ignore dropping an unknown column", func(t *testing.T) {
		table := &Table{Header: []string{"A"}, Rows: [][]string{{"1"}}}
		table.DropColumn("B")
		assert.Equal(t, []string{"A"}, table.Header)
	})

	t.Run("Should append a column with one value per row", func(t *testing.T) {
		table := &Table{Header: []string{"A"}, Rows: [][]string{{"1"}, {"2"}}}
		require.NoError(t, table.AppendColumn("B", []string{"x", "y"}))
		assert.Equal(t, []string{"A", "B"}, table.Header)
		assert.Equal(t, "y", table.Get(1, 1))
	})

	t.Run("Should reject a value count mismatch", func(t *testing.T) {
		table := &Table{Header: []string{"A"}, Rows: [][]string{{"1"}}}
		assert.Error(t, table.AppendColumn("B", []string{"x", "y"}))
	})
}
