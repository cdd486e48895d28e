package validate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvives/go_corpus_tools/internal/adapters/confirm"
	"github.com/mvives/go_corpus_tools/internal/adapters/logger"
	"github.com/mvives/go_corpus_tools/internal/csvstore"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

func newValidator(t *testing.T, force bool, confirmer ports.Confirmer) *Validator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Force = force
	v, err := New(cfg, logger.NewNop(), confirmer)
	require.NoError(t, err)
	return v
}

func writeTable(t *testing.T, dir string, header []string, rows ...[]string) {
	t.Helper()
	require.NoError(t, csvstore.Save(filepath.Join(dir, "consignas.csv"), &csvstore.Table{
		Header: header,
		Rows:   rows,
	}))
}

func TestValidatorRun(t *testing.T) {
	t.Run("Should record existence per row with the column last", func(t *testing.T) {
		dir := t.TempDir()
		writeTable(t, dir, []string{"File ID", "Consigna"},
			[]string{"A001.txt", "Descriu la teva escola"},
			[]string{"A002.txt", "Explica el cap de setmana"},
		)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "A001.txt"), []byte("text"), 0o644))

		report, err := newValidator(t, false, confirm.Static(true)).Run(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 1, report.Existing)
		assert.Equal(t, 1, report.Missing)

		table, err := csvstore.Load(filepath.Join(dir, "consignas.csv"))
		require.NoError(t, err)
		require.Equal(t, []string{"File ID", "Consigna", "File Exists"}, table.Header)
		assert.Equal(t, "true", table.Get(0, 2))
		assert.Equal(t, "false", table.Get(1, 2))
	})

	t.Run("Should accept the alternate identifier spelling", func(t *testing.T) {
		dir := t.TempDir()
		writeTable(t, dir, []string{"FileID"}, []string{"B001.txt"})

		report, err := newValidator(t, false, confirm.Static(true)).Run(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Missing)
	})

	t.Run("Should treat an empty identifier as missing", func(t *testing.T) {
		dir := t.TempDir()
		writeTable(t, dir, []string{"File ID", "Consigna"}, []string{"", "una"}, []string{"  ", "dues"})

		report, err := newValidator(t, false, confirm.Static(true)).Run(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Missing)
		assert.Equal(t, 0, report.Existing)
	})

	t.Run("Should fail without writing when the identifier column is missing", func(t *testing.T) {
		dir := t.TempDir()
		writeTable(t, dir, []string{"Nom"}, []string{"A001.txt"})

		_, err := newValidator(t, false, confirm.Static(true)).Run(context.Background(), dir)
		require.ErrorIs(t, err, ErrMissingIDColumn)

		table, err := csvstore.Load(filepath.Join(dir, "consignas.csv"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Nom"}, table.Header)
	})

	t.Run("Should abort without writing when overwrite is declined", func(t *testing.T) {
		dir := t.TempDir()
		writeTable(t, dir, []string{"File ID", "File Exists"}, []string{"A001.txt", "true"})

		_, err := newValidator(t, false, confirm.Static(false)).Run(context.Background(), dir)
		require.ErrorIs(t, err, ErrAborted)

		table, err := csvstore.Load(filepath.Join(dir, "consignas.csv"))
		require.NoError(t, err)
		assert.Equal(t, "true", table.Get(0, 1))
	})

	t.Run("Should overwrite the stale column when forced", func(t *testing.T) {
		// The stale column sits left of the identifier, so dropping it
		// shifts the identifier index.
		dir := t.TempDir()
		writeTable(t, dir, []string{"File Exists", "File ID"},
			[]string{"false", "C001.txt"},
			[]string{"true", "C002.txt"},
		)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "C001.txt"), []byte("text"), 0o644))

		report, err := newValidator(t, true, confirm.Static(false)).Run(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Existing)
		assert.Equal(t, 1, report.Missing)

		table, err := csvstore.Load(filepath.Join(dir, "consignas.csv"))
		require.NoError(t, err)
		require.Equal(t, []string{"File ID", "File Exists"}, table.Header)
		assert.Equal(t, "true", table.Get(0, 1))
		assert.Equal(t, "false", table.Get(1, 1))
	})

	t.Run("Should fail when the table file does not exist", func(t *testing.T) {
		_, err := newValidator(t, false, confirm.Static(true)).Run(context.Background(), t.TempDir())
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("Should reject an empty output column", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.OutputColumn = ""
		_, err := New(cfg, logger.NewNop(), confirm.Static(true))
		assert.Error(t, err)
	})
	t.Run("Should reject missing identifier columns", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IDColumns = nil
		_, err := New(cfg, logger.NewNop(), confirm.Static(true))
		assert.Error(t, err)
	})
}
