package normalizer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvives/go_corpus_tools/pkg/normalizer"
)

func TestNormalizerEndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	dir := filepath.Join(dataDir, "POS1")
	require.NoError(t, os.Mkdir(dir, 0o755))

	raw := "@s:maria Com estàs[% interrogació] [% AP]Molt bé, gràcies."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "POS1_11410001.txt"), []byte(raw), 0o644))

	n, err := normalizer.New(
		normalizer.WithDataDir(dataDir),
		normalizer.WithFolders("POS1"),
	)
	require.NoError(t, err)

	reports, err := n.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].Found)
	assert.Equal(t, 1, reports[0].Processed)
	assert.Equal(t, 0, reports[0].Failed)

	out, err := os.ReadFile(filepath.Join(dir, "POS1_11410001_NOR.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Com estàs?\n\nMolt bé, gràcies.", string(out))

	// A second run must leave the normalized document untouched and not
	// pick it up as raw input.
	reports, err = n.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, reports[0].Found)

	again, err := os.ReadFile(filepath.Join(dir, "POS1_11410001_NOR.txt"))
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestNewValidation(t *testing.T) {
	t.Run("Should reject an empty data dir", func(t *testing.T) {
		_, err := normalizer.New(normalizer.WithDataDir(""))
		assert.Error(t, err)
	})

	t.Run("Should reject an empty suffix", func(t *testing.T) {
		_, err := normalizer.New(normalizer.WithSuffix(""))
		assert.Error(t, err)
	})
}
