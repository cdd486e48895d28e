// Package normalize implements the corpus normalization batch runner: it
// walks the configured corpus folders and writes a normalized sibling for
// every raw text document it finds.
package normalize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvives/go_corpus_tools/internal/core/domain"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

// Config holds the folder layout of a corpus.
type Config struct {
	// DataDir is the corpus root.
	DataDir string
	// Folders are the subdirectories holding raw documents.
	Folders []string
	// Suffix is appended to the basename of every normalized document.
	// Files already carrying the suffix are never re-read as input.
	Suffix string
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data dir must not be empty")
	}
	if len(c.Folders) == 0 {
		return errors.New("at least one corpus folder is required")
	}
	if c.Suffix == "" {
		return errors.New("normalized suffix must not be empty")
	}
	return nil
}

// Runner normalizes every raw document of a corpus, one file at a time.
// Files are independent: a failure on one is logged and counted, and the run
// continues with its siblings.
type Runner struct {
	cfg        Config
	normalizer ports.Normalizer
	logger     ports.Logger
}

// NewRunner creates a normalization runner.
func NewRunner(cfg Config, normalizer ports.Normalizer, logger ports.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if normalizer == nil {
		return nil, errors.New("normalizer is required")
	}
	return &Runner{cfg: cfg, normalizer: normalizer, logger: logger}, nil
}

// Run processes every configured folder in order and returns one report per
// folder. A missing folder is skipped with a warning. The error is non-nil
// only when the run is cancelled; per-file failures are reported in the
// counters.
func (r *Runner) Run(ctx context.Context) ([]domain.FolderReport, error) {
	reports := make([]domain.FolderReport, 0, len(r.cfg.Folders))
	for _, folder := range r.cfg.Folders {
		report, err := r.runFolder(ctx, folder)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *Runner) runFolder(ctx context.Context, folder string) (domain.FolderReport, error) {
	report := domain.FolderReport{Folder: folder}
	dir := filepath.Join(r.cfg.DataDir, folder)

	entries, err := os.ReadDir(dir)
	if err != nil {
		r.logger.Warn("Skipping corpus folder", "folder", dir, "error", err)
		return report, nil
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		name := entry.Name()
		if entry.IsDir() || !r.isRawDocument(name) {
			continue
		}
		report.Found++

		path := filepath.Join(dir, name)
		if err := r.processFile(path); err != nil {
			r.logger.Error("Failed to normalize document", "path", path, "error", err)
			report.Failed++
			continue
		}
		report.Processed++
	}

	r.logger.Info("Normalized corpus folder",
		"folder", folder,
		"found", report.Found,
		"processed", report.Processed,
		"failed", report.Failed,
	)
	return report, nil
}

// isRawDocument reports whether name is a raw text document: a .txt file
// whose stem does not already end in the normalized suffix, so re-running
// over a processed folder never normalizes its own output.
func (r *Runner) isRawDocument(name string) bool {
	ext := filepath.Ext(name)
	if !strings.EqualFold(ext, ".txt") {
		return false
	}
	stem := strings.TrimSuffix(name, ext)
	return !strings.HasSuffix(stem, r.cfg.Suffix)
}

// processFile reads one raw document, normalizes it, and writes the result
// next to the source under the suffixed name. The source is never touched.
func (r *Runner) processFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	normalized := r.normalizer.Normalize(string(raw))

	out := r.outputPath(path)
	if err := writeAtomic(out, []byte(normalized)); err != nil {
		return fmt.Errorf("write normalized document: %w", err)
	}

	r.logger.Debug("Normalized document", "source", path, "output", out)
	return nil
}

// outputPath maps data/POS1/X.txt to data/POS1/X_NOR.txt (for suffix _NOR).
func (r *Runner) outputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + r.cfg.Suffix + ext
}

// writeAtomic writes data to a temp file in the destination directory and
// renames it over the destination, so an interrupted run leaves either the
// previous output or the new one, never a torn file.
func writeAtomic(dest string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return writeErr
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
