// Package validate implements the reference validator: it checks that every
// file a consignas table points at actually exists on disk and records the
// answer in a boolean column of the same table.
package validate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvives/go_corpus_tools/internal/core/domain"
	"github.com/mvives/go_corpus_tools/internal/csvstore"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

// ErrMissingIDColumn is returned when the table has none of the accepted
// identifier columns. Nothing is written in that case.
var ErrMissingIDColumn = errors.New("identifier column not found")

// ErrAborted is returned when the operator declines to overwrite an existing
// output column. Nothing is written in that case.
var ErrAborted = errors.New("aborted by operator")

// Config holds the table layout the validator expects.
type Config struct {
	// CSVName is the table filename looked up inside the target directory.
	CSVName string
	// IDColumns are the accepted header spellings for the file identifier
	// column, in preference order.
	IDColumns []string
	// OutputColumn is the boolean column written back.
	OutputColumn string
	// Force overwrites an existing output column without asking.
	Force bool
}

// DefaultConfig returns the consignas table layout.
func DefaultConfig() Config {
	return Config{
		CSVName:      "consignas.csv",
		IDColumns:    []string{"File ID", "FileID"},
		OutputColumn: "File Exists",
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.CSVName == "" {
		return errors.New("csv name must not be empty")
	}
	if len(c.IDColumns) == 0 {
		return errors.New("at least one identifier column name is required")
	}
	if c.OutputColumn == "" {
		return errors.New("output column name must not be empty")
	}
	return nil
}

// Validator checks file references of one table against the filesystem.
type Validator struct {
	cfg       Config
	logger    ports.Logger
	confirmer ports.Confirmer
}

// New creates a reference validator.
func New(cfg Config, logger ports.Logger, confirmer ports.Confirmer) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{cfg: cfg, logger: logger, confirmer: confirmer}, nil
}

// Run loads the table inside dir, tests existence of every referenced file
// relative to dir, and writes the output column back in place. The column is
// always the last one, so its position is deterministic. A missing file is
// recorded as "false", never treated as an error; the existence values are a
// snapshot taken at validation time, recomputed on every run.
func (v *Validator) Run(ctx context.Context, dir string) (domain.ValidationReport, error) {
	select {
	case <-ctx.Done():
		return domain.ValidationReport{}, ctx.Err()
	default:
	}

	csvPath := filepath.Join(dir, v.cfg.CSVName)
	table, err := csvstore.Load(csvPath)
	if err != nil {
		return domain.ValidationReport{}, err
	}

	idIdx := table.ColumnIndex(v.cfg.IDColumns...)
	if idIdx < 0 {
		return domain.ValidationReport{}, fmt.Errorf("%s: %w (tried %s)",
			csvPath, ErrMissingIDColumn, strings.Join(v.cfg.IDColumns, ", "))
	}

	if table.ColumnIndex(v.cfg.OutputColumn) >= 0 {
		if !v.cfg.Force {
			v.logger.Warn("Output column already exists", "path", csvPath, "column", v.cfg.OutputColumn)
			question := fmt.Sprintf("Column %q already exists in %s. Overwrite it?", v.cfg.OutputColumn, csvPath)
			if !v.confirmer.Confirm(question) {
				return domain.ValidationReport{}, ErrAborted
			}
		}
		table.DropColumn(v.cfg.OutputColumn)
		// Dropping a column left of the identifier shifts its index.
		idIdx = table.ColumnIndex(v.cfg.IDColumns...)
	}

	report := domain.ValidationReport{Path: csvPath, Total: len(table.Rows)}
	values := make([]string, len(table.Rows))
	for i := range table.Rows {
		id := strings.TrimSpace(table.Get(i, idIdx))
		exists := false
		if id != "" {
			if _, statErr := os.Stat(filepath.Join(dir, id)); statErr == nil {
				exists = true
			}
		}
		if exists {
			values[i] = "true"
			report.Existing++
		} else {
			values[i] = "false"
			report.Missing++
		}
	}

	if err := table.AppendColumn(v.cfg.OutputColumn, values); err != nil {
		return domain.ValidationReport{}, err
	}
	if err := csvstore.Save(csvPath, table); err != nil {
		return domain.ValidationReport{}, err
	}

	v.logger.Info("Reference validation complete",
		"path", csvPath,
		"total", report.Total,
		"existing", report.Existing,
		"missing", report.Missing,
	)
	return report, nil
}
