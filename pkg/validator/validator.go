// Package validator is the public entry point of the reference validator:
// it checks the file references of a consignas table against the filesystem
// and writes the boolean result column back.
package validator

import (
	"context"
	"os"

	"github.com/baditaflorin/l"

	"github.com/mvives/go_corpus_tools/internal/adapters/confirm"
	"github.com/mvives/go_corpus_tools/internal/adapters/logger"
	"github.com/mvives/go_corpus_tools/internal/core/domain"
	"github.com/mvives/go_corpus_tools/internal/core/validate"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

// Validator checks the file references of one table directory.
type Validator struct {
	core *validate.Validator
}

// Option defines a functional option for configuring a Validator.
type Option func(*config)

type config struct {
	validate.Config
	Logger    ports.Logger
	Confirmer ports.Confirmer
}

// WithCSVName sets the table filename looked up in the target directory.
func WithCSVName(name string) Option {
	return func(cfg *config) {
		cfg.CSVName = name
	}
}

// WithIDColumns sets the accepted identifier column spellings, in
// preference order.
func WithIDColumns(names ...string) Option {
	return func(cfg *config) {
		cfg.IDColumns = names
	}
}

// WithOutputColumn sets the boolean column written back.
func WithOutputColumn(name string) Option {
	return func(cfg *config) {
		cfg.OutputColumn = name
	}
}

// WithForce overwrites an existing output column without asking.
func WithForce(force bool) Option {
	return func(cfg *config) {
		cfg.Force = force
	}
}

// WithConfirmer sets the confirmation capability used before overwriting an
// existing column. Tests inject a static answer here.
func WithConfirmer(c ports.Confirmer) Option {
	return func(cfg *config) {
		cfg.Confirmer = c
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// New creates a Validator. Without options it validates "consignas.csv"
// with the "File ID"/"FileID" identifier columns, writes "File Exists", and
// asks on the terminal before overwriting.
func New(opts ...Option) (*Validator, error) {
	cfg := &config{Config: validate.DefaultConfig()}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		lg, err := logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		cfg.Logger = lg
	}
	if cfg.Confirmer == nil {
		cfg.Confirmer = confirm.NewTerminal(os.Stdin, os.Stdout)
	}

	core, err := validate.New(cfg.Config, cfg.Logger, cfg.Confirmer)
	if err != nil {
		return nil, err
	}
	return &Validator{core: core}, nil
}

// Run validates the table inside dir and writes the result column back.
func (v *Validator) Run(ctx context.Context, dir string) (domain.ValidationReport, error) {
	return v.core.Run(ctx, dir)
}
