// Package normalizer is the public entry point of the corpus normalization
// batch: it walks the corpus folders and writes a normalized sibling for
// every raw Catalan text document.
package normalizer

import (
	"context"

	"github.com/baditaflorin/l"

	adapter "github.com/mvives/go_corpus_tools/internal/adapters/normalizer"
	"github.com/mvives/go_corpus_tools/internal/adapters/logger"
	"github.com/mvives/go_corpus_tools/internal/core/domain"
	"github.com/mvives/go_corpus_tools/internal/core/normalize"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

// Normalizer normalizes every raw document under the configured data dir.
type Normalizer struct {
	runner *normalize.Runner
}

// Option defines a functional option for configuring a Normalizer.
type Option func(*config)

type config struct {
	DataDir string
	Folders []string
	Suffix  string
	Logger  ports.Logger
	Text    ports.Normalizer
}

// WithDataDir sets the corpus root directory.
func WithDataDir(dir string) Option {
	return func(cfg *config) {
		cfg.DataDir = dir
	}
}

// WithFolders sets the corpus subdirectories to process.
func WithFolders(folders ...string) Option {
	return func(cfg *config) {
		cfg.Folders = folders
	}
}

// WithSuffix sets the suffix appended to normalized documents.
func WithSuffix(suffix string) Option {
	return func(cfg *config) {
		cfg.Suffix = suffix
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithTextNormalizer replaces the Catalan rewrite pipeline with a custom
// text normalizer.
func WithTextNormalizer(n ports.Normalizer) Option {
	return func(cfg *config) {
		cfg.Text = n
	}
}

// New creates a Normalizer. Without options it processes ./data/{POS1,POS2,
// PRE} with the default Catalan rule table and a "_NOR" suffix.
func New(opts ...Option) (*Normalizer, error) {
	cfg := &config{
		DataDir: "data",
		Folders: []string{"POS1", "POS2", "PRE"},
		Suffix:  "_NOR",
	}
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
	if cfg.Text == nil {
		cfg.Text = adapter.NewCatalanNormalizer()
	}

	runner, err := normalize.NewRunner(normalize.Config{
		DataDir: cfg.DataDir,
		Folders: cfg.Folders,
		Suffix:  cfg.Suffix,
	}, cfg.Text, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return &Normalizer{runner: runner}, nil
}

// Run processes every configured folder and returns one report per folder.
func (n *Normalizer) Run(ctx context.Context) ([]domain.FolderReport, error) {
	return n.runner.Run(ctx)
}
