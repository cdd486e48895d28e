// Package evaluator is the public entry point of the evaluation batch: it
// submits every normalized document to the external evaluation API and
// writes the graded results to per-folder and combined CSV files.
package evaluator

import (
	"context"
	"time"

	"github.com/baditaflorin/l"

	"github.com/mvives/go_corpus_tools/internal/adapters/evalapi"
	"github.com/mvives/go_corpus_tools/internal/adapters/logger"
	"github.com/mvives/go_corpus_tools/internal/core/domain"
	"github.com/mvives/go_corpus_tools/internal/core/evaluate"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

// Evaluator grades every normalized document of a corpus.
type Evaluator struct {
	runner *evaluate.Runner
}

// Option defines a functional option for configuring an Evaluator.
type Option func(*config)

type config struct {
	evaluate.Config
	Logger        ports.Logger
	Client        ports.EvalClient
	Timeout       time.Duration
	StreamTimeout time.Duration
}

// WithDataDir sets the corpus root directory.
func WithDataDir(dir string) Option {
	return func(cfg *config) {
		cfg.DataDir = dir
	}
}

// WithFolders sets the corpus subdirectories to evaluate.
func WithFolders(folders ...string) Option {
	return func(cfg *config) {
		cfg.Folders = folders
	}
}

// WithBatchSize sets the number of texts submitted per job.
func WithBatchSize(n int) Option {
	return func(cfg *config) {
		cfg.BatchSize = n
	}
}

// WithPause sets the pause between consecutive batch submissions.
func WithPause(d time.Duration) Option {
	return func(cfg *config) {
		cfg.Pause = d
	}
}

// WithTimeout sets the request timeout for health checks and submissions.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.Timeout = d
	}
}

// WithStreamTimeout sets the read timeout for result streams.
func WithStreamTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.StreamTimeout = d
	}
}

// WithClient replaces the HTTP client with a custom evaluation client.
// Tests inject fakes here.
func WithClient(c ports.EvalClient) Option {
	return func(cfg *config) {
		cfg.Client = c
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// New creates an Evaluator talking to the API at host.
func New(host string, opts ...Option) (*Evaluator, error) {
	cfg := &config{
		Config:        evaluate.DefaultConfig(),
		Timeout:       evalapi.DefaultTimeout,
		StreamTimeout: evalapi.DefaultStreamTimeout,
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
	if cfg.Client == nil {
		client, err := evalapi.New(host, cfg.Logger,
			evalapi.WithTimeout(cfg.Timeout),
			evalapi.WithStreamTimeout(cfg.StreamTimeout),
		)
		if err != nil {
			return nil, err
		}
		cfg.Client = client
	}

	runner, err := evaluate.NewRunner(cfg.Config, cfg.Client, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return &Evaluator{runner: runner}, nil
}

// Run evaluates every configured folder and combines the results.
func (e *Evaluator) Run(ctx context.Context) ([]domain.EvalReport, error) {
	return e.runner.Run(ctx)
}
