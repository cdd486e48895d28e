package ports

import (
	"context"

	"github.com/mvives/go_corpus_tools/internal/core/domain"
)

// ProgressFunc reports partial completion of a streamed evaluation job.
type ProgressFunc func(completed, total int, percentage float64)

// EvalClient defines the interface to the external text evaluation API.
type EvalClient interface {
	// Health probes the API readiness. Failures are advisory.
	Health(ctx context.Context) (domain.Health, error)

	// Submit sends a batch of texts for grading and returns the job handle.
	Submit(ctx context.Context, items []domain.EvalItem) (domain.Job, error)

	// Stream consumes the result stream of a submitted job until the job
	// completes or fails, returning every graded result received.
	Stream(ctx context.Context, jobID string, onProgress ProgressFunc) ([]domain.EvalResult, error)
}
