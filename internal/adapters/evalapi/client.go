// Package evalapi implements the HTTP client for the external text
// evaluation API: batch submission over plain JSON and result consumption
// over Server-Sent-Events.
package evalapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/mvives/go_corpus_tools/internal/core/domain"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

const (
	// DefaultTimeout bounds the health and submit round trips.
	DefaultTimeout = 30 * time.Second
	// DefaultStreamTimeout bounds a whole result stream; grading a batch
	// on the remote GPU can take minutes.
	DefaultStreamTimeout = 5 * time.Minute
)

// Client talks to the evaluation API rooted at a base URL.
type Client struct {
	host          string
	timeout       time.Duration
	streamTimeout time.Duration
	logger        ports.Logger

	http   *fasthttp.Client
	stream *fasthttp.Client
}

// Option defines a functional option for configuring the client.
type Option func(*Client)

// WithTimeout sets the request timeout for health checks and submissions.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithStreamTimeout sets the read timeout for the result stream.
func WithStreamTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.streamTimeout = d
	}
}

// New creates an evaluation API client for the given base URL, for example
// "https://my-instance.proxy.runpod.net" or "http://localhost:8000".
func New(host string, logger ports.Logger, opts ...Option) (*Client, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, errors.New("api host must not be empty")
	}

	c := &Client{
		host:          host,
		timeout:       DefaultTimeout,
		streamTimeout: DefaultStreamTimeout,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = &fasthttp.Client{
		ReadTimeout:  c.timeout,
		WriteTimeout: c.timeout,
	}
	// The stream client must hand the body over as it arrives; buffering
	// the whole response would stall until the job finished.
	c.stream = &fasthttp.Client{
		StreamResponseBody: true,
		ReadTimeout:        c.streamTimeout,
		WriteTimeout:       c.timeout,
	}
	return c, nil
}

var _ ports.EvalClient = (*Client)(nil)

// Health probes GET /health.
func (c *Client) Health(ctx context.Context) (domain.Health, error) {
	var health domain.Health
	if err := ctx.Err(); err != nil {
		return health, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.host + "/health")
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return health, fmt.Errorf("health check: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return health, fmt.Errorf("health check: unexpected status %d", resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), &health); err != nil {
		return health, fmt.Errorf("health check: decode response: %w", err)
	}
	return health, nil
}

type submitRequest struct {
	Items []domain.EvalItem `json:"items"`
}

// Submit posts a batch of texts to POST /evaluate and returns the job handle
// carrying the identifier used to stream the results.
func (c *Client) Submit(ctx context.Context, items []domain.EvalItem) (domain.Job, error) {
	var job domain.Job
	if err := ctx.Err(); err != nil {
		return job, err
	}
	if len(items) == 0 {
		return job, errors.New("submit: empty batch")
	}

	body, err := json.Marshal(submitRequest{Items: items})
	if err != nil {
		return job, fmt.Errorf("submit: encode batch: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.host + "/evaluate")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return job, fmt.Errorf("submit batch: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return job, fmt.Errorf("submit batch: unexpected status %d: %s", resp.StatusCode(), resp.Body())
	}
	if err := json.Unmarshal(resp.Body(), &job); err != nil {
		return job, fmt.Errorf("submit batch: decode response: %w", err)
	}
	if job.ID == "" {
		return job, errors.New("submit batch: response carries no job_id")
	}

	c.logger.Info("Evaluation job submitted",
		"job_id", job.ID,
		"items", len(items),
		"estimated_seconds", job.EstimatedTime,
	)
	return job, nil
}

// Stream consumes GET /stream/{job_id} as Server-Sent-Events until the job
// completes or fails, returning every graded result received on the way.
func (c *Client) Stream(ctx context.Context, jobID string, onProgress ports.ProgressFunc) ([]domain.EvalResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if jobID == "" {
		return nil, errors.New("stream: empty job id")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)

	req.SetRequestURI(c.host + "/stream/" + jobID)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/event-stream")

	if err := c.stream.Do(req, resp); err != nil {
		fasthttp.ReleaseResponse(resp)
		return nil, fmt.Errorf("open result stream: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		resp.CloseBodyStream() //nolint:errcheck
		fasthttp.ReleaseResponse(resp)
		return nil, fmt.Errorf("open result stream: unexpected status %d", resp.StatusCode())
	}

	results, err := parseEvents(resp.BodyStream(), onProgress, c.logger)
	resp.CloseBodyStream() //nolint:errcheck
	fasthttp.ReleaseResponse(resp)
	if err != nil {
		return results, fmt.Errorf("result stream for job %s: %w", jobID, err)
	}
	return results, nil
}
