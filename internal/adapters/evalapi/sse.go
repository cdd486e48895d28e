package evalapi

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mvives/go_corpus_tools/internal/core/domain"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

// The stream carries three event types: "batch_complete" with partial
// results and progress, "complete" closing the job, and "error" aborting it.

type progressData struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type batchData struct {
	Results  []domain.EvalResult `json:"results"`
	Progress *progressData       `json:"progress"`
}

type errorData struct {
	Message string `json:"message"`
}

// parseEvents reads a Server-Sent-Events stream until a terminal event or
// EOF. Malformed event payloads are logged and skipped; the stream as a
// whole keeps going. An EOF before the "complete" event is tolerated and
// returns whatever arrived.
func parseEvents(r io.Reader, onProgress ports.ProgressFunc, log ports.Logger) ([]domain.EvalResult, error) {
	var results []domain.EvalResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	event := ""
	var data strings.Builder

	dispatch := func() (done bool, err error) {
		defer func() {
			event = ""
			data.Reset()
		}()

		switch event {
		case "batch_complete":
			var batch batchData
			if err := json.Unmarshal([]byte(data.String()), &batch); err != nil {
				log.Warn("Skipping malformed batch event", "error", err)
				return false, nil
			}
			results = append(results, batch.Results...)
			if batch.Progress != nil && onProgress != nil {
				onProgress(batch.Progress.Completed, batch.Progress.Total, batch.Progress.Percentage)
			}
			return false, nil
		case "complete":
			return true, nil
		case "error":
			var e errorData
			if err := json.Unmarshal([]byte(data.String()), &e); err != nil || e.Message == "" {
				return true, fmt.Errorf("remote error")
			}
			return true, fmt.Errorf("remote error: %s", e.Message)
		default:
			return false, nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			// Blank line terminates one event.
			done, err := dispatch()
			if err != nil {
				return results, err
			}
			if done {
				return results, nil
			}
			continue
		}
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(line[len("data:"):]))
		}
	}
	if err := scanner.Err(); err != nil {
		return results, fmt.Errorf("read stream: %w", err)
	}

	// Stream ended without a blank line after the last event.
	if event != "" {
		done, err := dispatch()
		if err != nil {
			return results, err
		}
		if done {
			return results, nil
		}
	}

	log.Warn("Result stream ended without a complete event", "results", len(results))
	return results, nil
}
