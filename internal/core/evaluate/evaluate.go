// Package evaluate implements the evaluation batch runner: it pairs every
// normalized document with its writing prompt (consigna), submits batches to
// the external evaluation API, and writes the graded results to CSV.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mvives/go_corpus_tools/internal/core/domain"
	"github.com/mvives/go_corpus_tools/internal/core/grade"
	"github.com/mvives/go_corpus_tools/internal/csvstore"
	"github.com/mvives/go_corpus_tools/internal/ports"
)

// resultsHeader is the column layout of every results CSV.
var resultsHeader = []string{"folder", "id", "filename", "curso", "consigna", "nota", "feedback"}

// Config holds the corpus layout and batching parameters.
type Config struct {
	// DataDir is the corpus root.
	DataDir string
	// Folders are the corpus subdirectories to evaluate.
	Folders []string
	// Suffix marks normalized documents; only those are submitted.
	Suffix string
	// CSVName is the prompt table filename inside each folder.
	CSVName string
	// IDColumn is the identifier column of the prompt table.
	IDColumn string
	// PromptColumns are the accepted spellings of the prompt column,
	// in preference order.
	PromptColumns []string
	// BatchSize is the number of texts submitted per job.
	BatchSize int
	// Pause separates consecutive batch submissions.
	Pause time.Duration
}

// DefaultConfig returns the corpus layout used by the evaluation runs.
func DefaultConfig() Config {
	return Config{
		DataDir:       "data",
		Folders:       []string{"POS1", "POS2", "PRE"},
		Suffix:        "_NOR",
		CSVName:       "consignas.csv",
		IDColumn:      "ID",
		PromptColumns: []string{"Consigna", "TEXTpost2"},
		BatchSize:     10,
		Pause:         time.Second,
	}
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
	if c.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}
	return nil
}

// Runner evaluates every normalized document of a corpus.
type Runner struct {
	cfg    Config
	client ports.EvalClient
	logger ports.Logger
	idRe   *regexp.Regexp
	now    func() time.Time
}

// NewRunner creates an evaluation runner.
func NewRunner(cfg Config, client ports.EvalClient, logger ports.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("evaluation client is required")
	}
	// POS1_11410001_NOR.txt -> 11410001
	idRe := regexp.MustCompile(`_(\d+)` + regexp.QuoteMeta(cfg.Suffix) + `\.txt$`)
	return &Runner{cfg: cfg, client: client, logger: logger, idRe: idRe, now: time.Now}, nil
}

// Run probes the API, evaluates every configured folder, and combines the
// per-folder results files into one. Folder failures are logged and the run
// continues; only cancellation aborts it.
func (r *Runner) Run(ctx context.Context) ([]domain.EvalReport, error) {
	if health, err := r.client.Health(ctx); err != nil {
		r.logger.Warn("Evaluation API health check failed, continuing anyway", "error", err)
	} else {
		r.logger.Info("Evaluation API is ready",
			"status", health.Status,
			"model_loaded", health.ModelLoaded,
			"gpu_available", health.GPUAvailable,
		)
	}

	stamp := r.now().Format("20060102_150405")
	reports := make([]domain.EvalReport, 0, len(r.cfg.Folders))
	for _, folder := range r.cfg.Folders {
		report, err := r.runFolder(ctx, folder, stamp)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return reports, err
			}
			r.logger.Error("Folder evaluation failed", "folder", folder, "error", err)
		}
		reports = append(reports, report)
	}

	if err := r.combine(ctx, stamp); err != nil {
		r.logger.Error("Could not combine results", "error", err)
	}
	return reports, nil
}

// fileMeta keeps what is needed to join a graded result back to its file.
type fileMeta struct {
	id       string
	filename string
	curso    string
	consigna string
}

func (r *Runner) runFolder(ctx context.Context, folder, stamp string) (domain.EvalReport, error) {
	report := domain.EvalReport{Folder: folder}
	dir := filepath.Join(r.cfg.DataDir, folder)

	prompts := r.loadPrompts(dir)

	files, err := r.normalizedFiles(dir)
	if err != nil {
		return report, err
	}
	report.Files = len(files)
	if len(files) == 0 {
		r.logger.Warn("No normalized documents found", "folder", dir)
		return report, nil
	}
	r.logger.Info("Evaluating corpus folder", "folder", folder, "files", len(files), "prompts", len(prompts))

	items, metas := r.collectItems(dir, folder, files, prompts)
	report.Submitted = len(items)

	var scored []domain.ScoredText
	for start := 0; start < len(items); start += r.cfg.BatchSize {
		end := start + r.cfg.BatchSize
		if end > len(items) {
			end = len(items)
		}
		results, err := r.evaluateBatch(ctx, items[start:end])
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			r.logger.Error("Batch evaluation failed", "folder", folder, "error", err)
		}
		scored = append(scored, matchResults(folder, results, metas)...)

		if end < len(items) && r.cfg.Pause > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(r.cfg.Pause):
			}
		}
	}
	report.Scored = len(scored)

	if len(scored) == 0 {
		r.logger.Warn("No results received", "folder", folder)
		return report, nil
	}

	out := filepath.Join(dir, fmt.Sprintf("results_%s_%s.csv", folder, stamp))
	if err := writeResults(out, scored); err != nil {
		return report, err
	}
	report.ResultsCSV = out

	r.logger.Info("Folder evaluation complete",
		"folder", folder,
		"submitted", report.Submitted,
		"scored", report.Scored,
		"results", out,
	)
	return report, nil
}

// loadPrompts reads the consignas table of one folder into an id-to-prompt
// map. A missing or unusable table is not fatal: every text of that folder
// is then submitted with an "N/A" prompt.
func (r *Runner) loadPrompts(dir string) map[string]string {
	path := filepath.Join(dir, r.cfg.CSVName)
	table, err := csvstore.Load(path)
	if err != nil {
		r.logger.Warn("No usable prompt table", "path", path, "error", err)
		return nil
	}

	idIdx := table.ColumnIndex(r.cfg.IDColumn)
	promptIdx := table.ColumnIndex(r.cfg.PromptColumns...)
	if idIdx < 0 || promptIdx < 0 {
		r.logger.Warn("Prompt table misses expected columns",
			"path", path,
			"id_column", r.cfg.IDColumn,
			"prompt_columns", strings.Join(r.cfg.PromptColumns, ", "),
		)
		return nil
	}

	prompts := make(map[string]string, len(table.Rows))
	for i := range table.Rows {
		id := strings.TrimSpace(table.Get(i, idIdx))
		if id != "" {
			prompts[id] = table.Get(i, promptIdx)
		}
	}
	return prompts
}

// normalizedFiles lists the normalized documents of a folder, sorted by name.
func (r *Runner) normalizedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list folder: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), r.cfg.Suffix+".txt") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// collectItems builds the submission items and the metadata needed to join
// results back. Files with no extractable identifier or no content are
// skipped with a warning.
func (r *Runner) collectItems(dir, folder string, files []string, prompts map[string]string) ([]domain.EvalItem, []fileMeta) {
	items := make([]domain.EvalItem, 0, len(files))
	metas := make([]fileMeta, 0, len(files))
	for _, name := range files {
		id := r.extractID(name)
		if id == "" {
			r.logger.Warn("Could not extract document id", "folder", folder, "file", name)
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			r.logger.Warn("Could not read normalized document", "folder", folder, "file", name, "error", err)
			continue
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			r.logger.Warn("Skipping empty document", "folder", folder, "file", name)
			continue
		}

		consigna, ok := prompts[id]
		if !ok || consigna == "" {
			r.logger.Warn("No prompt found for document", "folder", folder, "id", id)
			consigna = "N/A"
		}
		curso := grade.FromID(id)

		items = append(items, domain.EvalItem{
			IDAlumno:  id,
			Curso:     curso,
			Consigna:  consigna,
			Respuesta: text,
		})
		metas = append(metas, fileMeta{id: id, filename: name, curso: curso, consigna: consigna})
	}
	return items, metas
}

// extractID pulls the numeric document id out of a normalized filename.
func (r *Runner) extractID(name string) string {
	m := r.idRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

// evaluateBatch submits one batch and streams its results back.
func (r *Runner) evaluateBatch(ctx context.Context, items []domain.EvalItem) ([]domain.EvalResult, error) {
	job, err := r.client.Submit(ctx, items)
	if err != nil {
		return nil, err
	}
	results, err := r.client.Stream(ctx, job.ID, func(completed, total int, percentage float64) {
		r.logger.Info("Evaluation progress", "completed", completed, "total", total, "percentage", percentage)
	})
	if err != nil {
		// Keep whatever arrived before the stream broke.
		r.logger.Error("Result stream failed", "job_id", job.ID, "error", err)
	}
	return results, nil
}

// matchResults joins graded results back to the submitted files. Results for
// unknown identifiers are dropped with a warning implied by the count gap.
func matchResults(folder string, results []domain.EvalResult, metas []fileMeta) []domain.ScoredText {
	byID := make(map[string]fileMeta, len(metas))
	for _, m := range metas {
		// When two files share an id, the first one in name order wins.
		if _, ok := byID[m.id]; !ok {
			byID[m.id] = m
		}
	}
	scored := make([]domain.ScoredText, 0, len(results))
	for _, res := range results {
		meta, ok := byID[res.IDAlumno]
		if !ok {
			continue
		}
		scored = append(scored, domain.ScoredText{
			Folder:   folder,
			ID:       res.IDAlumno,
			Filename: meta.filename,
			Curso:    meta.curso,
			Consigna: meta.consigna,
			Nota:     res.Nota,
			Feedback: res.Feedback,
		})
	}
	return scored
}

// writeResults saves graded results as a CSV table.
func writeResults(path string, scored []domain.ScoredText) error {
	table := &csvstore.Table{Header: resultsHeader, Rows: make([][]string, 0, len(scored))}
	for _, s := range scored {
		table.Rows = append(table.Rows, []string{
			s.Folder,
			s.ID,
			s.Filename,
			s.Curso,
			s.Consigna,
			strconv.FormatFloat(s.Nota, 'f', -1, 64),
			s.Feedback,
		})
	}
	return csvstore.Save(path, table)
}

// combine merges the most recent results file of every folder into a single
// corpus-wide results CSV at the data dir root.
func (r *Runner) combine(ctx context.Context, stamp string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	combined := &csvstore.Table{Header: resultsHeader}
	for _, folder := range r.cfg.Folders {
		dir := filepath.Join(r.cfg.DataDir, folder)
		pattern := filepath.Join(dir, fmt.Sprintf("results_%s_*.csv", folder))
		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		latest := matches[len(matches)-1]

		table, err := csvstore.Load(latest)
		if err != nil {
			r.logger.Warn("Skipping unreadable results file", "path", latest, "error", err)
			continue
		}
		combined.Rows = append(combined.Rows, table.Rows...)
		r.logger.Info("Merged results file", "path", latest, "rows", len(table.Rows))
	}

	if len(combined.Rows) == 0 {
		r.logger.Warn("No results files found to combine")
		return nil
	}

	out := filepath.Join(r.cfg.DataDir, fmt.Sprintf("results_all_folders_%s.csv", stamp))
	if err := csvstore.Save(out, combined); err != nil {
		return err
	}
	r.logger.Info("Combined results saved", "path", out, "rows", len(combined.Rows))
	return nil
}
