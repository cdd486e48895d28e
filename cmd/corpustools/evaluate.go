package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mvives/go_corpus_tools/pkg/evaluator"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Grade every normalized document through the evaluation API",
		Long: "Pairs each normalized document with its writing prompt, submits batches " +
			"to the evaluation API, streams the graded results back, and writes " +
			"per-folder and combined results CSV files.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			host, err := cmd.Flags().GetString("api-host")
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Evaluation.Host = host
			}
			if folders, _ := cmd.Flags().GetStringSlice("folders"); len(folders) > 0 {
				cfg.Folders = folders
			}
			if batch, _ := cmd.Flags().GetInt("batch-size"); batch > 0 {
				cfg.Evaluation.BatchSize = batch
			}
			if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
				cfg.DataDir = dir
			}

			lg, err := buildLogger(cmd)
			if err != nil {
				return err
			}
			defer lg.Close()

			e, err := evaluator.New(cfg.Evaluation.Host,
				evaluator.WithDataDir(cfg.DataDir),
				evaluator.WithFolders(cfg.Folders...),
				evaluator.WithBatchSize(cfg.Evaluation.BatchSize),
				evaluator.WithPause(time.Duration(cfg.Evaluation.PauseSeconds)*time.Second),
				evaluator.WithTimeout(time.Duration(cfg.Evaluation.TimeoutSeconds)*time.Second),
				evaluator.WithStreamTimeout(time.Duration(cfg.Evaluation.StreamTimeoutSeconds)*time.Second),
				evaluator.WithLogger(lg),
			)
			if err != nil {
				return err
			}

			reports, err := e.Run(cmd.Context())
			if err != nil {
				return err
			}

			var files, submitted, scored int
			for _, r := range reports {
				files += r.Files
				submitted += r.Submitted
				scored += r.Scored
			}
			lg.Info("Evaluation complete",
				"files", files,
				"submitted", submitted,
				"scored", scored,
			)
			return nil
		},
	}

	cmd.Flags().String("api-host", "", "evaluation API base URL (required unless set in config)")
	cmd.Flags().StringSlice("folders", nil, "corpus folders to evaluate (overrides config)")
	cmd.Flags().Int("batch-size", 0, "texts per submitted job (overrides config)")
	cmd.Flags().String("data-dir", "", "corpus root directory (overrides config)")
	return cmd
}
