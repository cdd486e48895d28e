package main

import (
	"github.com/spf13/cobra"

	"github.com/mvives/go_corpus_tools/pkg/normalizer"
)

func normalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize every raw text document of the corpus",
		Long: "Walks the corpus folders and applies the Catalan marker rewrite pipeline " +
			"to every .txt document, writing the result next to the source with the " +
			"configured suffix. Already-normalized files are never used as input.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
				cfg.DataDir = dir
			}

			lg, err := buildLogger(cmd)
			if err != nil {
				return err
			}
			defer lg.Close()

			n, err := normalizer.New(
				normalizer.WithDataDir(cfg.DataDir),
				normalizer.WithFolders(cfg.Folders...),
				normalizer.WithSuffix(cfg.Normalizer.Suffix),
				normalizer.WithLogger(lg),
			)
			if err != nil {
				return err
			}

			reports, err := n.Run(cmd.Context())
			if err != nil {
				return err
			}

			var found, processed, failed int
			for _, r := range reports {
				found += r.Found
				processed += r.Processed
				failed += r.Failed
			}
			lg.Info("Normalization complete",
				"found", found,
				"processed", processed,
				"failed", failed,
				"suffix", cfg.Normalizer.Suffix,
			)
			return nil
		},
	}

	cmd.Flags().String("data-dir", "", "corpus root directory (overrides config)")
	return cmd
}
