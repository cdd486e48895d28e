package main

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"
	"github.com/spf13/cobra"

	"github.com/mvives/go_corpus_tools/internal/config"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "corpustools",
		Short:         "Batch utilities for the Catalan writing corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to a YAML config file (defaults apply when omitted)")
	root.PersistentFlags().String("log-file", "", "log file path (empty = stdout)")
	root.PersistentFlags().Bool("json-log", false, "emit JSON log lines")

	root.AddCommand(
		normalizeCmd(),
		validateCmd(),
		evaluateCmd(),
	)
	return root
}

// loadConfig resolves the configuration for a command run.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}

// buildLogger creates the process logger from the persistent flags. The
// caller owns the returned logger and must Close it.
func buildLogger(cmd *cobra.Command) (l.Logger, error) {
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return nil, err
	}
	jsonLog, err := cmd.Flags().GetBool("json-log")
	if err != nil {
		return nil, err
	}

	var output io.Writer = os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		output = f
	}

	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:     output,
		JsonFormat: jsonLog,
		AsyncWrite: false,
		AddSource:  false,
	})
}
