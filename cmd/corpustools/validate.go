package main

import (
	"github.com/spf13/cobra"

	"github.com/mvives/go_corpus_tools/pkg/validator"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <directory>",
		Short: "Check the file references of a consignas table",
		Long: "Reads consignas.csv in the given directory, tests filesystem existence " +
			"of every referenced file, and writes the boolean result column back. " +
			"When the column already exists, asks before overwriting unless --force " +
			"is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}

			lg, err := buildLogger(cmd)
			if err != nil {
				return err
			}
			defer lg.Close()

			v, err := validator.New(
				validator.WithCSVName(cfg.Validator.CSVName),
				validator.WithIDColumns(cfg.Validator.IDColumns...),
				validator.WithOutputColumn(cfg.Validator.OutputColumn),
				validator.WithForce(force),
				validator.WithLogger(lg),
			)
			if err != nil {
				return err
			}

			_, err = v.Run(cmd.Context(), args[0])
			return err
		},
	}

	cmd.Flags().Bool("force", false, "overwrite an existing result column without asking")
	return cmd
}
