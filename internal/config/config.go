// Package config holds the explicit configuration of the corpus tools.
// Folder names, suffixes, and table layouts live here instead of being
// scattered as package constants, so every entry point receives one value
// describing the corpus it operates on.
package config

// Config is the root configuration.
type Config struct {
	// DataDir is the corpus root directory.
	DataDir string `yaml:"data_dir"`
	// Folders are the corpus subdirectories processed by the tools.
	Folders []string `yaml:"folders"`

	Normalizer NormalizerConfig `yaml:"normalizer"`
	Validator  ValidatorConfig  `yaml:"validator"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
}

// NormalizerConfig configures the normalization runner.
type NormalizerConfig struct {
	// Suffix is appended to the basename of normalized documents.
	Suffix string `yaml:"suffix"`
}

// ValidatorConfig configures the reference validator.
type ValidatorConfig struct {
	CSVName      string   `yaml:"csv_name"`
	IDColumns    []string `yaml:"id_columns"`
	OutputColumn string   `yaml:"output_column"`
}

// EvaluationConfig configures the evaluation client and batching.
type EvaluationConfig struct {
	// Host is the evaluation API base URL.
	Host string `yaml:"host"`
	// BatchSize is the number of texts per submitted job.
	BatchSize int `yaml:"batch_size"`
	// IDColumn is the identifier column of the prompt table.
	IDColumn string `yaml:"id_column"`
	// PromptColumns are the accepted prompt column spellings.
	PromptColumns []string `yaml:"prompt_columns"`
	// TimeoutSeconds bounds health and submit round trips.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// StreamTimeoutSeconds bounds a whole result stream.
	StreamTimeoutSeconds int `yaml:"stream_timeout_seconds"`
	// PauseSeconds separates consecutive batch submissions.
	PauseSeconds int `yaml:"pause_seconds"`
}

// Default returns the configuration matching the corpus layout the tools
// were built for.
func Default() Config {
	return Config{
		DataDir: "data",
		Folders: []string{"POS1", "POS2", "PRE"},
		Normalizer: NormalizerConfig{
			Suffix: "_NOR",
		},
		Validator: ValidatorConfig{
			CSVName:      "consignas.csv",
			IDColumns:    []string{"File ID", "FileID"},
			OutputColumn: "File Exists",
		},
		Evaluation: EvaluationConfig{
			BatchSize:            10,
			IDColumn:             "ID",
			PromptColumns:        []string{"Consigna", "TEXTpost2"},
			TimeoutSeconds:       30,
			StreamTimeoutSeconds: 300,
			PauseSeconds:         1,
		},
	}
}
