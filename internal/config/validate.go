package config

import "fmt"

// Validate checks configuration correctness. It performs declarative
// validation only and MUST NOT mutate the configuration.
func Validate(cfg *Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if len(cfg.Folders) == 0 {
		return fmt.Errorf("folders must name at least one corpus folder")
	}
	for _, f := range cfg.Folders {
		if f == "" {
			return fmt.Errorf("folders must not contain empty names")
		}
	}

	if cfg.Normalizer.Suffix == "" {
		return fmt.Errorf("normalizer.suffix must not be empty")
	}

	if cfg.Validator.CSVName == "" {
		return fmt.Errorf("validator.csv_name must not be empty")
	}
	if len(cfg.Validator.IDColumns) == 0 {
		return fmt.Errorf("validator.id_columns must name at least one column")
	}
	if cfg.Validator.OutputColumn == "" {
		return fmt.Errorf("validator.output_column must not be empty")
	}

	if cfg.Evaluation.BatchSize <= 0 {
		return fmt.Errorf("evaluation.batch_size must be positive, got %d", cfg.Evaluation.BatchSize)
	}
	if cfg.Evaluation.TimeoutSeconds <= 0 {
		return fmt.Errorf("evaluation.timeout_seconds must be positive, got %d", cfg.Evaluation.TimeoutSeconds)
	}
	if cfg.Evaluation.StreamTimeoutSeconds <= 0 {
		return fmt.Errorf("evaluation.stream_timeout_seconds must be positive, got %d", cfg.Evaluation.StreamTimeoutSeconds)
	}
	if cfg.Evaluation.PauseSeconds < 0 {
		return fmt.Errorf("evaluation.pause_seconds must not be negative, got %d", cfg.Evaluation.PauseSeconds)
	}
	return nil
}
