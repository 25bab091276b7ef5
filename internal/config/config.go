// =============================================================================
// Vertragswert Tool - Configuration Module
// =============================================================================
//
// This module loads and manages the tool configuration. Everything that used
// to be ambient state in the legacy tool (delimiter, output file names, the
// letter template) is an explicit configuration value here, passed into the
// pipeline call, so two runs with different settings can never interfere.
//
// CONFIGURATION FILE (config.yaml):
//
//   import:
//     delimiter: ";"
//   export:
//     results_file: results.csv
//     workbook_file: results.xlsx    # "none" disables the workbook
//     letters_dir: letters
//     letter_prefix: brief_
//   letter:
//     template_file: ""              # empty string uses the built-in template
//   archive_dir: ""                  # empty string disables input archival
//   log_mode: dev                    # "dev" or "prod"
//
// All settings have defaults; the tool runs without a configuration file.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full tool configuration.
type Config struct {
	// Import contains settings for reading the contract file.
	Import ImportSettings `yaml:"import"`

	// Export contains settings for writing the result artifacts.
	Export ExportSettings `yaml:"export"`

	// Letter contains settings for the notification letters.
	Letter LetterSettings `yaml:"letter"`

	// ArchiveDir is the directory processed input files are moved to after a
	// successful run. Empty disables archival.
	ArchiveDir string `yaml:"archive_dir"`

	// LogMode selects the logger configuration: "dev" (console, human
	// readable) or "prod" (JSON).
	// Default: "dev"
	LogMode string `yaml:"log_mode"`
}

// ImportSettings contains settings for parsing the input contract file.
type ImportSettings struct {
	// Delimiter is the field separator of the input file.
	// The legacy contracts.txt format uses a semicolon.
	// Default: ";"
	Delimiter string `yaml:"delimiter"`
}

// ExportSettings contains settings for the result artifacts.
type ExportSettings struct {
	// ResultsFile is the name of the tabular results file within the output
	// sink. The table itself is always comma-separated.
	// Default: "results.csv"
	ResultsFile string `yaml:"results_file"`

	// WorkbookFile is the name of the XLSX results workbook within the output
	// sink. The special value "none" disables the workbook export.
	// Default: "results.xlsx"
	WorkbookFile string `yaml:"workbook_file"`

	// LettersDir is the directory within the output sink that receives the
	// notification letters.
	// Default: "letters"
	LettersDir string `yaml:"letters_dir"`

	// LetterPrefix is the file name prefix for letters. A letter for contract
	// 12 is named "<LetterPrefix>12.txt".
	// Default: "brief_"
	LetterPrefix string `yaml:"letter_prefix"`
}

// LetterSettings contains settings for letter rendering.
type LetterSettings struct {
	// TemplateFile is the path to a custom letter template (text/template
	// syntax, fields .CustomerName, .ContractID, .FinalAmount, .TermMonths).
	// An empty string uses the built-in template.
	TemplateFile string `yaml:"template_file"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a configuration file, applies defaults for unset values and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Import.Delimiter == "" {
		cfg.Import.Delimiter = ";"
	}
	if cfg.Export.ResultsFile == "" {
		cfg.Export.ResultsFile = "results.csv"
	}
	if cfg.Export.WorkbookFile == "" {
		cfg.Export.WorkbookFile = "results.xlsx"
	}
	if cfg.Export.LettersDir == "" {
		cfg.Export.LettersDir = "letters"
	}
	if cfg.Export.LetterPrefix == "" {
		cfg.Export.LetterPrefix = "brief_"
	}
	if cfg.LogMode == "" {
		cfg.LogMode = "dev"
	}
}

// validate rejects configurations the pipeline cannot work with.
func validate(cfg *Config) error {
	if len(cfg.Import.Delimiter) != 1 {
		return fmt.Errorf("import delimiter must be a single character, got %q", cfg.Import.Delimiter)
	}

	if cfg.Letter.TemplateFile != "" {
		if _, err := os.Stat(cfg.Letter.TemplateFile); err != nil {
			return fmt.Errorf("letter template file: %w", err)
		}
	}

	return nil
}

// DelimiterRune returns the import delimiter as a rune for the CSV reader.
func (s ImportSettings) DelimiterRune() rune {
	return rune(s.Delimiter[0])
}

// WorkbookEnabled reports whether the XLSX results workbook should be written.
func (s ExportSettings) WorkbookEnabled() bool {
	return s.WorkbookFile != "" && s.WorkbookFile != "none"
}
