// =============================================================================
// Vertragswert Tool - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// ('process', 'preview', 'version') are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (vertragswert)
//   ├── processCmd (vertragswert process)
//   ├── previewCmd (vertragswert preview)
//   └── versionCmd (vertragswert version)
//
// The root command owns the global flags (--config, --verbose) and the
// construction of the configuration and the logger; the subcommands only
// drive the pipeline and present its results.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zbt-tools/vertragswert/internal/config"
	"github.com/zbt-tools/vertragswert/pkg/logging"
)

// cfgFile holds the path to the configuration file, set via --config.
var cfgFile string

// verbose enables debug-level logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vertragswert",
	Short: "Project contract values from delimited contract files",
	Long: `Vertragswert imports semicolon-delimited contract files, projects each
contract's value month by month (monthly interest plus net contribution) and
exports a results table together with one notification letter per contract.

Rows that fail the plausibility checks are reported with their line number and
reason; the remaining rows are still processed.

Example Usage:
  vertragswert process --input contracts.txt --output ./out
  vertragswert process --input ./inbox --output ./out   # process a whole directory
  vertragswert preview --input contracts.txt            # print the first letter`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (optional, defaults apply without one)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configured file, or the built-in defaults when no
// --config flag was given.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

// newLogger builds the logger for the current invocation.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(cfg.LogMode, verbose)
}
