// =============================================================================
// Vertragswert Tool - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main command of the tool. It
// runs the full pipeline for one contract file, or for every contract file in
// a directory.
//
// COMMAND USAGE:
//   vertragswert process --input FILE|DIR --output DIR [flags]
//
// FLAGS:
//   --input    : Contract file, or a directory of contract files
//   --output   : Directory receiving results.csv, results.xlsx and letters/
//   --dry-run  : Run the pipeline but keep all output in memory
//
// On success the processed input file is moved to the configured archive
// directory (if one is set). A file whose header is malformed produces no
// output at all; single bad rows are listed in the summary and do not stop
// the run.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zbt-tools/vertragswert/internal/config"
	"github.com/zbt-tools/vertragswert/internal/export"
	"github.com/zbt-tools/vertragswert/internal/pipeline"
	"github.com/zbt-tools/vertragswert/pkg/logging"
	"github.com/zbt-tools/vertragswert/pkg/utils"
)

// inputPath is the contract file or directory to process.
var inputPath string

// outputDir is the directory the artifacts are written to.
var outputDir string

// dryRun keeps all output in memory instead of writing files.
var dryRun bool

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Import contract files, project their values and export the results",
	Long: `The process command imports one contract file (or every contract file in a
directory), validates each row, projects the contract value over its term and
writes the results table plus one notification letter per contract into the
output directory.

Rejected rows are listed in the summary with their line number and reason.
A malformed header aborts the affected file without writing any output.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&inputPath, "input", "", "Contract file or directory to process")
	processCmd.Flags().StringVar(&outputDir, "output", "", "Output directory for results and letters")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the pipeline without writing output files")

	processCmd.MarkFlagRequired("input")
}

// runProcess drives the pipeline for all requested input files.
func runProcess() error {
	startTime := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	if !dryRun && outputDir == "" {
		return fmt.Errorf("--output is required (or use --dry-run)")
	}

	files, err := collectInputFiles(inputPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No contract files found.")
		return nil
	}

	fm := utils.NewFileManager(cfg.ArchiveDir)

	var processed, failed, rejectedRows int
	for _, file := range files {
		result, err := processFile(file, cfg, log, fm)
		if err != nil {
			failed++
			fmt.Printf("  ✗ %s: %v\n", file, err)
			continue
		}

		processed++
		rejectedRows += len(result.Rejected)
		fmt.Printf("  ✓ %s: %d accepted, %d rejected, %d artifact(s) written\n",
			file, len(result.Accepted), len(result.Rejected), result.ArtifactsWritten)

		for _, row := range result.Rejected {
			fmt.Printf("      line %d: %s\n", row.Line, row.Reason)
		}
		for _, we := range result.ExportErrors {
			fmt.Printf("      write failed: %s: %v\n", we.Target, we.Err)
		}
	}

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Files processed: %d\n", processed)
	fmt.Printf("Files failed:    %d\n", failed)
	fmt.Printf("Rejected rows:   %d\n", rejectedRows)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// processFile runs the pipeline for a single contract file.
func processFile(path string, cfg *config.Config, log *logging.Logger, fm *utils.FileManager) (*pipeline.RunResult, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open contract file: %w", err)
	}

	var sink export.Sink
	if dryRun {
		sink = export.NewMemorySink()
	} else {
		sink = export.NewDirSink(outputDir)
	}

	// The pipeline consumes the input completely; close before archiving so
	// the file handle never outlives the move.
	result, err := pipeline.Run(in, sink, cfg, log)
	in.Close()
	if err != nil {
		return nil, err
	}

	// Archive only fully clean runs; files with export errors stay put so the
	// operator can re-run them.
	if !dryRun && len(result.ExportErrors) == 0 {
		if archived, err := fm.ArchiveInputFile(path, result.BatchID); err != nil {
			log.Warn("failed to archive input file", "file", path, "error", err.Error())
		} else if archived != "" {
			log.Info("archived input file", "file", path, "archive", archived)
		}
	}

	return result, nil
}

// collectInputFiles expands the --input flag into the list of files to run.
func collectInputFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	if info.IsDir() {
		return utils.DiscoverInputFiles(path)
	}
	return []string{path}, nil
}
