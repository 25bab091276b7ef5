// =============================================================================
// Vertragswert Tool - Preview Command
// =============================================================================
//
// This file defines the 'preview' command: it runs the pipeline in memory and
// prints a single notification letter to stdout, without writing any files.
// This replaces the letter-preview window of the legacy desktop tool.
//
// COMMAND USAGE:
//   vertragswert preview --input FILE [--contract N]
//
// Without --contract the letter of the first accepted contract is shown.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zbt-tools/vertragswert/internal/export"
	"github.com/zbt-tools/vertragswert/internal/pipeline"
)

// previewInput is the contract file to preview from.
var previewInput string

// previewContract selects the contract number to preview; 0 means the first
// accepted contract.
var previewContract int

// previewCmd represents the 'preview' command.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render one notification letter to stdout",
	Long: `The preview command runs the import and projection in memory and prints the
notification letter of one contract, so the operator can check the wording
before a real export.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview()
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewInput, "input", "", "Contract file to preview from")
	previewCmd.Flags().IntVar(&previewContract, "contract", 0, "Contract number to preview (default: first accepted)")

	previewCmd.MarkFlagRequired("input")
}

// runPreview runs the pipeline against an in-memory sink and prints one letter.
func runPreview() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	in, err := os.Open(previewInput)
	if err != nil {
		return fmt.Errorf("failed to open contract file: %w", err)
	}
	defer in.Close()

	sink := export.NewMemorySink()
	result, err := pipeline.Run(in, sink, cfg, log)
	if err != nil {
		return err
	}
	if len(result.Accepted) == 0 {
		return fmt.Errorf("no accepted contracts to preview (%d rejected)", len(result.Rejected))
	}

	target := result.Accepted[0].ContractID
	if previewContract != 0 {
		target = 0
		for _, res := range result.Accepted {
			if res.ContractID == previewContract {
				target = res.ContractID
				break
			}
		}
		if target == 0 {
			return fmt.Errorf("contract %d not found among accepted contracts", previewContract)
		}
	}

	letter, err := export.NewLetter(cfg.Letter)
	if err != nil {
		return err
	}
	exporter := export.New(cfg.Export, letter)

	body, ok := sink.Entry(exporter.LetterName(target))
	if !ok {
		return fmt.Errorf("letter for contract %d was not rendered", target)
	}

	fmt.Print(body)
	return nil
}
