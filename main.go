// =============================================================================
// Vertragswert Tool - Main Entry Point
// =============================================================================
//
// This is the main entry point for the contract value projection tool. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   vertragswert process   - Import, project and export contract files
//   vertragswert preview   - Render one notification letter to stdout
//   vertragswert version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra), the thin front end
//   - internal/  : the pipeline (parser, validation, projection, export)
//   - pkg/       : shared utilities (logging, file management)
//
// =============================================================================

package main

import (
	"github.com/zbt-tools/vertragswert/cmd"
)

// main simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
