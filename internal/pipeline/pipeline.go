// =============================================================================
// Vertragswert Tool - Pipeline
// =============================================================================
//
// This module is the collaborator-facing entry point of the tool. It wires
// the four stages together:
//
//   parse -> validate -> project -> export
//
// and returns one structured result per run. Every stage is a pure,
// synchronous transformation over an in-memory sequence; no state survives
// between invocations, so concurrent runs with independent sinks need no
// coordination.
//
// ERROR HANDLING:
//   - A malformed header (parser.HeaderError) is fatal: nothing was processed,
//     the error is returned and the result is nil.
//   - An internal invariant violation (projection.InvariantError) is likewise
//     returned as an error; it signals a logic defect, not bad input.
//   - Rejected rows and export write failures are accumulated in the RunResult
//     and never abort the run.
//
// The front end (CLI commands here, historically a desktop window) performs
// no validation or computation of its own; it supplies the input and the
// output sink and presents the RunResult.
//
// =============================================================================

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/zbt-tools/vertragswert/internal/config"
	"github.com/zbt-tools/vertragswert/internal/contract"
	"github.com/zbt-tools/vertragswert/internal/export"
	"github.com/zbt-tools/vertragswert/internal/parser"
	"github.com/zbt-tools/vertragswert/internal/projection"
	"github.com/zbt-tools/vertragswert/internal/validation"
)

// =============================================================================
// LOGGER INTERFACE
// =============================================================================

// Logger is the logging interface the pipeline depends on. pkg/logging
// provides the zap-backed implementation.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// NopLogger discards all log output. Useful in tests.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// =============================================================================
// RESULT TYPES
// =============================================================================

// RejectedRow is one data row that did not make it through parsing,
// validation or projection.
type RejectedRow struct {
	// Line is the source line number, 1-based with the header excluded.
	Line int

	// Reason is a human-readable description of the rejection.
	Reason string
}

// RunResult is the structured outcome of one pipeline run.
type RunResult struct {
	// BatchID identifies this run, for log correlation and archive naming.
	BatchID string

	// Accepted holds the projection results of all accepted contracts, in
	// input order.
	Accepted []contract.Result

	// Rejected holds one entry per rejected row, in input order.
	Rejected []RejectedRow

	// ExportErrors holds one entry per output artifact that could not be
	// written.
	ExportErrors []export.WriteError

	// ArtifactsWritten is the number of output artifacts written successfully
	// (table, workbook and letters combined).
	ArtifactsWritten int
}

// =============================================================================
// PIPELINE
// =============================================================================

// Run executes one full import: parse the contract file from input, validate
// every row, project every accepted contract and export the results into the
// sink. See the package comment for the error contract.
func Run(input io.Reader, sink export.Sink, cfg *config.Config, log Logger) (*RunResult, error) {
	result := &RunResult{BatchID: uuid.New().String()}

	// Stage 1: parse.
	records, lineErrs, err := parser.Parse(input, cfg.Import)
	if err != nil {
		var headerErr *parser.HeaderError
		if errors.As(err, &headerErr) {
			log.Error("import aborted", "batch", result.BatchID, "error", headerErr.Error())
		}
		return nil, fmt.Errorf("import failed: %w", err)
	}

	for _, le := range lineErrs {
		result.Rejected = append(result.Rejected, RejectedRow{Line: le.Line, Reason: le.Message})
	}
	log.Debug("parsed contract file",
		"batch", result.BatchID, "records", len(records), "line_errors", len(lineErrs))

	// Stages 2 and 3: validate and project, row by row, keeping input order.
	for _, rec := range records {
		c, rejection := validation.Validate(rec)
		if rejection != nil {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line:   rejection.Line,
				Reason: fmt.Sprintf("%s %s", rejection.Field, rejection.Reason),
			})
			log.Warn("row rejected", "batch", result.BatchID, "line", rejection.Line,
				"field", rejection.Field, "reason", rejection.Reason)
			continue
		}

		res, err := projection.Project(c)
		if err != nil {
			var negErr *projection.NegativeValueError
			if errors.As(err, &negErr) {
				result.Rejected = append(result.Rejected, RejectedRow{
					Line:   c.Line,
					Reason: fmt.Sprintf("value becomes negative in month %d", negErr.Month),
				})
				log.Warn("row rejected", "batch", result.BatchID, "line", c.Line,
					"contract", c.ID, "reason", err.Error())
				continue
			}
			// Invariant violations indicate a defect; abort the run.
			return nil, fmt.Errorf("projection failed: %w", err)
		}

		result.Accepted = append(result.Accepted, res)
	}

	// Parse-level and validation-level rejections come out of separate loops;
	// present them in file order.
	sort.SliceStable(result.Rejected, func(i, j int) bool {
		return result.Rejected[i].Line < result.Rejected[j].Line
	})

	log.Info("projection complete", "batch", result.BatchID,
		"accepted", len(result.Accepted), "rejected", len(result.Rejected))

	// Stage 4: export.
	letter, err := export.NewLetter(cfg.Letter)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	report := export.New(cfg.Export, letter).Export(sink, result.Accepted)
	result.ArtifactsWritten = report.Written
	result.ExportErrors = report.Errors

	for _, we := range report.Errors {
		log.Error("artifact write failed", "batch", result.BatchID,
			"target", we.Target, "error", we.Err.Error())
	}
	log.Info("export complete", "batch", result.BatchID,
		"written", report.Written, "failed", len(report.Errors))

	return result, nil
}
