// =============================================================================
// Vertragswert Tool - Exporter
// =============================================================================
//
// This module serializes the ordered projection results into the output
// artifacts:
//   - the tabular results file (comma-separated, header
//     "vertragsnr,kundenname,endwert")
//   - optionally an XLSX workbook with the same columns
//   - one notification letter per contract
//
// Results are written in input order. Each run writes a fresh set of
// artifacts; nothing is read back or merged with prior runs.
//
// ERROR HANDLING:
//   A failed write of one artifact (one letter, the table, the workbook) does
//   not abort the remaining writes. All failures are collected into the
//   Report together with the count of successful writes.
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strconv"

	"github.com/zbt-tools/vertragswert/internal/config"
	"github.com/zbt-tools/vertragswert/internal/contract"
)

// TableHeader is the header row of the tabular results file.
var TableHeader = []string{"vertragsnr", "kundenname", "endwert"}

// =============================================================================
// REPORT TYPES
// =============================================================================

// WriteError records one failed artifact write. The remaining artifacts are
// still written.
type WriteError struct {
	// Target is the sink entry that could not be written.
	Target string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Target, e.Err)
}

// Report is the batch outcome of one export run.
type Report struct {
	// Written is the number of artifacts written successfully.
	Written int

	// Errors holds one entry per failed artifact.
	Errors []WriteError
}

// =============================================================================
// EXPORTER
// =============================================================================

// Exporter writes projection results to a sink.
type Exporter struct {
	settings config.ExportSettings
	letter   *Letter
}

// New creates an Exporter.
func New(settings config.ExportSettings, letter *Letter) *Exporter {
	return &Exporter{settings: settings, letter: letter}
}

// Export writes the results table, the optional workbook and one letter per
// result into the sink and returns the batch report.
func (e *Exporter) Export(sink Sink, results []contract.Result) Report {
	var report Report

	report.record(e.settings.ResultsFile, e.writeEntry(sink, e.settings.ResultsFile, func(w io.Writer) error {
		return WriteTable(w, results)
	}))

	if e.settings.WorkbookEnabled() {
		report.record(e.settings.WorkbookFile, e.writeEntry(sink, e.settings.WorkbookFile, func(w io.Writer) error {
			return WriteWorkbook(w, results)
		}))
	}

	for _, res := range results {
		name := e.LetterName(res.ContractID)
		report.record(name, e.writeEntry(sink, name, func(w io.Writer) error {
			return e.letter.Render(w, res)
		}))
	}

	return report
}

// LetterName returns the sink entry name of the letter for a contract, e.g.
// "letters/brief_12.txt".
func (e *Exporter) LetterName(contractID int) string {
	return path.Join(e.settings.LettersDir, e.settings.LetterPrefix+strconv.Itoa(contractID)+".txt")
}

// writeEntry creates one sink entry, runs the write function and closes the
// entry, reporting the first failure of the three.
func (e *Exporter) writeEntry(sink Sink, name string, write func(io.Writer) error) error {
	w, err := sink.Create(name)
	if err != nil {
		return err
	}

	if err := write(w); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// record books one artifact outcome into the report.
func (r *Report) record(target string, err error) {
	if err != nil {
		r.Errors = append(r.Errors, WriteError{Target: target, Err: err})
		return
	}
	r.Written++
}

// =============================================================================
// TABULAR EXPORT
// =============================================================================

// WriteTable writes the comma-separated results table to w: one header row,
// then one row per result in input order, final amounts with exactly two
// decimal places and a decimal point.
func WriteTable(w io.Writer, results []contract.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(TableHeader); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}

	for _, res := range results {
		row := []string{
			strconv.Itoa(res.ContractID),
			res.CustomerName,
			res.FinalAmountFixed(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for contract %d: %w", res.ContractID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
