// =============================================================================
// Vertragswert Tool - Contract File Parser
// =============================================================================
//
// This module turns the raw contract file (semicolon-delimited text, one
// header line, one contract per line) into a sequence of raw records or
// per-line errors. It knows nothing about field semantics; coercion and
// plausibility checks live in the validation package.
//
// ERROR HANDLING:
//   - A missing or malformed header is fatal for the whole import: no records
//     are produced and a single *HeaderError is returned.
//   - A malformed data line (wrong field count, broken quoting) is reported as
//     a LineError with its line number; the remaining lines are still parsed.
//
// Line numbers in records and errors are 1-based with the header excluded, so
// the first data line is line 1. Blank lines are skipped but keep their place
// in the numbering. A delimiter-only line (";;;;;;") is not blank: it carries
// seven empty fields and is handed to validation like any other record.
//
// =============================================================================

package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zbt-tools/vertragswert/internal/config"
)

// FieldCount is the number of fields every data line must have.
const FieldCount = 7

// ExpectedHeader lists the seven header names of the contract file, in the
// documented order. The legacy German names are part of the file format.
var ExpectedHeader = []string{
	"vertragsnr",
	"kundenname",
	"jahreszins",
	"monatsbeitrag",
	"monatskosten",
	"startbetrag",
	"monate",
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// RawRecord is one well-formed data line: the seven raw string fields plus
// their source line number.
type RawRecord struct {
	// Line is the source line number, 1-based with the header excluded.
	Line int

	// Fields holds the seven raw field values in header order, whitespace
	// trimmed.
	Fields []string
}

// LineError reports a single malformed data line. It does not abort the import.
type LineError struct {
	Line    int
	Message string
}

// HeaderError is the fatal import error: the first non-blank line of the file
// is not the expected header. No records are produced when this is returned.
type HeaderError struct {
	// Got holds the header fields actually found, nil if no line was found.
	Got []string
}

// Error implements the error interface.
func (e *HeaderError) Error() string {
	if e.Got == nil {
		return "no header line found (empty file?)"
	}
	return fmt.Sprintf("header mismatch: expected %v, got %v", ExpectedHeader, e.Got)
}

// =============================================================================
// PARSER
// =============================================================================

// Parse reads the full contract file from r and returns the well-formed raw
// records and the per-line errors. The returned error is non-nil only for
// fatal conditions (missing/malformed header, unreadable input); in that case
// no records are returned.
func Parse(r io.Reader, settings config.ImportSettings) ([]RawRecord, []LineError, error) {
	reader := csv.NewReader(stripBOM(r))
	configureReader(reader, settings)

	// Header line. The csv reader skips blank lines on its own, so the first
	// record it returns is the first non-blank line of the file.
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, &HeaderError{}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header line: %w", err)
	}
	if !headerMatches(header) {
		return nil, nil, &HeaderError{Got: trimAll(header)}
	}
	headerLine, _ := reader.FieldPos(0)

	var (
		records  []RawRecord
		lineErrs []LineError
	)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// Broken line, keep going with the rest of the file.
			lineErrs = append(lineErrs, LineError{
				Line:    parseErr.Line - headerLine,
				Message: fmt.Sprintf("malformed line: %v", parseErr.Err),
			})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read contract file: %w", err)
		}

		physical, _ := reader.FieldPos(0)
		line := physical - headerLine

		if len(row) != FieldCount {
			lineErrs = append(lineErrs, LineError{
				Line:    line,
				Message: fmt.Sprintf("expected %d fields, got %d", FieldCount, len(row)),
			})
			continue
		}

		records = append(records, RawRecord{Line: line, Fields: trimAll(row)})
	}

	return records, lineErrs, nil
}

// configureReader configures the CSV reader for the contract file format.
func configureReader(reader *csv.Reader, settings config.ImportSettings) {
	reader.Comma = settings.DelimiterRune()

	// Field count is checked per line so a short line becomes a LineError
	// instead of aborting the whole read.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// headerMatches reports whether the first line names exactly the seven
// expected fields in order, ignoring surrounding whitespace.
func headerMatches(header []string) bool {
	if len(header) != len(ExpectedHeader) {
		return false
	}
	for i, name := range header {
		if strings.TrimSpace(name) != ExpectedHeader[i] {
			return false
		}
	}
	return true
}

// stripBOM removes a leading UTF-8 byte order mark. The legacy tool wrote
// contract files as utf-8-sig.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(3); err == nil && lead[0] == 0xEF && lead[1] == 0xBB && lead[2] == 0xBF {
		br.Discard(3)
	}
	return br
}

// trimAll returns the row with every field whitespace-trimmed.
func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, f := range row {
		out[i] = strings.TrimSpace(f)
	}
	return out
}
