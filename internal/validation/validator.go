// =============================================================================
// Vertragswert Tool - Validation Engine
// =============================================================================
//
// This module coerces the raw string fields of a parsed line into their
// semantic types and applies the plausibility rules, in this fixed order:
//
//   1. vertragsnr    parses as a positive integer
//   2. kundenname    is non-empty after trimming
//   3. jahreszins    parses as a decimal >= 0
//   4. monatsbeitrag parses as a decimal >= 0
//   5. monatskosten  parses as a decimal >= 0
//   6. startbetrag   parses as a decimal >= 0
//   7. monate        parses as a positive integer
//
// Checking stops at the first failed rule. A coercion failure is reported in
// the same rule slot as the range check, with a message that distinguishes an
// empty value ("must not be empty") from non-numeric text ("is not a number")
// and from an out-of-range value.
//
// ERROR HANDLING:
//   Rejections are values, not errors: the caller collects them per line and
//   continues with the remaining rows.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zbt-tools/vertragswert/internal/contract"
	"github.com/zbt-tools/vertragswert/internal/parser"
)

// =============================================================================
// REJECTION TYPE
// =============================================================================

// Rejection describes why a single row was not accepted. The row keeps its
// place in the file; processing continues with the next row.
type Rejection struct {
	// Line is the source line number, 1-based with the header excluded.
	Line int

	// Field is the header name of the field that failed.
	Field string

	// Reason is a human-readable description of the failed rule.
	Reason string
}

// String renders the rejection the way it appears in logs and the summary.
func (r Rejection) String() string {
	return fmt.Sprintf("line %d: %s %s", r.Line, r.Field, r.Reason)
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Field positions within a raw record, in header order.
const (
	fieldContractID = iota
	fieldCustomerName
	fieldAnnualRate
	fieldMonthlyContribution
	fieldMonthlyCost
	fieldStartAmount
	fieldTermMonths
)

// Validate coerces and checks one raw record. It returns the accepted
// Contract, or a Rejection describing the first rule that failed.
func Validate(rec parser.RawRecord) (contract.Contract, *Rejection) {
	reject := func(field int, reason string) (contract.Contract, *Rejection) {
		return contract.Contract{}, &Rejection{
			Line:   rec.Line,
			Field:  parser.ExpectedHeader[field],
			Reason: reason,
		}
	}

	// Rule 1: contract number.
	if rec.Fields[fieldContractID] == "" {
		return reject(fieldContractID, "must not be empty")
	}
	id, err := strconv.Atoi(rec.Fields[fieldContractID])
	if err != nil {
		return reject(fieldContractID, "is not a number")
	}
	if id <= 0 {
		return reject(fieldContractID, "must be a positive integer")
	}

	// Rule 2: customer name.
	name := strings.TrimSpace(rec.Fields[fieldCustomerName])
	if name == "" {
		return reject(fieldCustomerName, "must not be empty")
	}

	// Rules 3-6: the decimal amounts. A rate is a cost/benefit ratio and the
	// flows are magnitudes, so none of them may be negative.
	rate, rej := nonNegativeDecimal(rec, fieldAnnualRate)
	if rej != nil {
		return contract.Contract{}, rej
	}
	contribution, rej := nonNegativeDecimal(rec, fieldMonthlyContribution)
	if rej != nil {
		return contract.Contract{}, rej
	}
	cost, rej := nonNegativeDecimal(rec, fieldMonthlyCost)
	if rej != nil {
		return contract.Contract{}, rej
	}
	start, rej := nonNegativeDecimal(rec, fieldStartAmount)
	if rej != nil {
		return contract.Contract{}, rej
	}

	// Rule 7: term.
	if rec.Fields[fieldTermMonths] == "" {
		return reject(fieldTermMonths, "must not be empty")
	}
	months, err := strconv.Atoi(rec.Fields[fieldTermMonths])
	if err != nil {
		return reject(fieldTermMonths, "is not a number")
	}
	if months <= 0 {
		return reject(fieldTermMonths, "must be a positive integer")
	}

	return contract.Contract{
		ID:                  id,
		CustomerName:        name,
		AnnualRate:          rate,
		MonthlyContribution: contribution,
		MonthlyCost:         cost,
		StartAmount:         start,
		TermMonths:          months,
		Line:                rec.Line,
	}, nil
}

// nonNegativeDecimal coerces one field to a decimal and checks it is >= 0.
func nonNegativeDecimal(rec parser.RawRecord, field int) (decimal.Decimal, *Rejection) {
	if rec.Fields[field] == "" {
		return decimal.Decimal{}, &Rejection{
			Line:   rec.Line,
			Field:  parser.ExpectedHeader[field],
			Reason: "must not be empty",
		}
	}
	value, err := decimal.NewFromString(rec.Fields[field])
	if err != nil {
		return decimal.Decimal{}, &Rejection{
			Line:   rec.Line,
			Field:  parser.ExpectedHeader[field],
			Reason: "is not a number",
		}
	}
	if value.IsNegative() {
		return decimal.Decimal{}, &Rejection{
			Line:   rec.Line,
			Field:  parser.ExpectedHeader[field],
			Reason: "must not be negative",
		}
	}
	return value, nil
}
