// =============================================================================
// Vertragswert Tool - Contract Record Model
// =============================================================================
//
// This package defines the record model shared by the whole pipeline:
//   - Contract: one validated row of the input file
//   - Result:   the projected value of one contract
//
// A Contract is immutable once it leaves the validator. The projected value is
// never written back onto the Contract; it lives in a separate Result so that
// the parsed input and the computed output stay cleanly apart.
//
// All monetary fields use shopspring/decimal. The monthly recurrence is exact
// decimal arithmetic; rounding happens exactly once, when a value is reported.
//
// =============================================================================

package contract

import "github.com/shopspring/decimal"

// =============================================================================
// CONTRACT
// =============================================================================

// Contract is one row of the input file after validation.
type Contract struct {
	// ID is the contract number (vertragsnr). Positive, unique per file by
	// convention but not enforced here; duplicates pass through independently.
	ID int

	// CustomerName is the customer's name (kundenname), non-empty after trimming.
	CustomerName string

	// AnnualRate is the yearly interest rate as a decimal fraction
	// (jahreszins, e.g. 0.02 for 2% per year). Never negative.
	AnnualRate decimal.Decimal

	// MonthlyContribution is the amount added to the balance each month
	// (monatsbeitrag). Zero or positive.
	MonthlyContribution decimal.Decimal

	// MonthlyCost is the amount deducted from the balance each month
	// (monatskosten). Zero or positive.
	MonthlyCost decimal.Decimal

	// StartAmount is the balance at month 0 (startbetrag). Zero or positive.
	StartAmount decimal.Decimal

	// TermMonths is the number of monthly steps to project (monate). Positive.
	TermMonths int

	// Line is the source line number of this row, 1-based with the header
	// excluded. Carried for error reporting only.
	Line int
}

// =============================================================================
// PROJECTION RESULT
// =============================================================================

// MonthValue is one entry of the month-by-month schedule: the balance at the
// end of month Month, rounded to two places for reporting.
type MonthValue struct {
	Month int
	Value decimal.Decimal
}

// Result is the projected value of one contract.
type Result struct {
	// ContractID is the contract number this result belongs to.
	ContractID int

	// CustomerName is carried over for the exports.
	CustomerName string

	// TermMonths is the projected term, carried over for letter rendering.
	TermMonths int

	// FinalAmount is the unrounded balance after TermMonths steps.
	// Use FinalAmountFixed for the reported two-decimal form.
	FinalAmount decimal.Decimal

	// Schedule holds the balance at the end of every month, in month order.
	// Schedule[TermMonths-1].Value equals FinalAmount rounded to two places.
	Schedule []MonthValue
}

// FinalAmountFixed returns the final amount formatted with exactly two decimal
// places, rounding half away from zero. This is the only rounding the pipeline
// applies to the final value.
func (r Result) FinalAmountFixed() string {
	return r.FinalAmount.StringFixed(2)
}
