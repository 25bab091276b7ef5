// =============================================================================
// Vertragswert Tool - Monthly Value Projector
// =============================================================================
//
// This module computes the final value of a validated contract by iterating
// the monthly recurrence over the contract's term:
//
//   balance[0] = startbetrag
//   balance[t] = balance[t-1] * (1 + jahreszins/12) + monatsbeitrag - monatskosten
//
// The monthly rate is the annual rate divided by 12 (simple pro-ration, not a
// compounded-equivalent conversion); this must match the legacy tool exactly
// for output compatibility. No rounding is applied between the steps. The
// schedule entries and the reported final amount are rounded to two places,
// once, for reporting.
//
// ERROR HANDLING:
//   - A non-positive term cannot occur for a validated contract; if it does,
//     an *InvariantError is returned and the run aborts, because that is a
//     logic defect rather than bad input.
//   - A balance that turns negative mid-term makes the contract unprojectable
//     (costs eat the contract); this is reported as *NegativeValueError and
//     handled like a rejected row by the caller.
//
// =============================================================================

package projection

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zbt-tools/vertragswert/internal/contract"
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// InvariantError reports a violated assumption that the validator guarantees.
// It aborts the run instead of being recorded as a row rejection.
type InvariantError struct {
	ContractID int
	Detail     string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated for contract %d: %s", e.ContractID, e.Detail)
}

// NegativeValueError reports that the balance of a contract dropped below
// zero in some month of the projection.
type NegativeValueError struct {
	ContractID int
	Month      int
}

// Error implements the error interface.
func (e *NegativeValueError) Error() string {
	return fmt.Sprintf("contract %d: value becomes negative in month %d", e.ContractID, e.Month)
}

// =============================================================================
// PROJECTOR
// =============================================================================

// Project computes the month-by-month value of a validated contract and
// returns the result record. The input contract is not modified.
func Project(c contract.Contract) (contract.Result, error) {
	if c.TermMonths <= 0 {
		return contract.Result{}, &InvariantError{
			ContractID: c.ID,
			Detail:     fmt.Sprintf("term of %d months reached the projector", c.TermMonths),
		}
	}

	monthlyRate := c.AnnualRate.Div(twelve)
	growth := one.Add(monthlyRate)
	net := c.MonthlyContribution.Sub(c.MonthlyCost)

	balance := c.StartAmount
	schedule := make([]contract.MonthValue, 0, c.TermMonths)

	for month := 1; month <= c.TermMonths; month++ {
		balance = balance.Mul(growth).Add(net)

		if balance.IsNegative() {
			return contract.Result{}, &NegativeValueError{ContractID: c.ID, Month: month}
		}

		schedule = append(schedule, contract.MonthValue{
			Month: month,
			Value: balance.Round(2),
		})
	}

	return contract.Result{
		ContractID:   c.ID,
		CustomerName: c.CustomerName,
		TermMonths:   c.TermMonths,
		FinalAmount:  balance,
		Schedule:     schedule,
	}, nil
}
