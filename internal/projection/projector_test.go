package projection

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/zbt-tools/vertragswert/internal/contract"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testContract() contract.Contract {
	return contract.Contract{
		ID:                  1,
		CustomerName:        "Max Mustermann",
		AnnualRate:          dec("0.02"),
		MonthlyContribution: dec("150"),
		MonthlyCost:         dec("5"),
		StartAmount:         dec("1000"),
		TermMonths:          12,
		Line:                1,
	}
}

func TestProjectZeroRateZeroFlows(t *testing.T) {
	c := testContract()
	c.AnnualRate = dec("0.00")
	c.MonthlyContribution = dec("0")
	c.MonthlyCost = dec("0")
	c.StartAmount = dec("1000")
	c.TermMonths = 12

	res, err := Project(c)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	if got := res.FinalAmountFixed(); got != "1000.00" {
		t.Errorf("final amount = %s, want 1000.00", got)
	}
}

func TestProjectOneMonthContribution(t *testing.T) {
	c := testContract()
	c.ID = 2
	c.AnnualRate = dec("0.12") // 1% per month
	c.MonthlyContribution = dec("100")
	c.MonthlyCost = dec("0")
	c.StartAmount = dec("0")
	c.TermMonths = 1

	res, err := Project(c)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	// 0*(1+0.01) + 100 - 0 = 100
	if got := res.FinalAmountFixed(); got != "100.00" {
		t.Errorf("final amount = %s, want 100.00", got)
	}
}

func TestProjectAppliesMonthlyRecurrence(t *testing.T) {
	c := testContract()
	c.AnnualRate = dec("0.12")
	c.MonthlyContribution = dec("10")
	c.MonthlyCost = dec("4")
	c.StartAmount = dec("100")
	c.TermMonths = 2

	res, err := Project(c)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	// Month 1: 100*1.01 + 6 = 107
	// Month 2: 107*1.01 + 6 = 114.07
	if got := res.FinalAmountFixed(); got != "114.07" {
		t.Errorf("final amount = %s, want 114.07", got)
	}
	if len(res.Schedule) != 2 {
		t.Fatalf("schedule length = %d, want 2", len(res.Schedule))
	}
	if !res.Schedule[0].Value.Equal(dec("107")) {
		t.Errorf("month 1 value = %s, want 107", res.Schedule[0].Value)
	}
	if res.Schedule[1].Month != 2 {
		t.Errorf("schedule months = %d, want 2", res.Schedule[1].Month)
	}
}

func TestProjectIsDeterministic(t *testing.T) {
	c := testContract()

	first, err := Project(c)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}
	second, err := Project(c)
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	if !first.FinalAmount.Equal(second.FinalAmount) {
		t.Errorf("projection is not reproducible: %s vs %s", first.FinalAmount, second.FinalAmount)
	}
}

func TestProjectCarriesResultMetadata(t *testing.T) {
	res, err := Project(testContract())
	if err != nil {
		t.Fatalf("Project returned error: %v", err)
	}

	if res.ContractID != 1 || res.CustomerName != "Max Mustermann" || res.TermMonths != 12 {
		t.Errorf("result metadata = %d/%q/%d", res.ContractID, res.CustomerName, res.TermMonths)
	}
}

func TestProjectNonPositiveTermIsInvariantError(t *testing.T) {
	c := testContract()
	c.TermMonths = 0

	_, err := Project(c)

	var invErr *InvariantError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected *InvariantError, got %v", err)
	}
	if invErr.ContractID != c.ID {
		t.Errorf("ContractID = %d, want %d", invErr.ContractID, c.ID)
	}
}

func TestProjectNegativeBalanceIsReported(t *testing.T) {
	c := testContract()
	c.AnnualRate = dec("0")
	c.MonthlyContribution = dec("0")
	c.MonthlyCost = dec("60")
	c.StartAmount = dec("100")
	c.TermMonths = 3

	_, err := Project(c)

	// Month 1: 40, month 2: -20.
	var negErr *NegativeValueError
	if !errors.As(err, &negErr) {
		t.Fatalf("expected *NegativeValueError, got %v", err)
	}
	if negErr.Month != 2 {
		t.Errorf("Month = %d, want 2", negErr.Month)
	}
}
