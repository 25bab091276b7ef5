package validation

import (
	"strings"
	"testing"

	"github.com/zbt-tools/vertragswert/internal/parser"
)

// record builds a RawRecord in header order.
func record(line int, fields ...string) parser.RawRecord {
	return parser.RawRecord{Line: line, Fields: fields}
}

func TestValidateAcceptsWellFormedRow(t *testing.T) {
	c, rej := Validate(record(1, "1", "Max Mustermann", "0.02", "150", "5", "1000", "12"))
	if rej != nil {
		t.Fatalf("unexpected rejection: %v", rej)
	}

	if c.ID != 1 {
		t.Errorf("ID = %d, want 1", c.ID)
	}
	if c.CustomerName != "Max Mustermann" {
		t.Errorf("CustomerName = %q", c.CustomerName)
	}
	if c.AnnualRate.String() != "0.02" {
		t.Errorf("AnnualRate = %s, want 0.02", c.AnnualRate)
	}
	if c.TermMonths != 12 {
		t.Errorf("TermMonths = %d, want 12", c.TermMonths)
	}
	if c.Line != 1 {
		t.Errorf("Line = %d, want 1", c.Line)
	}
}

func TestValidateRules(t *testing.T) {
	cases := []struct {
		name       string
		fields     []string
		wantField  string
		wantReason string
	}{
		{
			name:       "empty contract id",
			fields:     []string{"", "Max", "0.02", "150", "5", "1000", "12"},
			wantField:  "vertragsnr",
			wantReason: "must not be empty",
		},
		{
			name:       "contract id not a number",
			fields:     []string{"abc", "Max", "0.02", "150", "5", "1000", "12"},
			wantField:  "vertragsnr",
			wantReason: "is not a number",
		},
		{
			name:       "contract id zero",
			fields:     []string{"0", "Max", "0.02", "150", "5", "1000", "12"},
			wantField:  "vertragsnr",
			wantReason: "must be a positive integer",
		},
		{
			name:       "contract id negative",
			fields:     []string{"-3", "Max", "0.02", "150", "5", "1000", "12"},
			wantField:  "vertragsnr",
			wantReason: "must be a positive integer",
		},
		{
			name:       "empty customer name",
			fields:     []string{"1", "   ", "0.02", "150", "5", "1000", "12"},
			wantField:  "kundenname",
			wantReason: "must not be empty",
		},
		{
			name:       "empty rate",
			fields:     []string{"1", "Max", "", "150", "5", "1000", "12"},
			wantField:  "jahreszins",
			wantReason: "must not be empty",
		},
		{
			name:       "rate not a number",
			fields:     []string{"1", "Max", "two percent", "150", "5", "1000", "12"},
			wantField:  "jahreszins",
			wantReason: "is not a number",
		},
		{
			name:       "negative rate",
			fields:     []string{"1", "Max", "-0.02", "150", "5", "1000", "12"},
			wantField:  "jahreszins",
			wantReason: "must not be negative",
		},
		{
			name:       "negative contribution",
			fields:     []string{"1", "Max", "0.02", "-150", "5", "1000", "12"},
			wantField:  "monatsbeitrag",
			wantReason: "must not be negative",
		},
		{
			name:       "cost not a number",
			fields:     []string{"1", "Max", "0.02", "150", "x", "1000", "12"},
			wantField:  "monatskosten",
			wantReason: "is not a number",
		},
		{
			name:       "negative start amount",
			fields:     []string{"1", "Max", "0.02", "150", "5", "-1", "12"},
			wantField:  "startbetrag",
			wantReason: "must not be negative",
		},
		{
			name:       "empty term",
			fields:     []string{"1", "Max", "0.02", "150", "5", "1000", ""},
			wantField:  "monate",
			wantReason: "must not be empty",
		},
		{
			name:       "term not a number",
			fields:     []string{"1", "Max", "0.02", "150", "5", "1000", "a year"},
			wantField:  "monate",
			wantReason: "is not a number",
		},
		{
			name:       "zero term",
			fields:     []string{"1", "Max", "0.02", "150", "5", "1000", "0"},
			wantField:  "monate",
			wantReason: "must be a positive integer",
		},
		{
			name:       "negative term",
			fields:     []string{"1", "Max", "0.02", "150", "5", "1000", "-12"},
			wantField:  "monate",
			wantReason: "must be a positive integer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, rej := Validate(record(7, tc.fields...))
			if rej == nil {
				t.Fatal("expected a rejection")
			}
			if rej.Line != 7 {
				t.Errorf("Line = %d, want 7", rej.Line)
			}
			if rej.Field != tc.wantField {
				t.Errorf("Field = %q, want %q", rej.Field, tc.wantField)
			}
			if rej.Reason != tc.wantReason {
				t.Errorf("Reason = %q, want %q", rej.Reason, tc.wantReason)
			}
		})
	}
}

// The first failed rule wins: a row that breaks several rules is reported on
// the earliest one.
func TestValidateStopsAtFirstFailure(t *testing.T) {
	_, rej := Validate(record(1, "nope", "", "-1", "-1", "-1", "-1", "0"))
	if rej == nil {
		t.Fatal("expected a rejection")
	}
	if rej.Field != "vertragsnr" {
		t.Errorf("Field = %q, want vertragsnr (first rule)", rej.Field)
	}
}

// A delimiter-only line arrives here as seven empty fields; it is a real row
// and fails rule 1.
func TestValidateAllEmptyFieldsRejectedOnFirstRule(t *testing.T) {
	_, rej := Validate(record(2, "", "", "", "", "", "", ""))
	if rej == nil {
		t.Fatal("expected a rejection")
	}
	if rej.Line != 2 {
		t.Errorf("Line = %d, want 2", rej.Line)
	}
	if rej.Field != "vertragsnr" || rej.Reason != "must not be empty" {
		t.Errorf("rejection = %q %q, want vertragsnr must not be empty", rej.Field, rej.Reason)
	}
}

func TestValidateZeroFlowsAreAccepted(t *testing.T) {
	c, rej := Validate(record(1, "1", "Max", "0.00", "0", "0", "0", "1"))
	if rej != nil {
		t.Fatalf("unexpected rejection: %v", rej)
	}
	if !c.MonthlyContribution.IsZero() || !c.MonthlyCost.IsZero() || !c.StartAmount.IsZero() {
		t.Error("zero amounts must be accepted as-is")
	}
}

func TestRejectionString(t *testing.T) {
	r := Rejection{Line: 4, Field: "jahreszins", Reason: "is not a number"}
	if got := r.String(); !strings.Contains(got, "line 4") || !strings.Contains(got, "jahreszins") {
		t.Errorf("String() = %q", got)
	}
}
