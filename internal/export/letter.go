// =============================================================================
// Vertragswert Tool - Notification Letters
// =============================================================================
//
// One letter per accepted contract. The body is a fixed text/template with
// three substitution points: customer name, contract number and final amount.
// There are no conditional sections. A custom template file can be configured;
// it additionally has access to the projected term (.TermMonths).
//
// The wording follows the legacy tool's letter, minus the print date: letters
// are part of the reproducible pipeline output and must not depend on the
// wall clock.
//
// =============================================================================

package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/zbt-tools/vertragswert/internal/config"
	"github.com/zbt-tools/vertragswert/internal/contract"
)

// defaultLetterTemplate is the built-in letter body.
const defaultLetterTemplate = `Betreff: Vertragswertinformation - Vertrag {{.ContractID}}

Sehr geehrte/r {{.CustomerName}},

der berechnete Vertragswert beträgt:

{{.FinalAmount}} EUR

Mit freundlichen Grüßen

Ihre Zurich Versicherung
`

// LetterData is the substitution data available to letter templates.
type LetterData struct {
	CustomerName string
	ContractID   int
	TermMonths   int

	// FinalAmount is pre-formatted with two decimal places.
	FinalAmount string
}

// Letter renders notification letters from a parsed template.
type Letter struct {
	tmpl *template.Template
}

// NewLetter builds the letter renderer from the settings, falling back to the
// built-in template when no template file is configured.
func NewLetter(settings config.LetterSettings) (*Letter, error) {
	body := defaultLetterTemplate

	if settings.TemplateFile != "" {
		data, err := os.ReadFile(settings.TemplateFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read letter template: %w", err)
		}
		body = string(data)
	}

	tmpl, err := template.New("letter").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse letter template: %w", err)
	}

	return &Letter{tmpl: tmpl}, nil
}

// Render writes the letter for one projection result to w.
func (l *Letter) Render(w io.Writer, res contract.Result) error {
	return l.tmpl.Execute(w, LetterData{
		CustomerName: res.CustomerName,
		ContractID:   res.ContractID,
		TermMonths:   res.TermMonths,
		FinalAmount:  res.FinalAmountFixed(),
	})
}
