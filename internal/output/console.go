package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/rules"
	"github.com/shopspring/decimal"
)

var (
	colorPrimary = lipgloss.Color("#4B4AFF")
	colorWater   = lipgloss.Color("#003366")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)
	waterStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorWater).
			Padding(0, 2)
)

// ConsoleFormatter renders a human-readable report with summary cards
type ConsoleFormatter struct {
	// Verbose adds the modelling assumptions
	Verbose bool
}

func (c ConsoleFormatter) Name() string {
	if c.Verbose {
		return "console-verbose"
	}
	return "console"
}

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	b := r.Breakdown

	fmt.Fprintln(&buf, titleStyle.Render(fmt.Sprintf("TAX BREAKDOWN %d", b.TaxYear)))
	fmt.Fprintln(&buf)

	summary := strings.Join([]string{
		line("Net pay", FormatCurrency(b.NetPay)),
		line("Total income", FormatCurrency(b.TotalIncome)),
		line("Total tax", FormatCurrency(b.TotalTax)),
		line("Marginal tax rate", FormatPercentage(b.MarginalTaxRate)),
		line("Average tax rate", FormatPercentage(b.AverageTaxRate)),
	}, "\n")
	fmt.Fprintln(&buf, cardStyle.Render(summary))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("TAX"))
	fmt.Fprintln(&buf, line("Bracket tax", FormatCurrency(b.BracketTax)))
	fmt.Fprintln(&buf, line("Insurance contribution", FormatCurrency(b.InsuranceContribution)))
	fmt.Fprintln(&buf, line("Common tax", FormatCurrency(b.CommonTax)))
	fmt.Fprintln(&buf, line("Wealth tax", FormatCurrency(b.WealthTax)))
	fmt.Fprintln(&buf, line("Gross tax", FormatCurrency(b.GrossTax())))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("DEDUCTIONS"))
	fmt.Fprintln(&buf, line("Minimum deduction", FormatCurrency(b.MinimumDeduction)))
	optional := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Mortgage interest", b.MortgageDeduction},
		{"Property", b.PropertyDeduction},
		{"Parental", b.ParentalDeduction},
		{"Parental benefit", b.ParentalBenefitDeduction},
		{"Disability", b.DisabilityDeduction},
		{"Union fee, IPS and BSU", b.ContributionCredits},
		{"Other deductions", b.OtherDeductions},
		{"Travel", b.TravelDeduction},
	}
	for _, o := range optional {
		if !o.amount.IsZero() {
			fmt.Fprintln(&buf, line(o.label, FormatCurrency(o.amount)))
		}
	}
	fmt.Fprintln(&buf, line("Total deductions", FormatCurrency(b.TotalDeductions)))
	fmt.Fprintln(&buf, line("Income after deductions", FormatCurrency(b.IncomeAfterDeductions)))
	fmt.Fprintln(&buf)

	if !b.NetWealth.IsZero() {
		fmt.Fprintln(&buf, sectionStyle.Render("WEALTH"))
		fmt.Fprintln(&buf, line("Net wealth", FormatCurrency(b.NetWealth)))
		if rt, err := rules.ForYear(b.TaxYear); err == nil && c.Verbose {
			parts := calculation.NewWealthTaxCalculator(rt.Wealth).ComponentTax(b.NetWealth)
			for _, comp := range rt.Wealth {
				fmt.Fprintln(&buf, line(capitalize(comp.Name)+" wealth tax", FormatCurrency(parts[comp.Name])))
			}
		}
		fmt.Fprintln(&buf, line("Wealth tax", FormatCurrency(b.WealthTax)))
		fmt.Fprintln(&buf)
	}

	tb := r.Taxberg
	fmt.Fprintln(&buf, sectionStyle.Render("THE TAXBERG"))
	above := strings.Join([]string{
		line("Net pay", FormatCurrency(tb.NetPay)),
		line("Tax you pay", FormatCurrency(tb.TaxYouPay)),
	}, "\n")
	below := strings.Join([]string{
		line("Tax the employer pays", FormatCurrency(tb.EmployerContribution)),
		line("Total tax paid", FormatCurrency(tb.TotalTaxPaid)),
		line("Real tax rate", FormatPercentage(tb.RealTaxRate)),
	}, "\n")
	fmt.Fprintln(&buf, cardStyle.Render(above))
	fmt.Fprintln(&buf, waterStyle.Render(below))
	if b.TotalIncome.GreaterThan(decimal.Zero) {
		fmt.Fprintln(&buf, mutedStyle.Render(fmt.Sprintf(
			"Every time you spend 10 kr of your income, %s kr goes to the government.",
			tb.StatePer10Kroner.StringFixed(2))))
	}

	if c.Verbose {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS"))
		if rt, err := rules.ForYear(b.TaxYear); err == nil {
			for _, a := range Assumptions(rt) {
				fmt.Fprintf(&buf, "• %s\n", a)
			}
		}
	}

	return buf.Bytes(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func line(label, value string) string {
	return fmt.Sprintf("%-26s %16s", label+":", value)
}
