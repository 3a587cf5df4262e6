package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/rules"
	"github.com/shopspring/decimal"
)

// Assumptions lists the modelling assumptions of a tax year in plain words for
// the detailed outputs
func Assumptions(r *domain.TaxYearRules) []string {
	if r == nil {
		return nil
	}
	out := []string{
		fmt.Sprintf("Rules for income year %d (%s)", r.Metadata.TaxYear, r.Metadata.Description),
		"Amounts are annual; period amounts are multiplied up before calculation",
		"Total income counts " + strings.Join(calculation.IncomeSourceKeys(), ", "),
		fmt.Sprintf("Trinnskatt: %s", describeSchedule(r.BracketTax)),
		fmt.Sprintf("Trygdeavgift %s and fellesskatt %s of total income", rate(r.InsuranceRate), rate(r.CommonTaxRate)),
		fmt.Sprintf("Minimum deduction %s capped at %s (married %s capped at %s)",
			rate(r.MinimumDeduction.Single.Rate), FormatCurrency(r.MinimumDeduction.Single.Cap),
			rate(r.MinimumDeduction.Married.Rate), FormatCurrency(r.MinimumDeduction.Married.Cap)),
	}
	for _, c := range r.Wealth {
		out = append(out, fmt.Sprintf("Wealth tax (%s): %s", c.Name, describeSchedule(c.Brackets)))
	}
	out = append(out,
		"Deductions are subtracted from the computed tax; total tax never goes below zero",
		fmt.Sprintf("Employer contribution %s of salary, shown in the taxberg only", rate(r.EmployerContribution.Rate)),
	)
	return out
}

// DefaultAssumptions returns the assumptions of the default tax year
func DefaultAssumptions() []string {
	r, err := rules.ForYear(rules.DefaultYear)
	if err != nil {
		return nil
	}
	return Assumptions(r)
}

func describeSchedule(brackets []domain.Bracket) string {
	parts := make([]string, 0, len(brackets))
	lower := decimal.Zero
	for _, b := range brackets {
		if b.UpTo == nil {
			parts = append(parts, fmt.Sprintf("%s above %s", rate(b.Rate), FormatCurrency(lower)))
			break
		}
		if !b.Rate.IsZero() {
			parts = append(parts, fmt.Sprintf("%s to %s", rate(b.Rate), FormatCurrency(*b.UpTo)))
		}
		lower = *b.UpTo
	}
	return strings.Join(parts, ", ")
}

func rate(r decimal.Decimal) string {
	return r.Mul(hundred).String() + "%"
}
