package calculation

import (
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/rules"
	"github.com/shopspring/decimal"
)

// Logger is the printf-style logger the engine reports through.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// CalculationEngine turns a TaxInput into a TaxBreakdown. After construction it
// holds only read-only rule tables, so one engine may serve concurrent callers.
type CalculationEngine struct {
	rules  *domain.TaxYearRules // fixed rules; nil selects by the input's tax year
	logger Logger
	Debug  bool // Log intermediate figures
}

// NewCalculationEngine creates an engine that picks the rule table by each
// input's tax year
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{logger: nopLogger{}}
}

// NewCalculationEngineWithRules creates an engine bound to one rule table
func NewCalculationEngineWithRules(r *domain.TaxYearRules) *CalculationEngine {
	return &CalculationEngine{rules: r, logger: nopLogger{}}
}

// SetLogger sets the engine logger; nil disables logging
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	ce.logger = l
}

// RulesFor returns the rule table used for a given tax year
func (ce *CalculationEngine) RulesFor(year int) (*domain.TaxYearRules, error) {
	if ce.rules != nil {
		if year != 0 && year != ce.rules.Metadata.TaxYear {
			return nil, &CalculationError{
				Operation: "select_rules",
				Message:   "engine is bound to a different tax year",
			}
		}
		return ce.rules, nil
	}
	r, err := rules.ForYear(year)
	if err != nil {
		return nil, &CalculationError{Operation: "select_rules", Message: "no rule table", Cause: err}
	}
	return r, nil
}

// ComputeBreakdown calculates the tax breakdown for an annualized input.
// Missing amounts count as zero; the only errors are missing or malformed rule
// tables, reported as *CalculationError.
func (ce *CalculationEngine) ComputeBreakdown(input domain.TaxInput) (domain.TaxBreakdown, error) {
	r, err := ce.RulesFor(input.TaxYear)
	if err != nil {
		return domain.TaxBreakdown{}, err
	}

	in := Normalize(input, r)

	// Step 1: total income
	totalIncome := CalculateTotalIncome(&in)

	// Step 2: trinnskatt
	brackets := NewProgressiveSchedule(r.BracketTax)
	bracketTax := brackets.Tax(totalIncome).Round(2)

	// Step 3: flat levies
	insurance := FlatLevy{Rate: r.InsuranceRate}.Amount(totalIncome).Round(2)
	commonTax := FlatLevy{Rate: r.CommonTaxRate}.Amount(totalIncome).Round(2)

	// Step 4: deductions
	deductions, err := CalculateDeductions(&in, totalIncome, r)
	if err != nil {
		return domain.TaxBreakdown{}, &CalculationError{Operation: "deductions", Message: "invalid contribution rule", Cause: err}
	}
	totalDeductions := deductions.Total()

	// Step 5: wealth tax
	netWealth := NetWealth(in.Financial)
	wealthTax := NewWealthTaxCalculator(r.Wealth).CalculateWealthTax(netWealth)

	// Step 6: aggregation
	gross := bracketTax.Add(insurance).Add(commonTax).Add(wealthTax)
	totalTax := decimal.Max(decimal.Zero, gross.Sub(totalDeductions))

	averageRate := decimal.Zero
	if totalIncome.GreaterThan(decimal.Zero) {
		averageRate = totalTax.Div(totalIncome).Mul(hundred).Round(2)
	}

	b := domain.TaxBreakdown{
		TaxYear:                  r.Metadata.TaxYear,
		TotalIncome:              totalIncome,
		BracketTax:               bracketTax,
		InsuranceContribution:    insurance,
		CommonTax:                commonTax,
		StandardDeduction:        deductions.Minimum,
		MinimumDeduction:         deductions.Minimum,
		MortgageDeduction:        deductions.Mortgage,
		PropertyDeduction:        deductions.Property,
		ParentalDeduction:        deductions.Parental,
		ParentalBenefitDeduction: deductions.ParentalBenefit,
		DisabilityDeduction:      deductions.Disability,
		ContributionCredits:      deductions.ContributionCredits,
		TravelDeduction:          deductions.Travel,
		OtherDeductions:          deductions.OtherCredits,
		NetWealth:                netWealth,
		WealthTax:                wealthTax,
		TotalDeductions:          totalDeductions,
		IncomeAfterDeductions:    decimal.Max(decimal.Zero, totalIncome.Sub(totalDeductions)),
		TotalTax:                 totalTax,
		NetPay:                   totalIncome.Sub(totalTax),
		MarginalTaxRate:          toPercent(brackets.MarginalRate(totalIncome)),
		AverageTaxRate:           averageRate,
	}

	if ce.Debug {
		ce.logger.Debugf("tax year %d: income=%s bracket=%s insurance=%s common=%s wealth=%s deductions=%s total=%s",
			b.TaxYear, totalIncome.StringFixed(2), bracketTax.StringFixed(2), insurance.StringFixed(2),
			commonTax.StringFixed(2), wealthTax.StringFixed(2), totalDeductions.StringFixed(2), totalTax.StringFixed(2))
	}

	return b, nil
}

// Annotate writes a breakdown back into the derived fields of the input record
// the way the calculator form displays them. Withholding is the average rate
// rounded up to a whole percent.
func Annotate(input domain.TaxInput, b domain.TaxBreakdown) domain.TaxInput {
	out := *input.DeepCopy()

	out.Deductions.StandardDeduction = b.StandardDeduction
	out.Deductions.ParentalDeduction = b.ParentalDeduction
	out.Deductions.TotalDeductions = b.TotalDeductions
	out.Deductions.IncomeAfterDeductions = b.IncomeAfterDeductions
	out.TravelExpenses.TotalTravelExpenses = b.TravelDeduction

	out.Financial.SocialSecurityContribution = b.InsuranceContribution
	out.Financial.GeneralIncomeTax = b.CommonTax
	out.Financial.BracketTax = b.BracketTax
	out.Financial.WealthTax = b.WealthTax
	out.Financial.TotalTax = b.TotalTax
	out.Financial.WithholdingPercentage = b.AverageTaxRate.Ceil()
	if out.TaxYear == 0 {
		out.TaxYear = b.TaxYear
	}
	return out
}
