package output

import (
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/rules"
	"github.com/shopspring/decimal"
)

// defaultEmployerRate is used when the breakdown's tax year has no rule table
var defaultEmployerRate = decimal.RequireFromString("0.141")

var (
	hundred = decimal.NewFromInt(100)
	ten     = decimal.NewFromInt(10)
)

// Taxberg holds the figures of the iceberg view: what the taxpayer sees above
// the water and the employer contribution hidden below it
type Taxberg struct {
	NetPay               decimal.Decimal
	TaxYouPay            decimal.Decimal
	EmployerContribution decimal.Decimal
	TotalTaxPaid         decimal.Decimal
	RealTaxRate          decimal.Decimal // percent of income plus employer contribution
	StatePer10Kroner     decimal.Decimal // kroner to the state per 10 kroner earned
	Shares               TaxShares
}

// TaxShares is each income tax component as a percentage of total tax
type TaxShares struct {
	BracketTax            decimal.Decimal
	InsuranceContribution decimal.Decimal
	CommonTax             decimal.Decimal
}

// NewTaxberg derives the iceberg figures from a breakdown. Employer
// contribution (arbeidsgiveravgift) is charged on salary only.
func NewTaxberg(b domain.TaxBreakdown, salary decimal.Decimal) Taxberg {
	rate := defaultEmployerRate
	if r, err := rules.ForYear(b.TaxYear); err == nil {
		rate = r.EmployerContribution.Rate
	}

	employer := decimal.Max(decimal.Zero, salary).Mul(rate).Round(2)
	totalPaid := b.TotalTax.Add(employer)

	tb := Taxberg{
		NetPay:               b.NetPay,
		TaxYouPay:            b.TotalTax,
		EmployerContribution: employer,
		TotalTaxPaid:         totalPaid,
		RealTaxRate:          decimal.Zero,
		StatePer10Kroner:     decimal.Zero,
		Shares:               CalculateTaxShares(b),
	}

	if base := b.TotalIncome.Add(employer); base.GreaterThan(decimal.Zero) {
		tb.RealTaxRate = totalPaid.Div(base).Mul(hundred).Round(2)
	}
	if b.TotalIncome.GreaterThan(decimal.Zero) {
		tb.StatePer10Kroner = totalPaid.Div(b.TotalIncome).Mul(ten).Round(2)
	}
	return tb
}

// CalculateTaxShares returns bracket, insurance and common tax relative to
// total tax. All shares are zero when no tax is due.
func CalculateTaxShares(b domain.TaxBreakdown) TaxShares {
	if !b.TotalTax.GreaterThan(decimal.Zero) {
		return TaxShares{}
	}
	share := func(v decimal.Decimal) decimal.Decimal {
		return v.Div(b.TotalTax).Mul(hundred).Round(2)
	}
	return TaxShares{
		BracketTax:            share(b.BracketTax),
		InsuranceContribution: share(b.InsuranceContribution),
		CommonTax:             share(b.CommonTax),
	}
}
