package output

import (
	"testing"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewTaxberg(t *testing.T) {
	b := domain.TaxBreakdown{
		TaxYear:               2025,
		TotalIncome:           dec("500000"),
		BracketTax:            dec("9265.05"),
		InsuranceContribution: dec("41000"),
		CommonTax:             dec("110000"),
		TotalTax:              dec("50315.05"),
		NetPay:                dec("449684.95"),
	}

	tb := NewTaxberg(b, dec("500000"))

	assert.True(t, dec("449684.95").Equal(tb.NetPay))
	assert.True(t, dec("50315.05").Equal(tb.TaxYouPay))
	assert.True(t, dec("70500").Equal(tb.EmployerContribution))
	assert.True(t, dec("120815.05").Equal(tb.TotalTaxPaid))
	assert.True(t, dec("21.18").Equal(tb.RealTaxRate), "real rate: %s", tb.RealTaxRate)
	assert.True(t, dec("2.42").Equal(tb.StatePer10Kroner), "per 10 kr: %s", tb.StatePer10Kroner)
	assert.True(t, dec("18.41").Equal(tb.Shares.BracketTax), "bracket share: %s", tb.Shares.BracketTax)
	assert.True(t, dec("81.49").Equal(tb.Shares.InsuranceContribution))
}

func TestNewTaxberg_NoIncome(t *testing.T) {
	tb := NewTaxberg(domain.TaxBreakdown{}, decimal.Zero)

	assert.True(t, tb.EmployerContribution.IsZero())
	assert.True(t, tb.RealTaxRate.IsZero())
	assert.True(t, tb.StatePer10Kroner.IsZero())
	assert.Equal(t, TaxShares{}, tb.Shares)
}

func TestNewTaxberg_UnknownYearUsesDefaultRate(t *testing.T) {
	tb := NewTaxberg(domain.TaxBreakdown{TaxYear: 1990}, dec("100000"))

	assert.True(t, dec("14100").Equal(tb.EmployerContribution))
}
