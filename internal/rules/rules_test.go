package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForYear_2025(t *testing.T) {
	r, err := ForYear(2025)
	require.NoError(t, err)

	assert.Equal(t, 2025, r.Metadata.TaxYear)
	require.Len(t, r.BracketTax, 6)
	assert.True(t, r.BracketTax[0].UpTo.Equal(decimal.NewFromInt(217400)))
	assert.True(t, r.BracketTax[1].Rate.Equal(decimal.RequireFromString("0.017")))
	assert.Nil(t, r.BracketTax[5].UpTo, "top bracket is open-ended")
	assert.True(t, r.BracketTax[5].Rate.Equal(decimal.RequireFromString("0.177")))

	assert.True(t, r.InsuranceRate.Equal(decimal.RequireFromString("0.082")))
	assert.True(t, r.CommonTaxRate.Equal(decimal.RequireFromString("0.22")))
	assert.True(t, r.MinimumDeduction.Single.Cap.Equal(decimal.NewFromInt(109950)))
	assert.True(t, r.MinimumDeduction.Married.Cap.Equal(decimal.NewFromInt(87550)))

	require.Len(t, r.Contributions, 4)
	assert.Equal(t, "bsu", r.Contributions[2].Field)
	assert.Nil(t, r.Contributions[3].Cap)

	require.Len(t, r.Wealth, 2)
	assert.Equal(t, "municipal", r.Wealth[0].Name)
	assert.Equal(t, "state", r.Wealth[1].Name)
}

func TestForYear_DefaultAndUnknown(t *testing.T) {
	r, err := ForYear(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultYear, r.Metadata.TaxYear)

	_, err = ForYear(1999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tax rules for year 1999")
}

func TestYears(t *testing.T) {
	assert.Contains(t, Years(), 2025)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("metadata: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse rules YAML")

	_, err = Parse([]byte("metadata:\n  tax_year: 2030\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bracket_tax")
}
