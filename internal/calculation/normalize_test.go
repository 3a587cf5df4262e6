package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	r, err := rules.ForYear(0)
	require.NoError(t, err)

	in := domain.TaxInput{}
	in.Income.Salary = d("-1000")
	in.Deductions.NumberOfChildren = -2
	in.PersonalInfo.HasChildren = true
	in.BusinessIncome.FishingAgricultureIncome = d("100000")
	in.BusinessIncome.BusinessProfit = d("20000")
	in.BusinessIncome.BusinessLoss = d("50000")
	in.Financial.TotalBankBalance = d("100000")
	in.Financial.VehicleValue = d("50000")
	in.Financial.TotalMortgage = d("2000000")
	in.Financial.MortgageShare = d("25")
	in.Financial.StudentLoan = d("300000")
	in.TravelExpenses.HomeVisits = d("4300")

	out := Normalize(in, r)

	assert.True(t, out.Income.Salary.IsZero())
	assert.Equal(t, 0, out.Deductions.NumberOfChildren)
	assert.True(t, out.Deductions.ParentalDeduction.IsZero())
	assert.Equal(t, domain.CivilStatusSingle, out.PersonalInfo.CivilStatus)
	assert.Equal(t, domain.PeriodAnnual, out.Period)
	assert.Equal(t, "Norway", out.Location)
	assert.True(t, d("70000").Equal(out.BusinessIncome.TotalIncome))
	assert.True(t, d("150000").Equal(out.Financial.TotalAssets))
	assert.True(t, d("800000").Equal(out.Financial.TotalDebt))
	assert.True(t, d("1000").Equal(out.TravelExpenses.TotalTravelExpenses))
}

func TestNormalize_BusinessLossFloorsAtZero(t *testing.T) {
	r, err := rules.ForYear(0)
	require.NoError(t, err)

	in := domain.NewTaxInput()
	in.BusinessIncome.OtherBusinessIncome = d("10000")
	in.BusinessIncome.BusinessLoss = d("60000")

	out := Normalize(in, r)

	assert.True(t, out.BusinessIncome.TotalIncome.IsZero())
}

func TestOwnedMortgage(t *testing.T) {
	tests := []struct {
		share string
		want  string
	}{
		{"0", "1000000"},
		{"50", "500000"},
		{"100", "1000000"},
		{"150", "1000000"},
	}
	for _, tt := range tests {
		fin := domain.Financial{TotalMortgage: d("1000000"), MortgageShare: d(tt.share)}
		assert.True(t, d(tt.want).Equal(OwnedMortgage(fin)), "share %s", tt.share)
	}
}

func TestAnnualize(t *testing.T) {
	in := domain.NewTaxInput()
	in.Period = domain.PeriodMonth
	in.Income.Salary = d("50000")
	in.BusinessIncome.OtherBusinessIncome = d("1000")
	in.Deductions.UnionFee = d("500")

	out := Annualize(in)

	assert.Equal(t, domain.PeriodAnnual, out.Period)
	assert.True(t, d("600000").Equal(out.Income.Salary))
	assert.True(t, d("12000").Equal(out.BusinessIncome.OtherBusinessIncome))
	assert.True(t, d("500").Equal(out.Deductions.UnionFee), "deductions are already annual")
	assert.Equal(t, domain.PeriodMonth, in.Period, "input left untouched")

	again := Annualize(out)
	assert.True(t, d("600000").Equal(again.Income.Salary))
}

func TestAnnualize_Hourly(t *testing.T) {
	in := domain.NewTaxInput()
	in.Period = domain.PeriodHour
	in.Income.Salary = d("250")

	out := Annualize(in)

	assert.True(t, d("480000").Equal(out.Income.Salary))
}

func TestIncomeSourceKeys(t *testing.T) {
	assert.Equal(t, []string{
		"income.salary",
		"businessIncome.fishingAgricultureIncome",
		"businessIncome.otherBusinessIncome",
		"income.dividend",
		"income.otherIncome",
	}, IncomeSourceKeys())
}
