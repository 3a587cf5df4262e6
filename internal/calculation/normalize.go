package calculation

import (
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// periodFields returns the income amounts that are entered per pay period
func periodFields(in *domain.TaxInput) []*decimal.Decimal {
	return []*decimal.Decimal{
		&in.Income.Salary,
		&in.Income.DisabilityPension,
		&in.Income.WorkAssessmentAllowance,
		&in.Income.UnemploymentBenefits,
		&in.Income.MaternityBenefits,
		&in.Income.SicknessBenefits,
		&in.Income.EmployerBenefits,
		&in.Income.Dividend,
		&in.Income.OtherIncome,
		&in.BusinessIncome.FishingAgricultureIncome,
		&in.BusinessIncome.OtherBusinessIncome,
		&in.BusinessIncome.BusinessProfit,
		&in.BusinessIncome.BusinessLoss,
	}
}

// enteredFields returns every user-entered money amount (derived fields excluded)
func enteredFields(in *domain.TaxInput) []*decimal.Decimal {
	fields := periodFields(in)
	return append(fields,
		&in.Deductions.UnionFee,
		&in.Deductions.IPS,
		&in.Deductions.BSU,
		&in.Deductions.OtherDeductions,
		&in.TravelExpenses.TripsPerYear,
		&in.TravelExpenses.KilometersPerTrip,
		&in.TravelExpenses.HomeVisits,
		&in.TravelExpenses.TollAndFerry,
		&in.Financial.TotalBankBalance,
		&in.Financial.InvestmentValue,
		&in.Financial.PrimaryResidenceValue,
		&in.Financial.SecondaryResidenceValue,
		&in.Financial.VehicleValue,
		&in.Financial.BoatValue,
		&in.Financial.MortgageShare,
		&in.Financial.TotalMortgage,
		&in.Financial.CarLoan,
		&in.Financial.StudentLoan,
		&in.Financial.ConsumerLoan,
		&in.Financial.OtherLoans,
		&in.Financial.InterestIncome,
		&in.Financial.InterestExpenses,
	)
}

// Annualize converts period-denominated income to annual amounts and marks the
// input as Annual. Calling it on an annual input is a no-op.
func Annualize(in domain.TaxInput) domain.TaxInput {
	out := *in.DeepCopy()
	factor := out.Period.AnnualFactor()
	if factor.Equal(decimal.NewFromInt(1)) {
		out.Period = domain.PeriodAnnual
		return out
	}
	for _, f := range periodFields(&out) {
		*f = f.Mul(factor)
	}
	out.Period = domain.PeriodAnnual
	return out
}

// Normalize returns a copy of the input with negative amounts clamped to zero,
// enum defaults filled in and every derived total recomputed. Rules are needed
// for the derived parental deduction and travel total.
func Normalize(in domain.TaxInput, r *domain.TaxYearRules) domain.TaxInput {
	out := *in.DeepCopy()

	for _, f := range enteredFields(&out) {
		if f.IsNegative() {
			*f = decimal.Zero
		}
	}
	if out.Deductions.NumberOfChildren < 0 {
		out.Deductions.NumberOfChildren = 0
	}
	if out.PersonalInfo.NumberOfDependents < 0 {
		out.PersonalInfo.NumberOfDependents = 0
	}
	if out.PersonalInfo.CivilStatus == "" {
		out.PersonalInfo.CivilStatus = domain.CivilStatusSingle
	}
	if out.Period == "" {
		out.Period = domain.PeriodAnnual
	}
	if out.Location == "" {
		out.Location = "Norway"
	}

	biz := &out.BusinessIncome
	biz.TotalIncome = decimal.Max(decimal.Zero,
		biz.FishingAgricultureIncome.Add(biz.OtherBusinessIncome).Add(biz.BusinessProfit).Sub(biz.BusinessLoss))

	fin := &out.Financial
	fin.TotalAssets = fin.TotalBankBalance.
		Add(fin.InvestmentValue).
		Add(fin.PrimaryResidenceValue).
		Add(fin.SecondaryResidenceValue).
		Add(fin.VehicleValue).
		Add(fin.BoatValue)
	fin.TotalDebt = OwnedMortgage(*fin).
		Add(fin.CarLoan).
		Add(fin.StudentLoan).
		Add(fin.ConsumerLoan).
		Add(fin.OtherLoans)

	out.Deductions.ParentalDeduction = CalculateParentalDeduction(out.PersonalInfo.HasChildren, out.Deductions.NumberOfChildren, r.Parental)
	out.TravelExpenses.TotalTravelExpenses = CalculateTravelDeduction(out.TravelExpenses, r.Travel)

	return out
}

// OwnedMortgage returns the taxpayer's share of the mortgage. A share of zero
// means the whole mortgage; shares above 100% are capped.
func OwnedMortgage(fin domain.Financial) decimal.Decimal {
	share := fin.MortgageShare
	if share.LessThanOrEqual(decimal.Zero) || share.GreaterThanOrEqual(hundred) {
		return fin.TotalMortgage
	}
	return fin.TotalMortgage.Mul(share).Div(hundred)
}
