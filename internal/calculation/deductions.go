package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionSet is every deduction computed for one input
type DeductionSet struct {
	Minimum             decimal.Decimal
	Mortgage            decimal.Decimal
	Property            decimal.Decimal
	Parental            decimal.Decimal
	ParentalBenefit     decimal.Decimal
	Disability          decimal.Decimal
	ContributionCredits decimal.Decimal
	OtherCredits        decimal.Decimal
	Travel              decimal.Decimal
}

// Total sums the set; the minimum deduction is counted once
func (d DeductionSet) Total() decimal.Decimal {
	return d.Minimum.
		Add(d.Mortgage).
		Add(d.Property).
		Add(d.Parental).
		Add(d.ParentalBenefit).
		Add(d.Disability).
		Add(d.ContributionCredits).
		Add(d.OtherCredits).
		Add(d.Travel)
}

// CalculateMinimumDeduction returns minstefradrag: a share of income up to a
// ceiling, both chosen by civil status
func CalculateMinimumDeduction(totalIncome decimal.Decimal, status domain.CivilStatus, r domain.MinimumDeductionRules) decimal.Decimal {
	rule := r.Single
	if status.IsMarried() {
		rule = r.Married
	}
	return capped(totalIncome.Mul(rule.Rate), rule.Cap)
}

// CalculatePropertyDeduction applies only to taxpayers who own their home
func CalculatePropertyDeduction(hasOwnHome bool, propertyValue decimal.Decimal, r domain.CappedRate) decimal.Decimal {
	if !hasOwnHome {
		return decimal.Zero
	}
	return capped(propertyValue.Mul(r.Rate), r.Cap)
}

// CalculateParentalDeduction returns the child staircase: a fixed amount for
// the first child plus a smaller amount for each additional child
func CalculateParentalDeduction(hasChildren bool, children int, r domain.ParentalRules) decimal.Decimal {
	if !hasChildren || children <= 0 {
		return decimal.Zero
	}
	return r.FirstChild.Add(r.AdditionalChild.Mul(decimal.NewFromInt(int64(children - 1))))
}

// CalculateTravelDeduction returns the capped commuter, home-visit and
// toll/ferry total. Each part is floored at zero before summing.
func CalculateTravelDeduction(t domain.TravelExpenses, r domain.TravelRules) decimal.Decimal {
	commuter := decimal.Max(decimal.Zero,
		t.TripsPerYear.Mul(t.KilometersPerTrip).Mul(r.RatePerKilometer).Sub(r.CommuterThreshold))
	homeVisit := decimal.Max(decimal.Zero, t.HomeVisits.Sub(r.HomeVisitThreshold))
	return decimal.Min(r.Cap, commuter.Add(homeVisit).Add(t.TollAndFerry)).Round(2)
}

// contributionAmount looks up the Deductions field a contribution rule names
func contributionAmount(d domain.Deductions, field string) (decimal.Decimal, error) {
	switch field {
	case "union_fee":
		return d.UnionFee, nil
	case "ips":
		return d.IPS, nil
	case "bsu":
		return d.BSU, nil
	case "other_deductions":
		return d.OtherDeductions, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown contribution field %q", field)
	}
}

// CalculateContributionCredits applies each (field, cap, credit rate) rule.
// The other_deductions credit is returned separately so it can be reported on
// its own line.
func CalculateContributionCredits(d domain.Deductions, rules []domain.ContributionRule) (contributions, other decimal.Decimal, err error) {
	for _, rule := range rules {
		amount, err := contributionAmount(d, rule.Field)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if rule.Cap != nil {
			amount = capped(amount, *rule.Cap)
		}
		credit := amount.Mul(rule.CreditRate)
		if rule.Field == "other_deductions" {
			other = other.Add(credit)
		} else {
			contributions = contributions.Add(credit)
		}
	}
	return contributions.Round(2), other.Round(2), nil
}

// CalculateDeductions computes every deduction for a normalized input
func CalculateDeductions(in *domain.TaxInput, totalIncome decimal.Decimal, r *domain.TaxYearRules) (DeductionSet, error) {
	contrib, other, err := CalculateContributionCredits(in.Deductions, r.Contributions)
	if err != nil {
		return DeductionSet{}, err
	}

	return DeductionSet{
		Minimum:             CalculateMinimumDeduction(totalIncome, in.PersonalInfo.CivilStatus, r.MinimumDeduction).Round(2),
		Mortgage:            in.Financial.InterestExpenses.Mul(r.MortgageInterestRate).Round(2),
		Property:            CalculatePropertyDeduction(in.PersonalInfo.HasOwnHome, in.Financial.PrimaryResidenceValue, r.Property).Round(2),
		Parental:            CalculateParentalDeduction(in.PersonalInfo.HasChildren, in.Deductions.NumberOfChildren, r.Parental),
		ParentalBenefit:     in.Income.MaternityBenefits.Mul(r.BenefitDeductions.ParentalBenefitRate).Round(2),
		Disability:          in.Income.DisabilityPension.Mul(r.BenefitDeductions.DisabilityRate).Round(2),
		ContributionCredits: contrib,
		OtherCredits:        other,
		Travel:              CalculateTravelDeduction(in.TravelExpenses, r.Travel),
	}, nil
}

func capped(v, limit decimal.Decimal) decimal.Decimal {
	return decimal.Min(v, limit)
}
