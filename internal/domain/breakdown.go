package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBreakdown is the result of a single tax computation. Amounts are annual NOK,
// rates are percentages (4.0 means 4%).
type TaxBreakdown struct {
	TaxYear int `json:"taxYear"`

	// Base calculation
	TotalIncome           decimal.Decimal `json:"totalIncome"`
	BracketTax            decimal.Decimal `json:"bracketTax"`
	InsuranceContribution decimal.Decimal `json:"insuranceContribution"`
	CommonTax             decimal.Decimal `json:"commonTax"`

	// Deductions
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	MinimumDeduction  decimal.Decimal `json:"minimumDeduction"`
	MortgageDeduction decimal.Decimal `json:"mortgageDeduction"`
	PropertyDeduction decimal.Decimal `json:"propertyDeduction"`
	ParentalDeduction decimal.Decimal `json:"parentalDeduction"`

	// Special calculations
	ParentalBenefitDeduction decimal.Decimal `json:"parentalBenefitDeduction"`
	DisabilityDeduction      decimal.Decimal `json:"disabilityDeduction"`
	ContributionCredits      decimal.Decimal `json:"contributionCredits"`
	TravelDeduction          decimal.Decimal `json:"travelDeduction"`
	OtherDeductions          decimal.Decimal `json:"otherDeductions"`

	// Wealth
	NetWealth decimal.Decimal `json:"netWealth"`
	WealthTax decimal.Decimal `json:"wealthTax"`

	// Final calculations
	TotalDeductions       decimal.Decimal `json:"totalDeductions"`
	IncomeAfterDeductions decimal.Decimal `json:"incomeAfterDeductions"`
	TotalTax              decimal.Decimal `json:"totalTax"`
	NetPay                decimal.Decimal `json:"netPay"`
	MarginalTaxRate       decimal.Decimal `json:"marginalTaxRate"`
	AverageTaxRate        decimal.Decimal `json:"averageTaxRate"`
}

// GrossTax returns the tax before deductions are subtracted
func (b TaxBreakdown) GrossTax() decimal.Decimal {
	return b.BracketTax.Add(b.InsuranceContribution).Add(b.CommonTax).Add(b.WealthTax)
}
