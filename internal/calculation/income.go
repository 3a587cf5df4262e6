package calculation

import (
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// IncomeSource names one input field that counts toward total income
type IncomeSource struct {
	Key    string
	Amount func(in *domain.TaxInput) decimal.Decimal
}

// IncomeSources is the canonical list of fields summed into total income.
// State benefits (disability pension, allowances, sickness and maternity pay)
// and business profit/loss are deliberately absent; edit this table to change
// what counts.
var IncomeSources = []IncomeSource{
	{Key: "income.salary", Amount: func(in *domain.TaxInput) decimal.Decimal { return in.Income.Salary }},
	{Key: "businessIncome.fishingAgricultureIncome", Amount: func(in *domain.TaxInput) decimal.Decimal { return in.BusinessIncome.FishingAgricultureIncome }},
	{Key: "businessIncome.otherBusinessIncome", Amount: func(in *domain.TaxInput) decimal.Decimal { return in.BusinessIncome.OtherBusinessIncome }},
	{Key: "income.dividend", Amount: func(in *domain.TaxInput) decimal.Decimal { return in.Income.Dividend }},
	{Key: "income.otherIncome", Amount: func(in *domain.TaxInput) decimal.Decimal { return in.Income.OtherIncome }},
}

// IncomeSourceKeys returns the keys of IncomeSources in order
func IncomeSourceKeys() []string {
	keys := make([]string, len(IncomeSources))
	for i, s := range IncomeSources {
		keys[i] = s.Key
	}
	return keys
}

// CalculateTotalIncome sums the canonical income sources, rounded to øre
func CalculateTotalIncome(in *domain.TaxInput) decimal.Decimal {
	total := decimal.Zero
	for _, s := range IncomeSources {
		total = total.Add(s.Amount(in))
	}
	return total.Round(2)
}
