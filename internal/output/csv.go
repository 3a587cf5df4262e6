package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"
)

// CSVFormatter writes one field,value row per breakdown and taxberg figure
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Field", "Value"}); err != nil {
		return nil, err
	}

	b := r.Breakdown
	tb := r.Taxberg
	rows := []struct {
		field string
		value decimal.Decimal
	}{
		{"totalIncome", b.TotalIncome},
		{"bracketTax", b.BracketTax},
		{"insuranceContribution", b.InsuranceContribution},
		{"commonTax", b.CommonTax},
		{"standardDeduction", b.StandardDeduction},
		{"minimumDeduction", b.MinimumDeduction},
		{"mortgageDeduction", b.MortgageDeduction},
		{"propertyDeduction", b.PropertyDeduction},
		{"parentalDeduction", b.ParentalDeduction},
		{"parentalBenefitDeduction", b.ParentalBenefitDeduction},
		{"disabilityDeduction", b.DisabilityDeduction},
		{"contributionCredits", b.ContributionCredits},
		{"travelDeduction", b.TravelDeduction},
		{"otherDeductions", b.OtherDeductions},
		{"netWealth", b.NetWealth},
		{"wealthTax", b.WealthTax},
		{"totalDeductions", b.TotalDeductions},
		{"incomeAfterDeductions", b.IncomeAfterDeductions},
		{"totalTax", b.TotalTax},
		{"netPay", b.NetPay},
		{"marginalTaxRate", b.MarginalTaxRate},
		{"averageTaxRate", b.AverageTaxRate},
		{"employerContribution", tb.EmployerContribution},
		{"totalTaxPaid", tb.TotalTaxPaid},
		{"realTaxRate", tb.RealTaxRate},
	}

	if err := w.Write([]string{"taxYear", strconv.Itoa(b.TaxYear)}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.field, row.value.StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
