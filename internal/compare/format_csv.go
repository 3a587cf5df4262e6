package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Gross Income",
		"Total Tax",
		"Net Pay",
		"Average Rate",
		"Marginal Rate",
		"Wealth Tax",
		"Net Pay Diff from Base",
		"Net Pay % Change",
		"Tax Diff from Base",
		"Average Rate Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.GrossIncome.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.NetPay.StringFixed(2),
		result.AverageTaxRate.StringFixed(2),
		result.MarginalTaxRate.StringFixed(2),
		result.WealthTax.StringFixed(2),
		result.NetPayDiffFromBase.StringFixed(2),
		result.NetPayPctFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.AverageRateDiff.StringFixed(2),
	}
}
