package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/output"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string              `json:"scenarioName"`
	Description  string              `json:"description,omitempty"`
	Breakdown    domain.TaxBreakdown `json:"-"`

	// Key Metrics
	GrossIncome     decimal.Decimal `json:"grossIncome"`
	TotalTax        decimal.Decimal `json:"totalTax"`
	NetPay          decimal.Decimal `json:"netPay"`
	AverageTaxRate  decimal.Decimal `json:"averageTaxRate"`
	MarginalTaxRate decimal.Decimal `json:"marginalTaxRate"`
	WealthTax       decimal.Decimal `json:"wealthTax"`

	// Comparison to Base
	NetPayDiffFromBase decimal.Decimal  `json:"netPayDiffFromBase"`
	NetPayPctFromBase  decimal.Decimal  `json:"netPayPctFromBase"`
	TaxDiffFromBase    decimal.Decimal  `json:"taxDiffFromBase"`
	AverageRateDiff    decimal.Decimal  `json:"averageRateDiff"`
	KeepPerExtraKrone  *decimal.Decimal `json:"keepPerExtraKrone,omitempty"` // nil unless gross income changed
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath,omitempty"`
	TaxYear            int                `json:"taxYear"`
}

// MetricsCalculator extracts key metrics from breakdowns
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one breakdown
func (mc *MetricsCalculator) CalculateMetrics(name string, b domain.TaxBreakdown) ComparisonResult {
	return ComparisonResult{
		ScenarioName:    name,
		Breakdown:       b,
		GrossIncome:     b.TotalIncome,
		TotalTax:        b.TotalTax,
		NetPay:          b.NetPay,
		AverageTaxRate:  b.AverageTaxRate,
		MarginalTaxRate: b.MarginalTaxRate,
		WealthTax:       b.WealthTax,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base.
// When gross income changed, KeepPerExtraKrone is how much of each extra krone
// ends up as net pay.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.NetPayDiffFromBase = scenario.NetPay.Sub(base.NetPay)

	if !base.NetPay.IsZero() {
		scenario.NetPayPctFromBase = scenario.NetPayDiffFromBase.
			Div(base.NetPay).
			Mul(hundred).
			Round(2)
	}

	scenario.TaxDiffFromBase = scenario.TotalTax.Sub(base.TotalTax)
	scenario.AverageRateDiff = scenario.AverageTaxRate.Sub(base.AverageTaxRate)

	grossDiff := scenario.GrossIncome.Sub(base.GrossIncome)
	if !grossDiff.IsZero() {
		keep := scenario.NetPayDiffFromBase.Div(grossDiff).Round(2)
		scenario.KeepPerExtraKrone = &keep
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by net pay
	bestNet := base
	for i := range compSet.AlternativeResults {
		if alt := &compSet.AlternativeResults[i]; alt.NetPay.GreaterThan(bestNet.NetPay) {
			bestNet = alt
		}
	}
	if bestNet != base {
		recommendations = append(recommendations,
			"Best Net Pay: "+bestNet.ScenarioName+" leaves "+output.FormatCurrency(bestNet.NetPay.Sub(base.NetPay))+
				" more a year than the base scenario")
	}

	// Find lowest tax bill
	lowestTax := base
	for i := range compSet.AlternativeResults {
		if alt := &compSet.AlternativeResults[i]; alt.TotalTax.LessThan(lowestTax.TotalTax) {
			lowestTax = alt
		}
	}
	if lowestTax != base {
		recommendations = append(recommendations,
			"Lowest Tax: "+lowestTax.ScenarioName+" saves "+output.FormatCurrency(base.TotalTax.Sub(lowestTax.TotalTax))+
				" in tax")
	}

	// Find lowest average rate
	lowestRate := base
	for i := range compSet.AlternativeResults {
		if alt := &compSet.AlternativeResults[i]; alt.AverageTaxRate.LessThan(lowestRate.AverageTaxRate) {
			lowestRate = alt
		}
	}
	if lowestRate != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Average Rate: %s pays %s of income in tax (base %s)",
				lowestRate.ScenarioName,
				output.FormatPercentage(lowestRate.AverageTaxRate),
				output.FormatPercentage(base.AverageTaxRate)))
	}

	return recommendations
}
