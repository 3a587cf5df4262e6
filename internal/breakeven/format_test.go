package breakeven

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult() *OptimizationResult {
	return &OptimizationResult{
		Request:         OptimizationRequest{Goal: GoalMatchNetPay, Target: d("449684.95")},
		Success:         true,
		Iterations:      27,
		ConvergenceInfo: "Converged to target net pay within 1 kr",
		GrossSalary:     d("500000"),
		Period:          domain.PeriodMonth,
		PeriodSalary:    d("41666.67"),
		Breakdown: domain.TaxBreakdown{
			TotalIncome:     d("500000"),
			TotalTax:        d("50315.05"),
			NetPay:          d("449684.95"),
			AverageTaxRate:  d("10.06"),
			MarginalTaxRate: d("4"),
		},
		SalaryDiffFromBase: d("140000"),
		TaxDiffFromBase:    d("45000"),
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(testResult())

	assert.Contains(t, out, "BREAK-EVEN SALARY")
	assert.Contains(t, out, "Goal:         match_net_pay")
	assert.Contains(t, out, "Target:       449 685 kr")
	assert.Contains(t, out, "✓ Converged")
	assert.Contains(t, out, "Annual:       500 000 kr")
	assert.Contains(t, out, "Per month:    41 667 kr")
	assert.Contains(t, out, "Average rate: 10.1%")
	assert.Contains(t, out, "Income Change: +140 000 kr")
	assert.Contains(t, out, "Tax Impact:    +45 000 kr")
}

func TestTableFormatter_AnnualNoComparison(t *testing.T) {
	r := testResult()
	r.Success = false
	r.Period = domain.PeriodAnnual
	r.SalaryDiffFromBase = d("0")

	out := (&TableFormatter{}).Format(r)

	assert.Contains(t, out, "⚠ Did not converge")
	assert.NotContains(t, out, "Per ")
	assert.NotContains(t, out, "COMPARISON TO CURRENT INPUT")
}

func TestTableFormatter_FormatTargets(t *testing.T) {
	unconverged := *testResult()
	unconverged.Success = false

	out := (&TableFormatter{}).FormatTargets([]OptimizationResult{*testResult(), unconverged})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[4], "500 000 kr")
	assert.NotContains(t, lines[4], "~")
	assert.Contains(t, lines[5], "~500 000 kr")
}

func TestJSONFormatter(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(testResult())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, true, doc["success"])
	assert.Equal(t, "500000", doc["gross_salary"])
	assert.Equal(t, "Month", doc["period"])
	assert.NotContains(t, doc["request"].(map[string]any), "BaseInput")

	out, err = (&JSONFormatter{}).FormatTargets([]OptimizationResult{*testResult()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[{"))
}
