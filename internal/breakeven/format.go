package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SALARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Goal:         %s\n", result.Request.Goal))
	sb.WriteString(fmt.Sprintf("Target:       %s\n", output.FormatCurrency(result.Request.Target)))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED SALARY\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Annual:       %s\n", output.FormatCurrency(result.GrossSalary)))
	if result.Period != "" && result.Period != domain.PeriodAnnual {
		sb.WriteString(fmt.Sprintf("Per %-9s %s\n", strings.ToLower(string(result.Period))+":", output.FormatCurrency(result.PeriodSalary)))
	}
	sb.WriteString("\n")

	b := result.Breakdown
	sb.WriteString("RESULTING BREAKDOWN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Total income: %s\n", output.FormatCurrency(b.TotalIncome)))
	sb.WriteString(fmt.Sprintf("Total tax:    %s\n", output.FormatCurrency(b.TotalTax)))
	sb.WriteString(fmt.Sprintf("Net pay:      %s\n", output.FormatCurrency(b.NetPay)))
	sb.WriteString(fmt.Sprintf("Average rate: %s\n", output.FormatPercentage(b.AverageTaxRate)))
	sb.WriteString(fmt.Sprintf("Marginal:     %s\n", output.FormatPercentage(b.MarginalTaxRate)))
	sb.WriteString("\n")

	if !result.SalaryDiffFromBase.IsZero() {
		sb.WriteString("COMPARISON TO CURRENT INPUT\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Income Change: %s%s\n",
			tf.deltaSymbol(result.SalaryDiffFromBase), output.FormatCurrency(result.SalaryDiffFromBase)))
		if !result.TaxDiffFromBase.IsZero() {
			sb.WriteString(fmt.Sprintf("Tax Impact:    %s%s\n",
				tf.deltaSymbol(result.TaxDiffFromBase), output.FormatCurrency(result.TaxDiffFromBase)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTargets formats a SolveTargets run as one row per target
func (tf *TableFormatter) FormatTargets(results []OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SALARIES\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %16s %16s %16s %10s\n",
		"Target", "Gross Salary", "Total Tax", "Net Pay", "Avg Rate"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range results {
		salary := output.FormatCurrency(res.GrossSalary)
		if !res.Success {
			salary = "~" + salary
		}
		sb.WriteString(fmt.Sprintf("%-16s %16s %16s %16s %10s\n",
			output.FormatCurrency(res.Request.Target),
			salary,
			output.FormatCurrency(res.Breakdown.TotalTax),
			output.FormatCurrency(res.Breakdown.NetPay),
			output.FormatPercentage(res.Breakdown.AverageTaxRate)))
	}
	sb.WriteString("\n")

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for one result
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatTargets generates JSON output for a SolveTargets run
func (jf *JSONFormatter) FormatTargets(results []OptimizationResult) (string, error) {
	return jf.marshal(results)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}
