package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleEarner = `personal_info:
  civil_status: single
income:
  salary: 500000
period: Annual
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	assert.Equal(t, "taxberg", root.Use)
	assert.NotEmpty(t, root.Short)
	assert.NotEmpty(t, root.Long)
	assert.NotNil(t, root.PersistentFlags().Lookup("year"))
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))

	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"calculate", "annotate", "validate", "compare", "break-even", "templates", "serve", "version"}

	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "command %s not registered", name)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := run(t, "invalid-command")
	assert.Error(t, err)
}

func TestCalculate_Console(t *testing.T) {
	out, err := run(t, "calculate", writeInput(t, "in.yaml", singleEarner))
	require.NoError(t, err)

	assert.Contains(t, out, "TAX BREAKDOWN 2025")
	assert.Contains(t, out, "449 685 kr")
	assert.Contains(t, out, "50 315 kr")
}

func TestCalculate_JSON(t *testing.T) {
	out, err := run(t, "calculate", writeInput(t, "in.yaml", singleEarner), "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Breakdown map[string]any `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 449684.95, doc.Breakdown["netPay"])
	assert.Equal(t, 9265.05, doc.Breakdown["bracketTax"])
	assert.Equal(t, 4.0, doc.Breakdown["marginalTaxRate"])
}

func TestCalculate_MonthlyInputIsAnnualized(t *testing.T) {
	in := `income:
  salary: 41666.67
period: Month
`
	out, err := run(t, "calculate", writeInput(t, "in.yaml", in), "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "totalIncome,500000.04\n")
}

func TestCalculate_OutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.html")

	out, err := run(t, "calculate", writeInput(t, "in.yaml", singleEarner), "--format", "html", "--output", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}

func TestCalculate_Errors(t *testing.T) {
	path := writeInput(t, "in.yaml", singleEarner)

	_, err := run(t, "calculate", path, "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")
	assert.ErrorContains(t, err, "aliases: table, text, verbose")

	_, err = run(t, "calculate", path, "--year", "1990")
	assert.Error(t, err)

	_, err = run(t, "calculate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = run(t, "calculate")
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	out, err := run(t, "annotate", writeInput(t, "in.yaml", singleEarner))
	require.NoError(t, err)

	assert.Contains(t, out, "bracket_tax:")
	assert.Contains(t, out, "9265.05")
	assert.Contains(t, out, "tax_year: 2025")
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", writeInput(t, "in.yaml", singleEarner))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = run(t, "validate", writeInput(t, "bad.yaml", "income:\n  salary: -1\n"))
	assert.ErrorContains(t, err, "cannot be negative")

	_, err = run(t, "validate", writeInput(t, "bad.json", `{"period": "Fortnight"}`))
	assert.ErrorContains(t, err, "period")
}

func TestTemplates(t *testing.T) {
	out, err := run(t, "templates")
	require.NoError(t, err)

	assert.Contains(t, out, "raise_10pct")
	assert.Contains(t, out, "two_children")
	assert.Contains(t, out, "adjust_salary")
}

func TestCompare(t *testing.T) {
	path := writeInput(t, "in.yaml", singleEarner)

	out, err := run(t, "compare", path, "--with", "raise_10pct,married")
	require.NoError(t, err)
	assert.Contains(t, out, "TAX SCENARIO COMPARISON 2025")
	assert.Contains(t, out, "raise_10pct")
	assert.Contains(t, out, "married")

	out, err = run(t, "compare", path, "--with", "adjust_salary:percent=5", "--format", "json")
	require.NoError(t, err)
	var doc struct {
		BaseScenarioName   string `json:"baseScenarioName"`
		AlternativeResults []struct {
			NetPay decimal.Decimal `json:"netPay"`
		} `json:"alternativeResults"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "current", doc.BaseScenarioName)
	require.Len(t, doc.AlternativeResults, 1)
	assert.True(t, doc.AlternativeResults[0].NetPay.GreaterThan(decimal.RequireFromString("449684.95")))
}

func TestCompare_Errors(t *testing.T) {
	path := writeInput(t, "in.yaml", singleEarner)

	_, err := run(t, "compare", path)
	assert.ErrorContains(t, err, "--with is required")

	_, err = run(t, "compare", path, "--with", "retire_early")
	assert.ErrorContains(t, err, "retire_early")

	_, err = run(t, "compare", path, "--with", "married", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestBreakEven_Net(t *testing.T) {
	path := writeInput(t, "in.yaml", singleEarner)

	out, err := run(t, "break-even", path, "--net", "449684.95", "--format", "json")
	require.NoError(t, err)

	var result struct {
		Success     bool            `json:"success"`
		GrossSalary decimal.Decimal `json:"gross_salary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	diff := result.GrossSalary.Sub(decimal.NewFromInt(500000)).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromInt(10)), "salary %s", result.GrossSalary)
}

func TestBreakEven_Table(t *testing.T) {
	path := writeInput(t, "in.yaml", singleEarner)

	out, err := run(t, "break-even", path, "--net", "449684.95")
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN SALARY")

	out, err = run(t, "break-even", path, "--net", "400000, 500_000")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBreakEven_Errors(t *testing.T) {
	path := writeInput(t, "in.yaml", singleEarner)

	_, err := run(t, "break-even", path)
	assert.ErrorContains(t, err, "--net or --tax is required")

	_, err = run(t, "break-even", path, "--net", "1", "--tax", "1")
	assert.ErrorContains(t, err, "not both")

	_, err = run(t, "break-even", path, "--net", "lots")
	assert.ErrorContains(t, err, "invalid amount")

	_, err = run(t, "break-even", path, "--net", "400000", "--min-salary", "9", "--max-salary", "1")
	assert.Error(t, err)
}

func TestParseAmounts(t *testing.T) {
	got, err := parseAmounts(" 400000, 500_000 ,")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, decimal.NewFromInt(400000).Equal(got[0]))
	assert.True(t, decimal.NewFromInt(500000).Equal(got[1]))

	_, err = parseAmounts(" , ")
	assert.Error(t, err)
}

func TestServe_InvalidPort(t *testing.T) {
	_, err := run(t, "serve", "--env-file", "", "--port", "http")
	assert.ErrorContains(t, err, "must be numeric")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "taxberg dev (commit none, built unknown)")
}

func TestNewEngine_DebugFlag(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--debug"}))

	engine, err := newEngine(root)
	require.NoError(t, err)
	assert.True(t, engine.Debug)

	quiet, err := newEngine(newRootCmd())
	require.NoError(t, err)
	assert.False(t, quiet.Debug)
}
