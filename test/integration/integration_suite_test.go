package integration

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/config"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/output"
)

var exampleInputs = []string{
	"single_500k.yaml",
	"family_monthly.yaml",
	"wealthy_retiree.json",
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// compute loads an example file and returns the annualized input and its breakdown
func compute(t *testing.T, name string) (domain.TaxInput, domain.TaxBreakdown) {
	t.Helper()
	in, err := config.NewInputParser().LoadFromFile(filepath.Join("..", "testdata", name))
	require.NoError(t, err)

	annual := calculation.Annualize(*in)
	b, err := calculation.NewCalculationEngine().ComputeBreakdown(annual)
	require.NoError(t, err)
	return annual, b
}

// TestIntegrationSmokeTest runs every example through every report format
func TestIntegrationSmokeTest(t *testing.T) {
	for _, name := range exampleInputs {
		t.Run(name, func(t *testing.T) {
			annual, b := compute(t, name)
			report := output.NewReport(annual, b)

			for _, formatName := range output.AvailableFormatterNames() {
				data, err := output.GetFormatterByName(formatName).Format(report)
				require.NoError(t, err, formatName)
				assert.NotEmpty(t, data, formatName)
			}

			assert.False(t, b.TotalTax.IsNegative())
			assert.True(t, b.NetPay.Equal(b.TotalIncome.Sub(b.TotalTax)))
		})
	}
}

func TestSingleEarnerEndToEnd(t *testing.T) {
	_, b := compute(t, "single_500k.yaml")

	want := domain.TaxBreakdown{
		TaxYear:               2025,
		TotalIncome:           dec("500000"),
		BracketTax:            dec("9265.05"),
		InsuranceContribution: dec("41000"),
		CommonTax:             dec("110000"),
		StandardDeduction:     dec("109950"),
		MinimumDeduction:      dec("109950"),
		TotalDeductions:       dec("109950"),
		TotalTax:              dec("50315.05"),
		NetPay:                dec("449684.95"),
		AverageTaxRate:        dec("10.06"),
		MarginalTaxRate:       dec("4"),
	}

	got := domain.TaxBreakdown{
		TaxYear:               b.TaxYear,
		TotalIncome:           b.TotalIncome,
		BracketTax:            b.BracketTax,
		InsuranceContribution: b.InsuranceContribution,
		CommonTax:             b.CommonTax,
		StandardDeduction:     b.StandardDeduction,
		MinimumDeduction:      b.MinimumDeduction,
		TotalDeductions:       b.TotalDeductions,
		TotalTax:              b.TotalTax,
		NetPay:                b.NetPay,
		AverageTaxRate:        b.AverageTaxRate,
		MarginalTaxRate:       b.MarginalTaxRate,
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
	}
}

func TestFamilyMonthlyEndToEnd(t *testing.T) {
	annual, b := compute(t, "family_monthly.yaml")

	assert.Equal(t, domain.PeriodAnnual, annual.Period)
	assert.True(t, dec("660000").Equal(b.TotalIncome), "monthly salary is annualized: %s", b.TotalIncome)
	assert.True(t, dec("87550").Equal(b.MinimumDeduction), "married cap: %s", b.MinimumDeduction)
	assert.True(t, dec("40000").Equal(b.ParentalDeduction), "two children: %s", b.ParentalDeduction)
	assert.True(t, dec("15000").Equal(b.MortgageDeduction), "quarter of the interest: %s", b.MortgageDeduction)
	assert.True(t, b.WealthTax.IsZero(), "net wealth is below the threshold")
	assert.True(t, b.TotalTax.LessThan(b.GrossTax()))
}

func TestWealthyRetireeEndToEnd(t *testing.T) {
	_, b := compute(t, "wealthy_retiree.json")

	assert.True(t, b.WealthTax.IsPositive(), "wealth tax: %s", b.WealthTax)
	assert.True(t, b.NetWealth.GreaterThan(dec("1760000")))
	assert.True(t, b.TotalTax.GreaterThan(b.WealthTax))
}

// TestIntegrationRegression checks that results do not depend on call order
// or on concurrent use of one engine
func TestIntegrationRegression(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine := calculation.NewCalculationEngine()
	inputs := make([]domain.TaxInput, len(exampleInputs))
	want := make([]domain.TaxBreakdown, len(exampleInputs))
	for i, name := range exampleInputs {
		inputs[i], want[i] = compute(t, name)
	}

	const workers = 8
	got := make([][]domain.TaxBreakdown, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			// Each worker walks the inputs in a different order
			got[w] = make([]domain.TaxBreakdown, len(inputs))
			for k := range inputs {
				i := (k + w) % len(inputs)
				b, err := engine.ComputeBreakdown(inputs[i])
				if err != nil {
					errs[w] = err
					return
				}
				got[w][i] = b
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		if diff := cmp.Diff(want, got[w], decimalEqual); diff != "" {
			t.Errorf("worker %d mismatch (-want +got):\n%s", w, diff)
		}
	}
}

func TestIntegrationErrorHandling(t *testing.T) {
	parser := config.NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join("..", "testdata", "missing.yaml"))
	assert.Error(t, err)

	in, err := parser.LoadFromFile(filepath.Join("..", "testdata", "single_500k.yaml"))
	require.NoError(t, err)
	in.TaxYear = 1990
	_, err = calculation.NewCalculationEngine().ComputeBreakdown(*in)
	assert.Error(t, err, "unknown income year")
}

func TestIntegrationPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}
	annual, _ := compute(t, "family_monthly.yaml")
	engine := calculation.NewCalculationEngine()

	start := time.Now()
	for i := 0; i < 1000; i++ {
		_, err := engine.ComputeBreakdown(annual)
		require.NoError(t, err)
	}
	assert.Less(t, time.Since(start), 5*time.Second, "1000 breakdowns should take well under a second")
}

func BenchmarkComputeBreakdown(b *testing.B) {
	in, err := config.NewInputParser().LoadFromFile(filepath.Join("..", "testdata", "family_monthly.yaml"))
	require.NoError(b, err)
	annual := calculation.Annualize(*in)
	engine := calculation.NewCalculationEngine()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.ComputeBreakdown(annual); err != nil {
			b.Fatal(err)
		}
	}
}
