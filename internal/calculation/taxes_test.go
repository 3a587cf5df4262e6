package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func limit(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func testSchedule() ProgressiveSchedule {
	return NewProgressiveSchedule([]domain.Bracket{
		{UpTo: limit("100"), Rate: d("0")},
		{UpTo: limit("200"), Rate: d("0.10")},
		{Rate: d("0.20")},
	})
}

func TestProgressiveSchedule_Tax(t *testing.T) {
	s := testSchedule()

	tests := []struct {
		base string
		want string
	}{
		{"-50", "0"},
		{"0", "0"},
		{"100", "0"},
		{"150", "5"},
		{"200", "10"},
		{"250", "20"},
		{"1000", "170"},
	}
	for _, tt := range tests {
		got := s.Tax(d(tt.base))
		assert.True(t, d(tt.want).Equal(got), "Tax(%s) = %s, want %s", tt.base, got, tt.want)
	}
}

func TestProgressiveSchedule_ContinuousAtLimits(t *testing.T) {
	s := testSchedule()
	step := d("0.01")

	for _, l := range []string{"100", "200"} {
		at := s.Tax(d(l))
		above := s.Tax(d(l).Add(step))
		jump := above.Sub(at)
		assert.True(t, jump.GreaterThanOrEqual(decimal.Zero), "tax fell just above %s", l)
		assert.True(t, jump.LessThanOrEqual(step.Mul(d("0.20"))), "tax jumped %s just above %s", jump, l)
	}
}

func TestProgressiveSchedule_MarginalRate(t *testing.T) {
	s := testSchedule()

	assert.True(t, d("0").Equal(s.MarginalRate(d("0"))))
	assert.True(t, d("0").Equal(s.MarginalRate(d("100"))), "a base on a limit stays in the lower bracket")
	assert.True(t, d("0.10").Equal(s.MarginalRate(d("100.01"))))
	assert.True(t, d("0.20").Equal(s.MarginalRate(d("5000"))))
}

func TestFlatLevy_Amount(t *testing.T) {
	levy := FlatLevy{Rate: d("0.082")}

	assert.True(t, d("41000").Equal(levy.Amount(d("500000"))))
	assert.True(t, levy.Amount(d("-10")).IsZero())
}

func TestWealthTaxCalculator(t *testing.T) {
	calc := NewWealthTaxCalculator([]domain.WealthComponent{
		{Name: "municipal", Brackets: []domain.Bracket{{UpTo: limit("1000"), Rate: d("0")}, {Rate: d("0.01")}}},
		{Name: "state", Brackets: []domain.Bracket{{UpTo: limit("1000"), Rate: d("0")}, {Rate: d("0.005")}}},
	})

	parts := calc.ComponentTax(d("3000"))
	assert.True(t, d("20").Equal(parts["municipal"]))
	assert.True(t, d("10").Equal(parts["state"]))

	assert.True(t, d("30").Equal(calc.CalculateWealthTax(d("3000"))))
	assert.True(t, calc.CalculateWealthTax(d("-500")).IsZero(), "negative net wealth is untaxed")
	assert.True(t, d("0.02").Equal(calc.CalculateWealthTax(d("1001.33"))), "rounded to øre")
}

func TestCalculateTravelDeduction(t *testing.T) {
	r := domain.TravelRules{
		RatePerKilometer:   d("1.83"),
		CommuterThreshold:  d("14950"),
		HomeVisitThreshold: d("3300"),
		Cap:                d("97000"),
	}

	tests := []struct {
		name   string
		travel domain.TravelExpenses
		want   string
	}{
		{"nothing", domain.TravelExpenses{}, "0"},
		{"commuter and toll", domain.TravelExpenses{TripsPerYear: d("200"), KilometersPerTrip: d("50"), TollAndFerry: d("5000")}, "8350"},
		{"short commute under threshold", domain.TravelExpenses{TripsPerYear: d("200"), KilometersPerTrip: d("10")}, "0"},
		{"home visits", domain.TravelExpenses{HomeVisits: d("10000")}, "6700"},
		{"capped", domain.TravelExpenses{TripsPerYear: d("230"), KilometersPerTrip: d("400")}, "97000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTravelDeduction(tt.travel, r)
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestCalculateParentalDeduction(t *testing.T) {
	r := domain.ParentalRules{FirstChild: d("25000"), AdditionalChild: d("15000")}

	assert.True(t, CalculateParentalDeduction(false, 3, r).IsZero())
	assert.True(t, CalculateParentalDeduction(true, 0, r).IsZero())
	assert.True(t, d("25000").Equal(CalculateParentalDeduction(true, 1, r)))
	assert.True(t, d("40000").Equal(CalculateParentalDeduction(true, 2, r)))
	assert.True(t, d("55000").Equal(CalculateParentalDeduction(true, 3, r)))
}

func TestCalculateContributionCredits(t *testing.T) {
	rules := []domain.ContributionRule{
		{Field: "union_fee", Cap: limit("8000"), CreditRate: d("0.22")},
		{Field: "bsu", Cap: limit("27500"), CreditRate: d("0.10")},
		{Field: "other_deductions", CreditRate: d("0.22")},
	}

	contrib, other, err := CalculateContributionCredits(domain.Deductions{
		UnionFee:        d("5000"),
		BSU:             d("40000"),
		OtherDeductions: d("2000"),
	}, rules)

	assert.NoError(t, err)
	assert.True(t, d("3850").Equal(contrib), "1,100 + 2,750: got %s", contrib)
	assert.True(t, d("440").Equal(other))
}

func TestCalculatePropertyDeduction(t *testing.T) {
	r := domain.CappedRate{Rate: d("0.25"), Cap: d("25000")}

	assert.True(t, CalculatePropertyDeduction(false, d("80000"), r).IsZero())
	assert.True(t, d("20000").Equal(CalculatePropertyDeduction(true, d("80000"), r)))
	assert.True(t, d("25000").Equal(CalculatePropertyDeduction(true, d("5000000"), r)))
}
