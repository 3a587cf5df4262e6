package calculation

import (
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Trinnskatt and formueskatt are evaluated with the same progressive
//    schedule walker, so the marginal rate and the tax amount always read
//    the same table.
//
// 2. Trygdeavgift (8.2%) and fellesskatt (22%) are flat percentages of total
//    income. They are not part of the reported marginal rate.
//
// 3. Amounts are carried in øre (two decimals). Nothing is rounded to whole
//    kroner inside the engine; formatters do that for display.

var hundred = decimal.NewFromInt(100)

// ProgressiveSchedule evaluates an ordered table of (upper limit, marginal rate)
// brackets. The schedule holds no state beyond the table and is safe for
// concurrent use.
type ProgressiveSchedule struct {
	Brackets []domain.Bracket
}

// NewProgressiveSchedule wraps a bracket table
func NewProgressiveSchedule(brackets []domain.Bracket) ProgressiveSchedule {
	return ProgressiveSchedule{Brackets: brackets}
}

// Tax returns the tax on base. Each bracket taxes only the slice between the
// previous limit and its own limit.
func (s ProgressiveSchedule) Tax(base decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var total decimal.Decimal
	lower := decimal.Zero
	for _, b := range s.Brackets {
		if base.LessThanOrEqual(lower) {
			break
		}
		upper := base
		if b.UpTo != nil {
			upper = decimal.Min(base, *b.UpTo)
		}
		slice := upper.Sub(lower)
		if slice.GreaterThan(decimal.Zero) {
			total = total.Add(slice.Mul(b.Rate))
		}
		if b.UpTo == nil {
			break
		}
		lower = *b.UpTo
	}
	return total
}

// MarginalRate returns the rate of the bracket containing base. A base exactly
// on a limit belongs to the lower bracket.
func (s ProgressiveSchedule) MarginalRate(base decimal.Decimal) decimal.Decimal {
	for _, b := range s.Brackets {
		if b.UpTo == nil || base.LessThanOrEqual(*b.UpTo) {
			return b.Rate
		}
	}
	return decimal.Zero
}

// FlatLevy is a percentage of a base with no thresholds
type FlatLevy struct {
	Rate decimal.Decimal
}

// Amount returns the levy on base, zero for non-positive bases
func (l FlatLevy) Amount(base decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return base.Mul(l.Rate)
}

// WealthTaxCalculator applies formueskatt to net wealth
type WealthTaxCalculator struct {
	Components []domain.WealthComponent
}

// NewWealthTaxCalculator creates a calculator for the year's wealth components
func NewWealthTaxCalculator(components []domain.WealthComponent) *WealthTaxCalculator {
	return &WealthTaxCalculator{Components: components}
}

// ComponentTax returns the tax per component, keyed by component name
func (w *WealthTaxCalculator) ComponentTax(netWealth decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(w.Components))
	for _, c := range w.Components {
		out[c.Name] = NewProgressiveSchedule(c.Brackets).Tax(netWealth)
	}
	return out
}

// CalculateWealthTax returns municipal plus state wealth tax, rounded to øre.
// Net wealth at or below the threshold yields zero.
func (w *WealthTaxCalculator) CalculateWealthTax(netWealth decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, c := range w.Components {
		total = total.Add(NewProgressiveSchedule(c.Brackets).Tax(netWealth))
	}
	return total.Round(2)
}

// NetWealth returns assets minus debt; it may be negative
func NetWealth(fin domain.Financial) decimal.Decimal {
	return fin.TotalAssets.Sub(fin.TotalDebt)
}

// toPercent converts a fraction to a percentage
func toPercent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}
