package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxberg/internal/output"
	"github.com/rgehrsitz/taxberg/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ShareBar draws a horizontal bar for one part of the tax, as a percentage
// of the whole
type ShareBar struct {
	Label   string
	Percent decimal.Decimal
	Width   int
}

// NewShareBar creates a bar 30 cells wide
func NewShareBar(label string, pct decimal.Decimal) ShareBar {
	return ShareBar{Label: label, Percent: pct, Width: 30}
}

// Filled returns how many cells are filled, clamped to the bar width
func (b ShareBar) Filled() int {
	if b.Width <= 0 || !b.Percent.IsPositive() {
		return 0
	}
	n := int(b.Percent.Mul(decimal.NewFromInt(int64(b.Width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	if n > b.Width {
		return b.Width
	}
	return n
}

// Render returns "label  ██████░░░░  41.0%"
func (b ShareBar) Render() string {
	filled := b.Filled()
	bar := tuistyles.BarFilledStyle.Render(strings.Repeat("█", filled)) +
		tuistyles.BarEmptyStyle.Render(strings.Repeat("░", b.Width-filled))
	return fmt.Sprintf("%s %s %6s",
		tuistyles.FieldLabelStyle.Render(b.Label), bar, output.FormatPercentage(b.Percent))
}
