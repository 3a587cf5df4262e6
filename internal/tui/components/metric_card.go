package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxberg/internal/output"
	"github.com/rgehrsitz/taxberg/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays one figure from a breakdown, optionally with the change
// since the previous calculation
type MetricCard struct {
	Label string
	Value string
	Note  string
	Width int

	delta         *decimal.Decimal
	percent       bool
	lowerIsBetter bool
}

// NewAmountCard creates a card for a kroner amount
func NewAmountCard(label string, amount decimal.Decimal) *MetricCard {
	return &MetricCard{Label: label, Value: output.FormatCurrency(amount), Width: 24}
}

// NewRateCard creates a card for a percentage
func NewRateCard(label string, pct decimal.Decimal) *MetricCard {
	return &MetricCard{Label: label, Value: output.FormatPercentage(pct), Width: 24, percent: true}
}

// WithDelta shows the change from a previous value. Set lowerIsBetter for
// figures such as tax, where a drop is good news.
func (m *MetricCard) WithDelta(delta decimal.Decimal, lowerIsBetter bool) *MetricCard {
	if delta.IsZero() {
		return m
	}
	m.delta = &delta
	m.lowerIsBetter = lowerIsBetter
	return m
}

// WithNote adds a muted line under the value
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) deltaText() string {
	if m.delta == nil {
		return ""
	}
	up := m.delta.IsPositive()
	good := up != m.lowerIsBetter
	text := output.FormatCurrency(m.delta.Abs())
	if m.percent {
		text = m.delta.Abs().StringFixed(2) + " pp"
	}
	return tuistyles.MetricTrendStyle(good).Render(tuistyles.TrendIndicator(up) + " " + text)
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if d := m.deltaText(); d != "" {
		content += "\n" + d
	}
	if m.Note != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Note)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns a single line without border
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if d := m.deltaText(); d != "" {
		line += " " + d
	}
	return line
}

// MetricGrid lays cards out in rows of the given width
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
