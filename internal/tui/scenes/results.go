package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/output"
	"github.com/rgehrsitz/taxberg/internal/tui/components"
	"github.com/rgehrsitz/taxberg/internal/tui/tuistyles"
)

// ResultsModel shows the last breakdown and how it moved since the one before
type ResultsModel struct {
	input     *domain.TaxInput
	breakdown *domain.TaxBreakdown
	previous  *domain.TaxBreakdown
	verbose   bool
	width     int
	height    int
}

// NewResultsModel creates an empty results scene
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResults stores a new breakdown. The input must be the annualized input
// the breakdown was computed from.
func (m *ResultsModel) SetResults(input *domain.TaxInput, b domain.TaxBreakdown) {
	if m.breakdown != nil {
		prev := *m.breakdown
		m.previous = &prev
	}
	m.input = input
	m.breakdown = &b
}

// Breakdown returns the breakdown on display, or nil
func (m *ResultsModel) Breakdown() *domain.TaxBreakdown { return m.breakdown }

// Verbose reports whether the full report is shown
func (m *ResultsModel) Verbose() bool { return m.verbose }

// SetSize updates the model dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, key.NewBinding(key.WithKeys("v"))) {
			m.verbose = !m.verbose
		}
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.breakdown == nil || m.input == nil {
		return tuistyles.SubtitleStyle.Render("No results yet. Press f to enter your income.")
	}
	b := *m.breakdown

	if m.verbose {
		out, err := output.ConsoleFormatter{Verbose: true}.Format(output.NewReport(*m.input, b))
		if err != nil {
			return tuistyles.ErrorStyle.Render(err.Error())
		}
		return strings.TrimRight(string(out), "\n") + "\n\n" +
			tuistyles.SubtitleStyle.Render("v summary")
	}

	var sections []string
	sections = append(sections,
		tuistyles.TitleStyle.Render(fmt.Sprintf("Your tax for %d", b.TaxYear)), "")

	net := components.NewAmountCard("Net pay", b.NetPay)
	tax := components.NewAmountCard("Total tax", b.TotalTax)
	avg := components.NewRateCard("Average tax rate", b.AverageTaxRate)
	marginal := components.NewRateCard("Marginal tax rate", b.MarginalTaxRate)
	if m.previous != nil {
		net.WithDelta(b.NetPay.Sub(m.previous.NetPay), false)
		tax.WithDelta(b.TotalTax.Sub(m.previous.TotalTax), true)
		avg.WithDelta(b.AverageTaxRate.Sub(m.previous.AverageTaxRate), true)
		marginal.WithDelta(b.MarginalTaxRate.Sub(m.previous.MarginalTaxRate), true)
	}
	columns := 4
	if m.width > 0 && m.width < 110 {
		columns = 2
	}
	sections = append(sections, components.MetricGrid([]*components.MetricCard{net, tax, avg, marginal}, columns), "")

	tb := output.NewTaxberg(b, m.input.Income.Salary)
	if b.GrossTax().IsPositive() {
		sections = append(sections,
			tuistyles.TableHeaderStyle.Render("Where the income tax goes"),
			components.NewShareBar("Bracket tax", tb.Shares.BracketTax).Render(),
			components.NewShareBar("Insurance contribution", tb.Shares.InsuranceContribution).Render(),
			components.NewShareBar("Common tax", tb.Shares.CommonTax).Render(),
			"")
	}

	below := []string{
		components.NewAmountCard("Tax the employer pays", tb.EmployerContribution).RenderCompact(),
		components.NewAmountCard("Total tax paid", tb.TotalTaxPaid).RenderCompact(),
		components.NewRateCard("Real tax rate", tb.RealTaxRate).RenderCompact(),
	}
	if tb.StatePer10Kroner.IsPositive() {
		below = append(below, tuistyles.InfoStyle.Render(
			fmt.Sprintf("Of every 10 kr you earn, %s kr goes to the state.", tb.StatePer10Kroner.StringFixed(2))))
	}
	sections = append(sections, tuistyles.TableHeaderStyle.Render("Below the waterline"))
	sections = append(sections, below...)

	if b.WealthTax.IsPositive() {
		sections = append(sections, "",
			components.NewAmountCard("Wealth tax", b.WealthTax).
				WithNote("net wealth "+output.FormatCurrency(b.NetWealth)).Render())
	}

	sections = append(sections, "", tuistyles.SubtitleStyle.Render("v full report"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
