package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxberg/internal/config"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/tui/tuimsg"
	"github.com/rgehrsitz/taxberg/internal/tui/tuistyles"
)

// Field indexes in form order
const (
	FieldSalary = iota
	FieldPeriod
	FieldCivilStatus
	FieldChildren
	FieldOtherIncome
	FieldDividend
	FieldInterestExpenses
	FieldBankBalance
	FieldMortgage
	FieldUnionFee
	FieldBSU
	fieldCount
)

type formField struct {
	label   string
	input   textinput.Model
	choices []string // non-nil for fields cycled with left/right
	choice  int
}

func (f *formField) isChoice() bool { return f.choices != nil }

func (f *formField) value() string {
	if f.isChoice() {
		return f.choices[f.choice]
	}
	return f.input.Value()
}

func (f *formField) setChoice(v string) {
	for i, c := range f.choices {
		if strings.EqualFold(c, v) {
			f.choice = i
			return
		}
	}
}

// FormModel is the input scene: the handful of fields most people need.
// Everything else in a loaded file is kept as-is.
type FormModel struct {
	fields []formField
	focus  int
	base   domain.TaxInput
	err    error
	width  int
	height int
}

func newTextField(label, placeholder string) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 16
	ti.Width = 16
	ti.Prompt = ""
	return formField{label: label, input: ti}
}

func newChoiceField(label string, choices []string) formField {
	return formField{label: label, choices: choices}
}

// NewFormModel creates a form holding the default input
func NewFormModel() *FormModel {
	periods := make([]string, len(domain.Periods))
	for i, p := range domain.Periods {
		periods[i] = string(p)
	}
	statuses := make([]string, len(domain.CivilStatuses))
	for i, s := range domain.CivilStatuses {
		statuses[i] = string(s)
	}

	fields := make([]formField, fieldCount)
	fields[FieldSalary] = newTextField("Salary", "500 000")
	fields[FieldPeriod] = newChoiceField("Pay period", periods)
	fields[FieldCivilStatus] = newChoiceField("Civil status", statuses)
	fields[FieldChildren] = newTextField("Children", "0")
	fields[FieldOtherIncome] = newTextField("Other income", "0")
	fields[FieldDividend] = newTextField("Dividends", "0")
	fields[FieldInterestExpenses] = newTextField("Interest paid", "0")
	fields[FieldBankBalance] = newTextField("Bank deposits", "0")
	fields[FieldMortgage] = newTextField("Mortgage", "0")
	fields[FieldUnionFee] = newTextField("Union fee", "0")
	fields[FieldBSU] = newTextField("BSU savings", "0")
	fields[FieldChildren].input.CharLimit = 2

	m := &FormModel{fields: fields}
	m.SetInput(nil)
	m.focusField(0)
	return m
}

// SetInput fills the form from an input. A nil input resets to defaults.
func (m *FormModel) SetInput(in *domain.TaxInput) {
	if in == nil {
		def := domain.NewTaxInput()
		in = &def
	}
	m.base = *in.DeepCopy()
	m.err = nil

	setAmount := func(i int, v decimal.Decimal) {
		if v.IsZero() {
			m.fields[i].input.SetValue("")
			return
		}
		m.fields[i].input.SetValue(v.String())
	}

	setAmount(FieldSalary, in.Income.Salary)
	m.fields[FieldPeriod].setChoice(string(in.Period))
	m.fields[FieldCivilStatus].setChoice(string(in.PersonalInfo.CivilStatus))
	if in.Deductions.NumberOfChildren > 0 {
		m.fields[FieldChildren].input.SetValue(strconv.Itoa(in.Deductions.NumberOfChildren))
	} else {
		m.fields[FieldChildren].input.SetValue("")
	}
	setAmount(FieldOtherIncome, in.Income.OtherIncome)
	setAmount(FieldDividend, in.Income.Dividend)
	setAmount(FieldInterestExpenses, in.Financial.InterestExpenses)
	setAmount(FieldBankBalance, in.Financial.TotalBankBalance)
	setAmount(FieldMortgage, in.Financial.TotalMortgage)
	setAmount(FieldUnionFee, in.Deductions.UnionFee)
	setAmount(FieldBSU, in.Deductions.BSU)
}

// SetValue sets a text field directly
func (m *FormModel) SetValue(field int, v string) {
	f := &m.fields[field]
	if f.isChoice() {
		f.setChoice(v)
		return
	}
	f.input.SetValue(v)
}

// Value returns what a field currently holds
func (m *FormModel) Value(field int) string {
	return m.fields[field].value()
}

// Focused returns the index of the focused field
func (m *FormModel) Focused() int { return m.focus }

// Err returns the last validation error
func (m *FormModel) Err() error { return m.err }

// SetSize updates the model dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ParseAmount reads a kroner amount the way people type it: spaces or
// underscores as thousand separators, a comma or point for øre, and an
// optional "kr" suffix. Blank means zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(strings.ToLower(s)), "kr"))
	s = strings.NewReplacer(" ", "", "\u00a0", "", "_", "", ",", ".").Replace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Input builds a validated TaxInput from the form
func (m *FormModel) Input() (*domain.TaxInput, error) {
	out := m.base.DeepCopy()

	amounts := []struct {
		field  int
		target *decimal.Decimal
	}{
		{FieldSalary, &out.Income.Salary},
		{FieldOtherIncome, &out.Income.OtherIncome},
		{FieldDividend, &out.Income.Dividend},
		{FieldInterestExpenses, &out.Financial.InterestExpenses},
		{FieldBankBalance, &out.Financial.TotalBankBalance},
		{FieldMortgage, &out.Financial.TotalMortgage},
		{FieldUnionFee, &out.Deductions.UnionFee},
		{FieldBSU, &out.Deductions.BSU},
	}
	for _, a := range amounts {
		f := &m.fields[a.field]
		v, err := ParseAmount(f.value())
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an amount", f.label, f.value())
		}
		*a.target = v
	}

	children := 0
	if raw := strings.TrimSpace(m.fields[FieldChildren].value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a whole number", m.fields[FieldChildren].label, raw)
		}
		children = n
	}
	if children != out.Deductions.NumberOfChildren {
		out.Deductions.NumberOfChildren = children
		out.PersonalInfo.HasChildren = children > 0
	}

	out.Period = domain.Period(m.fields[FieldPeriod].value())
	out.PersonalInfo.CivilStatus = domain.CivilStatus(m.fields[FieldCivilStatus].value())

	if err := config.NewInputParser().ValidateInput(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *FormModel) focusField(i int) tea.Cmd {
	for j := range m.fields {
		m.fields[j].input.Blur()
	}
	m.focus = (i + len(m.fields)) % len(m.fields)
	f := &m.fields[m.focus]
	if f.isChoice() {
		return nil
	}
	return f.input.Focus()
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	f := &m.fields[m.focus]

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("tab", "down"))):
			return m, m.focusField(m.focus + 1)

		case key.Matches(msg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
			return m, m.focusField(m.focus - 1)

		case f.isChoice() && key.Matches(msg, key.NewBinding(key.WithKeys("right", "l", " "))):
			f.choice = (f.choice + 1) % len(f.choices)
			return m, nil

		case f.isChoice() && key.Matches(msg, key.NewBinding(key.WithKeys("left", "h"))):
			f.choice = (f.choice - 1 + len(f.choices)) % len(f.choices)
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			in, err := m.Input()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg { return tuimsg.CalculateRequestedMsg{Input: in} }
		}
	}

	if f.isChoice() {
		return m, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return m, cmd
}

// View renders the form
func (m *FormModel) View() string {
	var rows []string
	rows = append(rows, tuistyles.TitleStyle.Render("Income and deductions"), "")

	for i := range m.fields {
		f := &m.fields[i]
		labelStyle := tuistyles.FieldLabelStyle
		if i == m.focus {
			labelStyle = tuistyles.FocusedFieldLabelStyle
		}

		var value string
		if f.isChoice() {
			style := tuistyles.UnselectedItemStyle
			if i == m.focus {
				style = tuistyles.SelectedItemStyle
			}
			value = style.Render("◀ " + f.value() + " ▶")
		} else {
			value = f.input.View()
		}
		rows = append(rows, labelStyle.Render(f.label)+value)
	}

	rows = append(rows, "")
	if m.err != nil {
		rows = append(rows, tuistyles.ErrorStyle.Render("✗ "+m.err.Error()), "")
	}
	rows = append(rows, tuistyles.SubtitleStyle.Render("tab/↑↓ move • ←/→ change choice • enter calculate"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
