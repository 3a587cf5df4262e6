package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxberg/internal/compare"
	"github.com/rgehrsitz/taxberg/internal/transform"
	"github.com/rgehrsitz/taxberg/internal/tui/tuimsg"
	"github.com/rgehrsitz/taxberg/internal/tui/tuistyles"
)

// CompareModel lets the user pick household changes and compare them with
// the current input
type CompareModel struct {
	templates []transform.Template
	selected  map[int]bool
	cursor    int
	result    *compare.ComparisonSet
	comparing bool
	width     int
	height    int
}

// NewCompareModel lists the built-in templates
func NewCompareModel() *CompareModel {
	registry := transform.CreateBuiltInTemplates()
	m := &CompareModel{selected: make(map[int]bool)}
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		m.templates = append(m.templates, t)
	}
	return m
}

// Selected returns the chosen template names in list order
func (m *CompareModel) Selected() []string {
	var names []string
	for i, t := range m.templates {
		if m.selected[i] {
			names = append(names, t.Name)
		}
	}
	return names
}

// SetResult stores a finished comparison
func (m *CompareModel) SetResult(set *compare.ComparisonSet) {
	m.result = set
	m.comparing = false
}

// Result returns the last comparison, or nil
func (m *CompareModel) Result() *compare.ComparisonSet { return m.result }

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(k, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.templates)-1 {
			m.cursor++
		}

	case key.Matches(k, key.NewBinding(key.WithKeys(" ", "x"))):
		m.selected[m.cursor] = !m.selected[m.cursor]

	case key.Matches(k, key.NewBinding(key.WithKeys("enter"))):
		names := m.Selected()
		if len(names) == 0 {
			names = []string{m.templates[m.cursor].Name}
		}
		m.comparing = true
		return m, func() tea.Msg { return tuimsg.CompareRequestedMsg{Templates: names} }
	}
	return m, nil
}

// View renders the template list and, once run, the comparison table
func (m *CompareModel) View() string {
	rows := []string{tuistyles.TitleStyle.Render("Compare household changes"), ""}

	for i, t := range m.templates {
		check := "[ ]"
		if m.selected[i] {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %-14s %s", check, t.Name, t.Description)
		if i == m.cursor {
			rows = append(rows, tuistyles.SelectedItemStyle.Render("▶ "+line))
		} else {
			rows = append(rows, tuistyles.UnselectedItemStyle.Render("  "+line))
		}
	}
	rows = append(rows, "", tuistyles.SubtitleStyle.Render("space select • enter compare"))

	switch {
	case m.comparing:
		rows = append(rows, "", tuistyles.InfoStyle.Render("Comparing..."))
	case m.result != nil:
		table := (&compare.TableFormatter{}).Format(m.result)
		rows = append(rows, "", strings.TrimRight(table, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
