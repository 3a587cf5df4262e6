package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(0, m.height-4) // title (2) + status (1) + padding (1)

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("TAXBERG - Norwegian income and wealth tax")

	crumb := m.currentScene.String()
	if m.inputPath != "" {
		crumb = fmt.Sprintf("%s / %s", crumb, filepath.Base(m.inputPath))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	if m.currentScene == SceneForm {
		shortcuts = []string{
			formatShortcut("enter", "calculate"),
			formatShortcut("esc", "results"),
			formatShortcut("ctrl+c", "quit"),
		}
	} else {
		shortcuts = []string{
			formatShortcut("f", "form"),
			formatShortcut("r", "results"),
			formatShortcut("c", "compare"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	}

	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

// renderError renders an error message
func (m Model) renderError() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		ErrorStyle.Render("Error"),
		"",
		m.err.Error(),
		"",
		SubtitleStyle.Render("esc or enter to dismiss"),
	)
	return m.renderApp(BorderStyle.BorderForeground(ColorDanger).Render(content))
}

func (m Model) renderHelp() string {
	entries := [][2]string{
		{"tab / ↑ ↓", "move between form fields"},
		{"← →", "change pay period or civil status"},
		{"enter", "calculate (form) or compare (compare)"},
		{"space", "select a change to compare"},
		{"v", "toggle the full report on the results screen"},
		{"f r c", "form, results, compare"},
		{"esc", "back"},
		{"q / ctrl+c", "quit"},
	}

	lines := []string{TitleStyle.Render("Keys"), ""}
	for _, e := range entries {
		lines = append(lines, HelpKeyStyle.Width(14).Render(e[0])+HelpDescStyle.Render(e[1]))
	}
	lines = append(lines, "",
		SubtitleStyle.Render("Amounts are entered for the chosen pay period and reported per year."))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
