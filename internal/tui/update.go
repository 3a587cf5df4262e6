package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxberg/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height-4)
		m.resultsModel.SetSize(msg.Width, msg.Height-4)
		m.compareModel.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case NavigateMsg:
		return m.navigate(msg.Scene), nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case InputLoadedMsg:
		m.input = msg.Input
		m.formModel.SetInput(msg.Input)
		m.loading = true
		m.loadingMessage = "Calculating tax..."
		return m, calculateCmd(m.calcEngine, msg.Input)

	case tuimsg.CalculateRequestedMsg:
		m.input = msg.Input
		m.loading = true
		m.loadingMessage = "Calculating tax..."
		return m, calculateCmd(m.calcEngine, msg.Input)

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetResults(msg.Input, msg.Breakdown)
		return m.navigate(SceneResults), nil

	case tuimsg.CompareRequestedMsg:
		if m.input == nil {
			m.compareModel.SetResult(nil)
			m.err = errors.New("enter your income before comparing")
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Comparing scenarios..."
		return m, compareCmd(m.compareEngine, m.input, m.inputPath, msg.Templates)

	case ComparisonCompleteMsg:
		m.loading = false
		m.compareModel.SetResult(msg.Set)
		if msg.Err != nil {
			m.err = msg.Err
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) Model {
	if scene != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = scene
	}
	return m
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// An error stays on screen until dismissed
	if m.err != nil {
		switch msg.String() {
		case "esc", "enter":
			m.err = nil
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	// The form takes every other key as typing
	if m.currentScene == SceneForm {
		if msg.String() == "esc" && m.resultsModel.Breakdown() != nil {
			return m.navigate(SceneResults), nil
		}
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m.navigate(SceneHelp), nil
	case "f":
		return m.navigate(SceneForm), nil
	case "r":
		return m.navigate(SceneResults), nil
	case "c":
		return m.navigate(SceneCompare), nil
	case "esc":
		if m.previousScene != m.currentScene {
			return m.navigate(m.previousScene), nil
		}
		return m.navigate(SceneForm), nil
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates to the active scene
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
