package tui

import (
	"github.com/rgehrsitz/taxberg/internal/compare"
	"github.com/rgehrsitz/taxberg/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneCompare
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Input"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// InputLoadedMsg signals the input file has been loaded
type InputLoadedMsg struct {
	Input *domain.TaxInput
}

// CalculationCompleteMsg signals a calculation has finished
type CalculationCompleteMsg struct {
	Input     *domain.TaxInput
	Breakdown domain.TaxBreakdown
	Err       error
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
