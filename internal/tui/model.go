package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/compare"
	"github.com/rgehrsitz/taxberg/internal/config"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Input as last submitted from the form or loaded from disk
	inputPath string
	input     *domain.TaxInput

	calcEngine    *calculation.CalculationEngine
	compareEngine *compare.CompareEngine

	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel
	compareModel *scenes.CompareModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. inputPath may be empty, in which
// case the form starts from the defaults.
func NewModel(inputPath string) Model {
	engine := calculation.NewCalculationEngine()
	return Model{
		currentScene:  SceneForm,
		previousScene: SceneForm,
		inputPath:     inputPath,
		calcEngine:    engine,
		compareEngine: compare.NewCompareEngine(engine),
		formModel:     scenes.NewFormModel(),
		resultsModel:  scenes.NewResultsModel(),
		compareModel:  scenes.NewCompareModel(),
		width:         80,
		height:        24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.inputPath == "" {
		return nil
	}
	return loadInputCmd(m.inputPath)
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene { return m.currentScene }

// Err returns the error on screen, if any
func (m Model) Err() error { return m.err }

// loadInputCmd returns a command that loads a YAML or JSON input file
func loadInputCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		in, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if err := parser.ValidateInput(in); err != nil {
			return ErrorMsg{Err: err}
		}
		return InputLoadedMsg{Input: in}
	}
}

// calculateCmd computes the breakdown for the annualized input
func calculateCmd(engine *calculation.CalculationEngine, in *domain.TaxInput) tea.Cmd {
	return func() tea.Msg {
		annual := calculation.Annualize(*in)
		b, err := engine.ComputeBreakdown(annual)
		return CalculationCompleteMsg{Input: &annual, Breakdown: b, Err: err}
	}
}

// compareCmd compares the input with the chosen templates
func compareCmd(engine *compare.CompareEngine, in *domain.TaxInput, inputPath string, templates []string) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), in, compare.CompareOptions{
			BaseScenarioName: "current",
			Alternatives:     templates,
			InputPath:        inputPath,
		})
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}
