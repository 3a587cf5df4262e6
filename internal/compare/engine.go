package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the unmodified input
	Alternatives     []string // Template names or transform specs ("adjust_salary:percent=5")
	InputPath        string   // Shown in reports only
}

// Compare computes the base input and one variant per alternative. Inputs
// are annualized before computing, so deltas are yearly amounts.
func (ce *CompareEngine) Compare(ctx context.Context, base *domain.TaxInput, options CompareOptions) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base input cannot be nil")
	}
	if options.BaseScenarioName == "" {
		options.BaseScenarioName = "base"
	}

	baseResult, err := ce.calculate(options.BaseScenarioName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := make([]ComparisonResult, 0, len(options.Alternatives))
	for _, alt := range options.Alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, description, transforms, err := ce.resolve(alt)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", name, err)
		}

		altResult, err := ce.calculate(name, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", name, err)
		}
		altResult.Description = description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   options.BaseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		InputPath:          options.InputPath,
		TaxYear:            baseResult.Breakdown.TaxYear,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// resolve turns a template name or a transform spec into transforms
func (ce *CompareEngine) resolve(alt string) (string, string, []transform.InputTransform, error) {
	alt = strings.TrimSpace(alt)
	if template, ok := ce.TemplateRegistry.Get(alt); ok {
		return template.Name, template.Description, template.Transforms, nil
	}
	if strings.Contains(alt, ":") {
		tr, err := ce.TransformRegistry.ParseTransformSpec(alt)
		if err != nil {
			return "", "", nil, err
		}
		return alt, tr.Description(), []transform.InputTransform{tr}, nil
	}
	return "", "", nil, fmt.Errorf("template %s not found", alt)
}

func (ce *CompareEngine) calculate(name string, input *domain.TaxInput) (ComparisonResult, error) {
	b, err := ce.CalcEngine.ComputeBreakdown(calculation.Annualize(*input))
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, b), nil
}
