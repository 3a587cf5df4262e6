package breakeven

import (
	"context"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTargets runs one optimization per target and returns the results in
// target order. The first failure stops the run.
func (s *Solver) SolveTargets(
	ctx context.Context,
	base *domain.TaxInput,
	goal OptimizationGoal,
	targets []decimal.Decimal,
	constraints Constraints,
) ([]OptimizationResult, error) {
	if len(targets) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_targets",
			Message:   "at least one target is required",
		}
	}

	results := make([]OptimizationResult, 0, len(targets))
	for _, target := range targets {
		result, err := s.Optimize(ctx, OptimizationRequest{
			BaseInput:     base,
			Goal:          goal,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	return results, nil
}
