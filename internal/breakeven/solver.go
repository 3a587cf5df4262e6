package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/output"
	"github.com/rgehrsitz/taxberg/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	oneOere = decimal.RequireFromString("0.01")
)

// Solver finds the gross salary that produces a target breakdown figure
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize bisects over the annual salary. Both goals are non-decreasing in
// salary; the result is a salary, to the øre, whose figure is within
// tolerance of the target.
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	defaults := DefaultConstraints()
	if req.Constraints.MinSalary == nil {
		req.Constraints.MinSalary = defaults.MinSalary
	}
	if req.Constraints.MaxSalary == nil {
		req.Constraints.MaxSalary = defaults.MaxSalary
	}

	annual := calculation.Annualize(*req.BaseInput)
	baseBreakdown, err := s.CalcEngine.ComputeBreakdown(annual)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "failed to calculate base input", Cause: err}
	}

	iterations := 0
	evaluate := func(salary decimal.Decimal) (domain.TaxBreakdown, decimal.Decimal, error) {
		iterations++
		if err := ctx.Err(); err != nil {
			return domain.TaxBreakdown{}, decimal.Zero, &BreakEvenError{Operation: "optimize", Message: "cancelled", Cause: err}
		}
		modified, err := transform.ApplyTransforms(&annual, []transform.InputTransform{&transform.SetSalary{Amount: salary}})
		if err != nil {
			return domain.TaxBreakdown{}, decimal.Zero, &BreakEvenError{Operation: "optimize", Message: "failed to apply salary", Cause: err}
		}
		b, err := s.CalcEngine.ComputeBreakdown(*modified)
		if err != nil {
			return domain.TaxBreakdown{}, decimal.Zero, &BreakEvenError{Operation: "optimize", Message: "failed to calculate breakdown", Cause: err}
		}
		return b, metric(req.Goal, b), nil
	}

	lo, hi := *req.Constraints.MinSalary, *req.Constraints.MaxSalary

	loBreakdown, loValue, err := evaluate(lo)
	if err != nil {
		return nil, err
	}
	if loValue.GreaterThanOrEqual(req.Target.Sub(req.Tolerance)) {
		if loValue.GreaterThan(req.Target.Add(req.Tolerance)) {
			return nil, &BreakEvenError{
				Operation: "optimize",
				Message: fmt.Sprintf("target %s is below the %s already reached at a salary of %s",
					output.FormatCurrency(req.Target), req.Goal.figure(), output.FormatCurrency(lo)),
			}
		}
		return s.result(req, iterations, true, lo, loBreakdown, baseBreakdown), nil
	}

	hiBreakdown, hiValue, err := evaluate(hi)
	if err != nil {
		return nil, err
	}
	if hiValue.LessThan(req.Target.Sub(req.Tolerance)) {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message: fmt.Sprintf("target %s is out of reach: a salary of %s gives %s",
				output.FormatCurrency(req.Target), output.FormatCurrency(hi), output.FormatCurrency(hiValue)),
		}
	}

	// Invariant: value(lo) < target - tolerance <= value(hi)
	for iterations < req.MaxIterations && hi.Sub(lo).GreaterThan(oneOere) {
		mid := lo.Add(hi).Div(two).Round(2)
		b, value, err := evaluate(mid)
		if err != nil {
			return nil, err
		}

		if value.Sub(req.Target).Abs().LessThanOrEqual(req.Tolerance) {
			hi, hiBreakdown = mid, b
			if value.LessThanOrEqual(req.Target) {
				return s.result(req, iterations, true, hi, hiBreakdown, baseBreakdown), nil
			}
			continue
		}
		if value.LessThan(req.Target) {
			lo = mid
		} else {
			hi, hiBreakdown = mid, b
		}
	}

	success := metric(req.Goal, hiBreakdown).Sub(req.Target).Abs().LessThanOrEqual(req.Tolerance)
	return s.result(req, iterations, success, hi, hiBreakdown, baseBreakdown), nil
}

func (s *Solver) result(req OptimizationRequest, iterations int, success bool, salary decimal.Decimal, b, base domain.TaxBreakdown) *OptimizationResult {
	period := req.BaseInput.Period
	if !period.Valid() {
		period = domain.PeriodAnnual
	}

	r := &OptimizationResult{
		Request:            req,
		Success:            success,
		Iterations:         iterations,
		GrossSalary:        salary,
		Period:             period,
		PeriodSalary:       salary.Div(period.AnnualFactor()).Round(2),
		Breakdown:          b,
		BaseBreakdown:      base,
		SalaryDiffFromBase: b.TotalIncome.Sub(base.TotalIncome),
		TaxDiffFromBase:    b.TotalTax.Sub(base.TotalTax),
	}
	if success {
		r.ConvergenceInfo = fmt.Sprintf("Converged to target %s within %s", req.Goal.figure(), output.FormatCurrency(req.Tolerance))
	} else {
		r.ConvergenceInfo = fmt.Sprintf("Stopped after %d iterations without reaching the target", iterations)
	}
	return r
}

func metric(goal OptimizationGoal, b domain.TaxBreakdown) decimal.Decimal {
	if goal == GoalMatchTotalTax {
		return b.TotalTax
	}
	return b.NetPay
}

func (g OptimizationGoal) figure() string {
	if g == GoalMatchTotalTax {
		return "total tax"
	}
	return "net pay"
}
