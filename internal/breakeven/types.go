package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationGoal defines which breakdown figure the solver matches
type OptimizationGoal string

const (
	GoalMatchNetPay   OptimizationGoal = "match_net_pay"   // Salary that leaves a target net pay
	GoalMatchTotalTax OptimizationGoal = "match_total_tax" // Salary at which the tax bill reaches a target
)

// Constraints bound the annual gross salary the solver may pick
type Constraints struct {
	MinSalary *decimal.Decimal `json:"min_salary,omitempty"`
	MaxSalary *decimal.Decimal `json:"max_salary,omitempty"`
}

// DefaultConstraints searches between zero and 100 million kroner
func DefaultConstraints() Constraints {
	minSalary := decimal.Zero
	maxSalary := decimal.NewFromInt(100_000_000)
	return Constraints{
		MinSalary: &minSalary,
		MaxSalary: &maxSalary,
	}
}

// OptimizationRequest defines the parameters for one solver run. All amounts
// are annual; the base input is annualized before solving.
type OptimizationRequest struct {
	BaseInput     *domain.TaxInput `json:"-"`
	Goal          OptimizationGoal `json:"goal"`
	Target        decimal.Decimal  `json:"target"`
	Constraints   Constraints      `json:"constraints"`
	MaxIterations int              `json:"max_iterations"`
	Tolerance     decimal.Decimal  `json:"tolerance"` // Accepted distance from the target in kroner
}

// OptimizationResult contains the results of a solver run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Salary found, annually and in the base input's pay period
	GrossSalary  decimal.Decimal `json:"gross_salary"`
	Period       domain.Period   `json:"period"`
	PeriodSalary decimal.Decimal `json:"period_salary"`

	Breakdown domain.TaxBreakdown `json:"breakdown"`

	// Comparison to the unmodified input
	BaseBreakdown      domain.TaxBreakdown `json:"base_breakdown"`
	SalaryDiffFromBase decimal.Decimal     `json:"salary_diff_from_base"`
	TaxDiffFromBase    decimal.Decimal     `json:"tax_diff_from_base"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance in kroner
	MaxIterations int             // Maximum breakdown evaluations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 100,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinSalary != nil && c.MinSalary.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_salary cannot be negative",
		}
	}
	if c.MinSalary != nil && c.MaxSalary != nil && c.MinSalary.GreaterThan(*c.MaxSalary) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_salary cannot be greater than max_salary",
		}
	}
	return nil
}

// Validate checks the request before any breakdown is computed
func (r *OptimizationRequest) Validate() error {
	if r.BaseInput == nil {
		return &BreakEvenError{Operation: "validate_request", Message: "base input is required"}
	}
	switch r.Goal {
	case GoalMatchNetPay, GoalMatchTotalTax:
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unsupported optimization goal: %s", r.Goal),
		}
	}
	if r.Target.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("target cannot be negative, got %s", r.Target),
		}
	}
	return r.Constraints.Validate()
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
