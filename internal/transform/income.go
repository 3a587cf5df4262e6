package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AdjustSalary scales the salary by a percentage, e.g. 10 for a 10% raise
// or -20 for a pay cut.
type AdjustSalary struct {
	Percent decimal.Decimal
}

func (a *AdjustSalary) Name() string {
	return "adjust_salary"
}

func (a *AdjustSalary) Description() string {
	return fmt.Sprintf("Adjust salary by %s%%", a.Percent.StringFixed(1))
}

func (a *AdjustSalary) Validate(base *domain.TaxInput) error {
	if err := requireBase(a.Name(), base); err != nil {
		return err
	}
	if a.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(a.Name(), "validate",
			fmt.Sprintf("percent must be greater than -100, got %s", a.Percent), nil)
	}
	return nil
}

func (a *AdjustSalary) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.DeepCopy()
	factor := decimal.NewFromInt(1).Add(a.Percent.Div(hundred))
	modified.Income.Salary = modified.Income.Salary.Mul(factor).Round(2)
	return modified, nil
}

// SetSalary replaces the salary with a fixed amount in the input's period
type SetSalary struct {
	Amount decimal.Decimal
}

func (s *SetSalary) Name() string {
	return "set_salary"
}

func (s *SetSalary) Description() string {
	return fmt.Sprintf("Set salary to %s", s.Amount.StringFixed(0))
}

func (s *SetSalary) Validate(base *domain.TaxInput) error {
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate",
			fmt.Sprintf("amount must be non-negative, got %s", s.Amount), nil)
	}
	return nil
}

func (s *SetSalary) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.DeepCopy()
	modified.Income.Salary = s.Amount
	return modified, nil
}

// SetMortgageInterest replaces the yearly interest paid on loans
type SetMortgageInterest struct {
	Amount decimal.Decimal
}

func (s *SetMortgageInterest) Name() string {
	return "set_mortgage_interest"
}

func (s *SetMortgageInterest) Description() string {
	return fmt.Sprintf("Pay %s in mortgage interest", s.Amount.StringFixed(0))
}

func (s *SetMortgageInterest) Validate(base *domain.TaxInput) error {
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate",
			fmt.Sprintf("amount must be non-negative, got %s", s.Amount), nil)
	}
	return nil
}

func (s *SetMortgageInterest) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.DeepCopy()
	modified.Financial.InterestExpenses = s.Amount
	return modified, nil
}

// AddBankDeposits adds to (or, when negative, withdraws from) the bank balance
type AddBankDeposits struct {
	Amount decimal.Decimal
}

func (a *AddBankDeposits) Name() string {
	return "add_bank_deposits"
}

func (a *AddBankDeposits) Description() string {
	return fmt.Sprintf("Add %s to bank deposits", a.Amount.StringFixed(0))
}

func (a *AddBankDeposits) Validate(base *domain.TaxInput) error {
	if err := requireBase(a.Name(), base); err != nil {
		return err
	}
	if base.Financial.TotalBankBalance.Add(a.Amount).IsNegative() {
		return NewTransformError(a.Name(), "validate",
			fmt.Sprintf("withdrawal of %s exceeds the bank balance %s", a.Amount.Neg(), base.Financial.TotalBankBalance), nil)
	}
	return nil
}

func (a *AddBankDeposits) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.DeepCopy()
	modified.Financial.TotalBankBalance = modified.Financial.TotalBankBalance.Add(a.Amount)
	return modified, nil
}
