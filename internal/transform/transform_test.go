package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// Helper function to create a basic test input
func createTestInput() *domain.TaxInput {
	in := domain.NewTaxInput()
	in.Income.Salary = decimal.NewFromInt(500000)
	in.Financial.TotalBankBalance = decimal.NewFromInt(200000)
	spouse := 1985
	in.PersonalInfo.SpouseBirthYear = &spouse
	return &in
}

func TestApplyTransforms_NilInput(t *testing.T) {
	_, err := ApplyTransforms(nil, []InputTransform{&SetSalary{Amount: decimal.NewFromInt(1)}})
	if err == nil {
		t.Error("Expected error for nil input, got nil")
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result == base {
		t.Error("Expected a copy, got the base pointer")
	}
	if !result.Income.Salary.Equal(base.Income.Salary) {
		t.Errorf("Expected salary %s, got %s", base.Income.Salary, result.Income.Salary)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestInput(), []InputTransform{nil})
	if err == nil || !strings.Contains(err.Error(), "index 0 is nil") {
		t.Errorf("Expected nil transform error, got: %v", err)
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := createTestInput()
	transforms := []InputTransform{
		&AdjustSalary{Percent: decimal.NewFromInt(10)},
		&SetCivilStatus{Status: domain.CivilStatusMarried},
		&SetChildren{Count: 2},
		&SetMortgageInterest{Amount: decimal.NewFromInt(50000)},
		&AddBankDeposits{Amount: decimal.NewFromInt(100000)},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Income.Salary.Equal(decimal.NewFromInt(550000)) {
		t.Errorf("Expected salary 550000, got %s", result.Income.Salary)
	}
	if result.PersonalInfo.CivilStatus != domain.CivilStatusMarried {
		t.Errorf("Expected married, got %s", result.PersonalInfo.CivilStatus)
	}
	if result.Deductions.NumberOfChildren != 2 || !result.PersonalInfo.HasChildren {
		t.Errorf("Expected two children, got %d (hasChildren=%v)",
			result.Deductions.NumberOfChildren, result.PersonalInfo.HasChildren)
	}
	if !result.Financial.InterestExpenses.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected interest 50000, got %s", result.Financial.InterestExpenses)
	}
	if !result.Financial.TotalBankBalance.Equal(decimal.NewFromInt(300000)) {
		t.Errorf("Expected bank balance 300000, got %s", result.Financial.TotalBankBalance)
	}

	// Base must be untouched
	if !base.Income.Salary.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("Base salary was mutated: %s", base.Income.Salary)
	}
	if base.PersonalInfo.CivilStatus != domain.CivilStatusSingle {
		t.Errorf("Base civil status was mutated: %s", base.PersonalInfo.CivilStatus)
	}
}

func TestApplyTransforms_DeepCopiesSpouseBirthYear(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, []InputTransform{&SetChildren{Count: 1}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	*result.PersonalInfo.SpouseBirthYear = 1990
	if *base.PersonalInfo.SpouseBirthYear != 1985 {
		t.Errorf("Base spouse birth year shared with copy: %d", *base.PersonalInfo.SpouseBirthYear)
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	_, err := ApplyTransforms(createTestInput(), []InputTransform{
		&SetChildren{Count: 1},
		&SetChildren{Count: -1},
	})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError in chain, got %T", err)
	}
	if te.TransformName != "set_children" || te.Operation != "validate" {
		t.Errorf("Unexpected error fields: %+v", te)
	}
}

func TestAdjustSalary(t *testing.T) {
	tests := []struct {
		name    string
		percent string
		want    string
		wantErr bool
	}{
		{"raise", "10", "550000", false},
		{"pay cut", "-20", "400000", false},
		{"fractional", "2.5", "512500", false},
		{"whole salary", "-100", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &AdjustSalary{Percent: decimal.RequireFromString(tt.percent)}
			base := createTestInput()

			err := tr.Validate(base)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected validation error: %v", err)
			}

			result, err := tr.Apply(base)
			if err != nil {
				t.Fatalf("Unexpected apply error: %v", err)
			}
			if !result.Income.Salary.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Expected %s, got %s", tt.want, result.Income.Salary)
			}
		})
	}
}

func TestSetSalary_Negative(t *testing.T) {
	err := (&SetSalary{Amount: decimal.NewFromInt(-1)}).Validate(createTestInput())
	if err == nil {
		t.Error("Expected error for negative salary")
	}
}

func TestSetCivilStatus_Unknown(t *testing.T) {
	err := (&SetCivilStatus{Status: "complicated"}).Validate(createTestInput())
	if err == nil || !strings.Contains(err.Error(), "unknown civil status") {
		t.Errorf("Expected unknown civil status error, got: %v", err)
	}
}

func TestSetChildren_Zero(t *testing.T) {
	base := createTestInput()
	base.PersonalInfo.HasChildren = true
	base.Deductions.NumberOfChildren = 3

	result, err := (&SetChildren{Count: 0}).Apply(base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.PersonalInfo.HasChildren || result.Deductions.NumberOfChildren != 0 {
		t.Errorf("Expected no children, got %d (hasChildren=%v)",
			result.Deductions.NumberOfChildren, result.PersonalInfo.HasChildren)
	}
}

func TestAddBankDeposits_Overdraw(t *testing.T) {
	tr := &AddBankDeposits{Amount: decimal.NewFromInt(-300000)}
	if err := tr.Validate(createTestInput()); err == nil {
		t.Error("Expected error when withdrawing more than the balance")
	}

	tr = &AddBankDeposits{Amount: decimal.NewFromInt(-200000)}
	if err := tr.Validate(createTestInput()); err != nil {
		t.Errorf("Withdrawing the whole balance should be allowed: %v", err)
	}
}

func TestValidate_NilBase(t *testing.T) {
	transforms := []InputTransform{
		&AdjustSalary{},
		&SetSalary{},
		&SetCivilStatus{Status: domain.CivilStatusSingle},
		&SetChildren{},
		&SetMortgageInterest{},
		&AddBankDeposits{},
	}
	for _, tr := range transforms {
		if err := tr.Validate(nil); err == nil {
			t.Errorf("%s: expected error for nil base", tr.Name())
		}
	}
}

func TestTransformError(t *testing.T) {
	cause := errors.New("boom")
	err := NewTransformError("set_salary", "apply", "could not set", cause)

	if got := err.Error(); got != "transform set_salary (apply): could not set: boom" {
		t.Errorf("Unexpected message: %s", got)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}

	err = NewTransformError("set_salary", "validate", "bad", nil)
	if got := err.Error(); got != "transform set_salary (validate): bad" {
		t.Errorf("Unexpected message: %s", got)
	}
}
