package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxberg/internal/domain"
)

// SetCivilStatus switches between the single and married deduction rules
type SetCivilStatus struct {
	Status domain.CivilStatus
}

func (s *SetCivilStatus) Name() string {
	return "set_civil_status"
}

func (s *SetCivilStatus) Description() string {
	return fmt.Sprintf("Set civil status to %s", s.Status)
}

func (s *SetCivilStatus) Validate(base *domain.TaxInput) error {
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	if !s.Status.Valid() {
		return NewTransformError(s.Name(), "validate",
			fmt.Sprintf("unknown civil status %q", s.Status), nil)
	}
	return nil
}

func (s *SetCivilStatus) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.DeepCopy()
	modified.PersonalInfo.CivilStatus = s.Status
	return modified, nil
}

// SetChildren sets the number of children; zero clears the has-children flag
type SetChildren struct {
	Count int
}

func (s *SetChildren) Name() string {
	return "set_children"
}

func (s *SetChildren) Description() string {
	if s.Count == 1 {
		return "Have 1 child"
	}
	return fmt.Sprintf("Have %d children", s.Count)
}

func (s *SetChildren) Validate(base *domain.TaxInput) error {
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	if s.Count < 0 {
		return NewTransformError(s.Name(), "validate",
			fmt.Sprintf("count must be non-negative, got %d", s.Count), nil)
	}
	return nil
}

func (s *SetChildren) Apply(base *domain.TaxInput) (*domain.TaxInput, error) {
	modified := base.DeepCopy()
	modified.Deductions.NumberOfChildren = s.Count
	modified.PersonalInfo.HasChildren = s.Count > 0
	return modified, nil
}
