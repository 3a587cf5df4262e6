package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxberg/internal/domain"
)

// InputTransform defines the interface for all what-if transformations.
// Transforms are composable operations that modify a tax input in predictable
// ways, enabling scenario comparison, break-even analysis and the TUI.
type InputTransform interface {
	// Apply returns a modified copy of base. The base input is never mutated.
	Apply(base *domain.TaxInput) (*domain.TaxInput, error)

	// Name returns a short identifier for this transform (e.g., "adjust_salary").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.TaxInput) error
}

// ApplyTransforms applies a sequence of transforms to a base input.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base *domain.TaxInput, transforms []InputTransform) (*domain.TaxInput, error) {
	if base == nil {
		return nil, fmt.Errorf("base input cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func requireBase(name string, base *domain.TaxInput) error {
	if base == nil {
		return NewTransformError(name, "validate", "base input cannot be nil", nil)
	}
	return nil
}
