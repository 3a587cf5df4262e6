// Package tuimsg holds the messages scenes send to the root model. It is
// separate from package tui so scenes can import it without a cycle.
package tuimsg

import (
	"github.com/rgehrsitz/taxberg/internal/domain"
)

// CalculateRequestedMsg asks the root model to compute a breakdown
type CalculateRequestedMsg struct {
	Input *domain.TaxInput
}

// CompareRequestedMsg asks the root model to compare the current input
// against the selected templates
type CompareRequestedMsg struct {
	Templates []string
}

// FormErrorMsg reports an input the form could not turn into a TaxInput
type FormErrorMsg struct {
	Err error
}
