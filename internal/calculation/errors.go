package calculation

// CalculationError reports a computation that could not be completed. It is
// returned instead of a zeroed breakdown so callers can tell a failure from a
// taxpayer with no income.
type CalculationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *CalculationError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *CalculationError) Unwrap() error {
	return e.Cause
}
