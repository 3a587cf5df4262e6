package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_salary", createAdjustSalary)
	registry.Register("set_salary", createSetSalary)
	registry.Register("set_civil_status", createSetCivilStatus)
	registry.Register("set_children", createSetChildren)
	registry.Register("set_mortgage_interest", createSetMortgageInterest)
	registry.Register("add_bank_deposits", createAddBankDeposits)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_salary:percent=10"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform, key string, params map[string]string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createAdjustSalary(params map[string]string) (InputTransform, error) {
	percent, err := decimalParam("adjust_salary", "percent", params)
	if err != nil {
		return nil, err
	}
	return &AdjustSalary{Percent: percent}, nil
}

func createSetSalary(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_salary", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetSalary{Amount: amount}, nil
}

func createSetCivilStatus(params map[string]string) (InputTransform, error) {
	status, ok := params["status"]
	if !ok {
		return nil, fmt.Errorf("set_civil_status requires 'status' parameter")
	}
	return &SetCivilStatus{Status: domain.CivilStatus(strings.ToLower(status))}, nil
}

func createSetChildren(params map[string]string) (InputTransform, error) {
	countStr, ok := params["count"]
	if !ok {
		return nil, fmt.Errorf("set_children requires 'count' parameter")
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return nil, fmt.Errorf("invalid count value: %w", err)
	}
	return &SetChildren{Count: count}, nil
}

func createSetMortgageInterest(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_mortgage_interest", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetMortgageInterest{Amount: amount}, nil
}

func createAddBankDeposits(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("add_bank_deposits", "amount", params)
	if err != nil {
		return nil, err
	}
	return &AddBankDeposits{Amount: amount}, nil
}
