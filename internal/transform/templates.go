package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common household changes
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Salary
	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Get a 10% raise",
		Transforms:  []InputTransform{&AdjustSalary{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "raise_20pct",
		Description: "Get a 20% raise",
		Transforms:  []InputTransform{&AdjustSalary{Percent: decimal.NewFromInt(20)}},
	})
	registry.Register(Template{
		Name:        "pay_cut_10pct",
		Description: "Take a 10% pay cut",
		Transforms:  []InputTransform{&AdjustSalary{Percent: decimal.NewFromInt(-10)}},
	})

	// Household
	registry.Register(Template{
		Name:        "married",
		Description: "Get married (married minimum deduction rules)",
		Transforms:  []InputTransform{&SetCivilStatus{Status: domain.CivilStatusMarried}},
	})
	registry.Register(Template{
		Name:        "one_child",
		Description: "Have one child",
		Transforms:  []InputTransform{&SetChildren{Count: 1}},
	})
	registry.Register(Template{
		Name:        "two_children",
		Description: "Have two children",
		Transforms:  []InputTransform{&SetChildren{Count: 2}},
	})

	// Home and savings
	registry.Register(Template{
		Name:        "mortgage_50k",
		Description: "Pay 50 000 kr a year in mortgage interest",
		Transforms:  []InputTransform{&SetMortgageInterest{Amount: decimal.NewFromInt(50000)}},
	})
	registry.Register(Template{
		Name:        "save_1m",
		Description: "Put 1 000 000 kr more in the bank",
		Transforms:  []InputTransform{&AddBankDeposits{Amount: decimal.NewFromInt(1000000)}},
	})

	// Combination
	registry.Register(Template{
		Name:        "family",
		Description: "Married with two children and a 50 000 kr mortgage interest bill",
		Transforms: []InputTransform{
			&SetCivilStatus{Status: domain.CivilStatusMarried},
			&SetChildren{Count: 2},
			&SetMortgageInterest{Amount: decimal.NewFromInt(50000)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base input
func ApplyTemplate(base *domain.TaxInput, template Template) (*domain.TaxInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-16s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  taxberg compare input.yaml --with raise_10pct,married\n")
	sb.WriteString("  taxberg compare input.yaml --with family\n")

	return sb.String()
}
