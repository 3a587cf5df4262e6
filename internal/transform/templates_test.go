package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "Test_Template", Description: "A test template"})

	retrieved, ok := registry.Get("test_template")
	require.True(t, ok)
	assert.Equal(t, "Test_Template", retrieved.Name)

	_, ok = registry.Get(" TEST_TEMPLATE ")
	assert.True(t, ok, "lookup is case-insensitive")

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{"raise_10pct", "married", "two_children", "mortgage_50k", "save_1m", "family"} {
		tmpl, ok := registry.Get(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, tmpl.Transforms, name)
		assert.NotEmpty(t, tmpl.Description, name)
	}

	names := registry.List()
	assert.True(t, len(names) >= 6)
	assert.IsNonDecreasing(t, names)
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := createTestInput()

	tests := []struct {
		name  string
		check func(t *testing.T, in *domain.TaxInput)
	}{
		{"raise_10pct", func(t *testing.T, in *domain.TaxInput) {
			assert.True(t, decimal.NewFromInt(550000).Equal(in.Income.Salary))
		}},
		{"married", func(t *testing.T, in *domain.TaxInput) {
			assert.Equal(t, domain.CivilStatusMarried, in.PersonalInfo.CivilStatus)
		}},
		{"two_children", func(t *testing.T, in *domain.TaxInput) {
			assert.Equal(t, 2, in.Deductions.NumberOfChildren)
			assert.True(t, in.PersonalInfo.HasChildren)
		}},
		{"mortgage_50k", func(t *testing.T, in *domain.TaxInput) {
			assert.True(t, decimal.NewFromInt(50000).Equal(in.Financial.InterestExpenses))
		}},
		{"family", func(t *testing.T, in *domain.TaxInput) {
			assert.Equal(t, domain.CivilStatusMarried, in.PersonalInfo.CivilStatus)
			assert.Equal(t, 2, in.Deductions.NumberOfChildren)
			assert.True(t, decimal.NewFromInt(50000).Equal(in.Financial.InterestExpenses))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, ok := registry.Get(tt.name)
			require.True(t, ok)

			result, err := ApplyTemplate(base, tmpl)
			require.NoError(t, err)
			tt.check(t, result)
		})
	}

	assert.True(t, decimal.NewFromInt(500000).Equal(base.Income.Salary), "templates never mutate the base")
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"raise_10pct", "married"}, ParseTemplateList(" raise_10pct, ,married "))
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	assert.True(t, strings.HasPrefix(help, "Available Templates:"))
	assert.Contains(t, help, "raise_10pct")
	assert.Contains(t, help, "taxberg compare")
	assert.Less(t, strings.Index(help, "family"), strings.Index(help, "married"), "templates are listed alphabetically")

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}
