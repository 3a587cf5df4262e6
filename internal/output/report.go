package output

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a formatter renders for one calculation
type Report struct {
	Input     domain.TaxInput
	Breakdown domain.TaxBreakdown
	Taxberg   Taxberg
}

// NewReport bundles an annualized input with its breakdown and taxberg figures
func NewReport(input domain.TaxInput, b domain.TaxBreakdown) *Report {
	return &Report{
		Input:     input,
		Breakdown: b,
		Taxberg:   NewTaxberg(b, input.Income.Salary),
	}
}

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

var formatters = map[string]Formatter{
	"console":         ConsoleFormatter{},
	"console-verbose": ConsoleFormatter{Verbose: true},
	"json":            JSONFormatter{},
	"csv":             CSVFormatter{},
	"html":            HTMLFormatter{},
}

var formatAliases = map[string]string{
	"text":    "console",
	"table":   "console",
	"verbose": "console-verbose",
}

// GetFormatterByName returns the formatter for a name or alias, nil if unknown
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// FormatCurrency formats an amount as whole kroner with space-grouped
// thousands, e.g. "449 685 kr"
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Round(0).Abs().String()
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if amount.Round(0).IsNegative() {
		return "-" + b.String() + " kr"
	}
	return b.String() + " kr"
}

// FormatPercentage formats a percentage with one decimal, e.g. "10.1%"
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}
