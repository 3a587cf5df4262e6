package rules

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rgehrsitz/taxberg/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultYear is the income year used when an input does not name one
const DefaultYear = 2025

//go:embed data/*.yaml
var ruleFiles embed.FS

var (
	loadOnce sync.Once
	byYear   map[int]*domain.TaxYearRules
	loadErr  error
)

// Parse decodes and validates a rule table
func Parse(data []byte) (*domain.TaxYearRules, error) {
	var r domain.TaxYearRules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &r, nil
}

func loadAll() {
	byYear = make(map[int]*domain.TaxYearRules)
	entries, err := ruleFiles.ReadDir("data")
	if err != nil {
		loadErr = fmt.Errorf("failed to list embedded rules: %w", err)
		return
	}
	for _, e := range entries {
		name := e.Name()
		year, err := strconv.Atoi(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			loadErr = fmt.Errorf("rules file %s is not named after a year", name)
			return
		}
		data, err := ruleFiles.ReadFile(path.Join("data", name))
		if err != nil {
			loadErr = fmt.Errorf("failed to read rules file %s: %w", name, err)
			return
		}
		r, err := Parse(data)
		if err != nil {
			loadErr = fmt.Errorf("rules file %s: %w", name, err)
			return
		}
		if r.Metadata.TaxYear != year {
			loadErr = fmt.Errorf("rules file %s declares tax year %d", name, r.Metadata.TaxYear)
			return
		}
		byYear[year] = r
	}
}

// ForYear returns the rule table for an income year. A zero year means DefaultYear.
// The returned rules are shared and must not be modified.
func ForYear(year int) (*domain.TaxYearRules, error) {
	loadOnce.Do(loadAll)
	if loadErr != nil {
		return nil, loadErr
	}
	if year == 0 {
		year = DefaultYear
	}
	r, ok := byYear[year]
	if !ok {
		return nil, fmt.Errorf("no tax rules for year %d (available: %v)", year, Years())
	}
	return r, nil
}

// Years lists the income years with a rule table, ascending
func Years() []int {
	loadOnce.Do(loadAll)
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
