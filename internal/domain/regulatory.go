package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxYearRules contains every rate, cap and threshold for one income year.
// Rule tables ship with the binary (see internal/rules); they are not user input.
type TaxYearRules struct {
	Metadata             RulesMetadata            `yaml:"metadata" json:"metadata"`
	BracketTax           []Bracket                `yaml:"bracket_tax" json:"bracket_tax"`
	InsuranceRate        decimal.Decimal          `yaml:"insurance_rate" json:"insurance_rate"`
	CommonTaxRate        decimal.Decimal          `yaml:"common_tax_rate" json:"common_tax_rate"`
	MinimumDeduction     MinimumDeductionRules    `yaml:"minimum_deduction" json:"minimum_deduction"`
	MortgageInterestRate decimal.Decimal          `yaml:"mortgage_interest_rate" json:"mortgage_interest_rate"`
	Property             CappedRate               `yaml:"property" json:"property"`
	Parental             ParentalRules            `yaml:"parental" json:"parental"`
	BenefitDeductions    BenefitDeductionRules    `yaml:"benefit_deductions" json:"benefit_deductions"`
	Contributions        []ContributionRule       `yaml:"contributions" json:"contributions"`
	Travel               TravelRules              `yaml:"travel" json:"travel"`
	Wealth               []WealthComponent        `yaml:"wealth" json:"wealth"`
	EmployerContribution EmployerContributionRule `yaml:"employer_contribution" json:"employer_contribution"`
}

// RulesMetadata describes where a rule table comes from
type RulesMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// Bracket is one step of a progressive schedule. Rate applies to the slice of
// the base between the previous bracket's UpTo and this one. A nil UpTo marks
// the open-ended top bracket.
type Bracket struct {
	UpTo *decimal.Decimal `yaml:"up_to,omitempty" json:"up_to,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// CappedRate is a percentage of a base limited to a ceiling
type CappedRate struct {
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
	Cap  decimal.Decimal `yaml:"cap" json:"cap"`
}

// MinimumDeductionRules holds the minstefradrag rate and ceiling by civil status
type MinimumDeductionRules struct {
	Single  CappedRate `yaml:"single" json:"single"`
	Married CappedRate `yaml:"married" json:"married"`
}

// ParentalRules holds the child deduction staircase
type ParentalRules struct {
	FirstChild      decimal.Decimal `yaml:"first_child" json:"first_child"`
	AdditionalChild decimal.Decimal `yaml:"additional_child" json:"additional_child"`
}

// BenefitDeductionRules holds deductions computed from state benefits
type BenefitDeductionRules struct {
	ParentalBenefitRate decimal.Decimal `yaml:"parental_benefit_rate" json:"parental_benefit_rate"`
	DisabilityRate      decimal.Decimal `yaml:"disability_rate" json:"disability_rate"`
}

// ContributionRule credits a capped contribution at a fixed rate. Field names a
// Deductions field: union_fee, ips, bsu or other_deductions. A nil Cap is uncapped.
type ContributionRule struct {
	Field      string           `yaml:"field" json:"field"`
	Cap        *decimal.Decimal `yaml:"cap,omitempty" json:"cap,omitempty"`
	CreditRate decimal.Decimal  `yaml:"credit_rate" json:"credit_rate"`
}

// TravelRules holds the reisefradrag parameters
type TravelRules struct {
	RatePerKilometer   decimal.Decimal `yaml:"rate_per_kilometer" json:"rate_per_kilometer"`
	CommuterThreshold  decimal.Decimal `yaml:"commuter_threshold" json:"commuter_threshold"`
	HomeVisitThreshold decimal.Decimal `yaml:"home_visit_threshold" json:"home_visit_threshold"`
	Cap                decimal.Decimal `yaml:"cap" json:"cap"`
}

// WealthComponent is one part of formueskatt (municipal or state)
type WealthComponent struct {
	Name     string    `yaml:"name" json:"name"`
	Brackets []Bracket `yaml:"brackets" json:"brackets"`
}

// EmployerContributionRule holds arbeidsgiveravgift, paid by the employer on salary
type EmployerContributionRule struct {
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// Validate checks that the rule table is internally consistent
func (r *TaxYearRules) Validate() error {
	if r.Metadata.TaxYear == 0 {
		return fmt.Errorf("metadata.tax_year is required")
	}
	if err := ValidateBrackets(r.BracketTax); err != nil {
		return fmt.Errorf("bracket_tax: %w", err)
	}
	for i, c := range r.Contributions {
		if c.Field == "" {
			return fmt.Errorf("contributions[%d]: field is required", i)
		}
		if c.CreditRate.IsNegative() {
			return fmt.Errorf("contributions[%d]: credit_rate cannot be negative", i)
		}
	}
	if len(r.Wealth) == 0 {
		return fmt.Errorf("wealth: at least one component is required")
	}
	for _, w := range r.Wealth {
		if err := ValidateBrackets(w.Brackets); err != nil {
			return fmt.Errorf("wealth %s: %w", w.Name, err)
		}
	}
	return nil
}

// ValidateBrackets checks a progressive schedule: ascending limits, non-negative
// rates, and exactly one open-ended bracket in last position.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("schedule has no brackets")
	}
	prev := decimal.Zero
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("bracket %d: rate cannot be negative", i)
		}
		last := i == len(brackets)-1
		if b.UpTo == nil {
			if !last {
				return fmt.Errorf("bracket %d: only the last bracket may be open-ended", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d: last bracket must be open-ended", i)
		}
		if b.UpTo.LessThanOrEqual(prev) && i > 0 {
			return fmt.Errorf("bracket %d: limit %s is not above previous limit %s", i, b.UpTo.String(), prev.String())
		}
		prev = *b.UpTo
	}
	return nil
}
