package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/rules"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const minBirthYear = 1900

// MaxAmount bounds every money field; larger figures cannot be rendered as
// JSON numbers once annualized
var MaxAmount = decimal.New(1, 15)

// InputParser handles parsing of tax input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a tax input from a YAML or JSON file. JSON files use the
// camelCase field names of the HTTP API; everything else is read as YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input *domain.TaxInput
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		input, err = ip.ParseJSON(data)
	} else {
		input, err = ip.ParseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateInput(input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return input, nil
}

// ParseYAML decodes a snake_case YAML input on top of the form defaults
func (ip *InputParser) ParseYAML(data []byte) (*domain.TaxInput, error) {
	input := domain.NewTaxInput()
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &input, nil
}

// ParseJSON decodes a camelCase JSON input on top of the form defaults
func (ip *InputParser) ParseJSON(data []byte) (*domain.TaxInput, error) {
	input := domain.NewTaxInput()
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, describeJSONError(data, err)
	}
	return &input, nil
}

// wholeNumberFields are the integer fields of the JSON input
var wholeNumberFields = [][]string{
	{"taxYear"},
	{"personalInfo", "birthYear"},
	{"personalInfo", "spouseBirthYear"},
	{"personalInfo", "numberOfDependents"},
	{"deductions", "numberOfChildren"},
}

// describeJSONError names the offending field when the document is
// well-formed but does not fit the input record
func describeJSONError(data []byte, err error) error {
	if json.Valid(data) {
		var doc map[string]any
		if json.Unmarshal(data, &doc) == nil {
			for _, path := range wholeNumberFields {
				v, ok := lookupPath(doc, path)
				if !ok || v == nil {
					continue
				}
				if n, isNum := v.(float64); !isNum || n != math.Trunc(n) {
					return fmt.Errorf("%s: must be a whole number (got %v)", strings.Join(path, "."), v)
				}
			}
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fmt.Errorf("%s: cannot use %s as %v", typeErr.Field, typeErr.Value, typeErr.Type)
		}
	}
	return fmt.Errorf("failed to parse JSON: %w", err)
}

func lookupPath(doc map[string]any, path []string) (any, bool) {
	var cur any = doc
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// ValidateInput checks the record the way the calculator form does before
// submitting it. The engine itself accepts anything.
func (ip *InputParser) ValidateInput(input *domain.TaxInput) error {
	if input == nil {
		return fmt.Errorf("input is required")
	}
	if err := ip.validatePersonalInfo(&input.PersonalInfo); err != nil {
		return fmt.Errorf("personalInfo: %w", err)
	}
	if input.Period != "" && !input.Period.Valid() {
		return fmt.Errorf("period: unknown period %q (expected one of %v)", input.Period, domain.Periods)
	}
	if input.Deductions.NumberOfChildren < 0 {
		return fmt.Errorf("deductions.numberOfChildren: cannot be negative")
	}
	if err := validateMortgageShare(input.Financial.MortgageShare); err != nil {
		return fmt.Errorf("financial.mortgageShare: %w", err)
	}
	for _, f := range moneyFields(input) {
		if f.value.IsNegative() {
			return fmt.Errorf("%s: cannot be negative (got %s)", f.name, f.value.String())
		}
		if f.value.GreaterThan(MaxAmount) {
			return fmt.Errorf("%s: must not exceed %s", f.name, MaxAmount.String())
		}
	}
	if input.TaxYear != 0 {
		if _, err := rules.ForYear(input.TaxYear); err != nil {
			return fmt.Errorf("taxYear: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validatePersonalInfo(p *domain.PersonalInfo) error {
	if p.CivilStatus != "" && !p.CivilStatus.Valid() {
		return fmt.Errorf("civilStatus: unknown civil status %q", p.CivilStatus)
	}
	currentYear := time.Now().Year()
	if p.BirthYear != 0 && (p.BirthYear < minBirthYear || p.BirthYear > currentYear) {
		return fmt.Errorf("birthYear: must be between %d and %d", minBirthYear, currentYear)
	}
	if p.SpouseBirthYear != nil && (*p.SpouseBirthYear < minBirthYear || *p.SpouseBirthYear > currentYear) {
		return fmt.Errorf("spouseBirthYear: must be between %d and %d", minBirthYear, currentYear)
	}
	if p.NumberOfDependents < 0 {
		return fmt.Errorf("numberOfDependents: cannot be negative")
	}
	return nil
}

func validateMortgageShare(share decimal.Decimal) error {
	if share.IsNegative() || share.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("must be a percentage between 0 and 100")
	}
	return nil
}

type namedAmount struct {
	name  string
	value decimal.Decimal
}

// moneyFields lists the user-entered amounts with their API field names
func moneyFields(in *domain.TaxInput) []namedAmount {
	return []namedAmount{
		{"income.salary", in.Income.Salary},
		{"income.disabilityPension", in.Income.DisabilityPension},
		{"income.workAssessmentAllowance", in.Income.WorkAssessmentAllowance},
		{"income.unemploymentBenefits", in.Income.UnemploymentBenefits},
		{"income.maternityBenefits", in.Income.MaternityBenefits},
		{"income.sicknessBenefits", in.Income.SicknessBenefits},
		{"income.employerBenefits", in.Income.EmployerBenefits},
		{"income.dividend", in.Income.Dividend},
		{"income.otherIncome", in.Income.OtherIncome},
		{"businessIncome.fishingAgricultureIncome", in.BusinessIncome.FishingAgricultureIncome},
		{"businessIncome.otherBusinessIncome", in.BusinessIncome.OtherBusinessIncome},
		{"businessIncome.businessProfit", in.BusinessIncome.BusinessProfit},
		{"businessIncome.businessLoss", in.BusinessIncome.BusinessLoss},
		{"deductions.unionFee", in.Deductions.UnionFee},
		{"deductions.ips", in.Deductions.IPS},
		{"deductions.bsu", in.Deductions.BSU},
		{"deductions.otherDeductions", in.Deductions.OtherDeductions},
		{"travelExpenses.tripsPerYear", in.TravelExpenses.TripsPerYear},
		{"travelExpenses.kilometersPerTrip", in.TravelExpenses.KilometersPerTrip},
		{"travelExpenses.homeVisits", in.TravelExpenses.HomeVisits},
		{"travelExpenses.tollAndFerry", in.TravelExpenses.TollAndFerry},
		{"financial.totalBankBalance", in.Financial.TotalBankBalance},
		{"financial.investmentValue", in.Financial.InvestmentValue},
		{"financial.primaryResidenceValue", in.Financial.PrimaryResidenceValue},
		{"financial.secondaryResidenceValue", in.Financial.SecondaryResidenceValue},
		{"financial.vehicleValue", in.Financial.VehicleValue},
		{"financial.boatValue", in.Financial.BoatValue},
		{"financial.totalMortgage", in.Financial.TotalMortgage},
		{"financial.carLoan", in.Financial.CarLoan},
		{"financial.studentLoan", in.Financial.StudentLoan},
		{"financial.consumerLoan", in.Financial.ConsumerLoan},
		{"financial.otherLoans", in.Financial.OtherLoans},
		{"financial.interestIncome", in.Financial.InterestIncome},
		{"financial.interestExpenses", in.Financial.InterestExpenses},
	}
}
