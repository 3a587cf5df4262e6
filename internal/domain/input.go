package domain

import (
	"github.com/shopspring/decimal"
)

// CivilStatus is the taxpayer's marital status as entered on the form
type CivilStatus string

const (
	CivilStatusSingle    CivilStatus = "single"
	CivilStatusMarried   CivilStatus = "married"
	CivilStatusSeparated CivilStatus = "separated"
	CivilStatusDivorced  CivilStatus = "divorced"
	CivilStatusWidowed   CivilStatus = "widowed"
)

// CivilStatuses lists every accepted civil status in form order
var CivilStatuses = []CivilStatus{
	CivilStatusSingle,
	CivilStatusMarried,
	CivilStatusSeparated,
	CivilStatusDivorced,
	CivilStatusWidowed,
}

// Valid reports whether the civil status is one of the known values
func (c CivilStatus) Valid() bool {
	for _, s := range CivilStatuses {
		if c == s {
			return true
		}
	}
	return false
}

// IsMarried reports whether the married deduction rules apply
func (c CivilStatus) IsMarried() bool {
	return c == CivilStatusMarried
}

// Period is the pay period the entered income amounts are denominated in
type Period string

const (
	PeriodAnnual      Period = "Annual"
	PeriodMonth       Period = "Month"
	PeriodSemiMonthly Period = "Semi-monthly"
	PeriodWeekly      Period = "Weekly"
	PeriodDay         Period = "Day"
	PeriodHour        Period = "Hour"
)

// Periods lists every accepted period
var Periods = []Period{PeriodAnnual, PeriodMonth, PeriodSemiMonthly, PeriodWeekly, PeriodDay, PeriodHour}

// Valid reports whether the period is one of the known values
func (p Period) Valid() bool {
	for _, v := range Periods {
		if p == v {
			return true
		}
	}
	return false
}

// AnnualFactor returns the multiplier that turns one period's amount into a year.
// Hourly pay assumes 40 hours over 48 working weeks.
func (p Period) AnnualFactor() decimal.Decimal {
	switch p {
	case PeriodMonth:
		return decimal.NewFromInt(12)
	case PeriodSemiMonthly:
		return decimal.NewFromInt(24)
	case PeriodWeekly:
		return decimal.NewFromInt(52)
	case PeriodDay:
		return decimal.NewFromInt(365)
	case PeriodHour:
		return decimal.NewFromInt(1920)
	default:
		return decimal.NewFromInt(1)
	}
}

// TaxInput is the canonical record collected by the calculator form.
// Fields documented as derived are recomputed by the engine and may be left empty.
type TaxInput struct {
	PersonalInfo   PersonalInfo   `yaml:"personal_info" json:"personalInfo"`
	Income         Income         `yaml:"income" json:"income"`
	BusinessIncome BusinessIncome `yaml:"business_income" json:"businessIncome"`
	Deductions     Deductions     `yaml:"deductions" json:"deductions"`
	TravelExpenses TravelExpenses `yaml:"travel_expenses" json:"travelExpenses"`
	Financial      Financial      `yaml:"financial" json:"financial"`
	Period         Period         `yaml:"period" json:"period"`
	Location       string         `yaml:"location" json:"location"`
	// TaxYear selects the rule table; zero means the engine's default year
	TaxYear int `yaml:"tax_year,omitempty" json:"taxYear,omitempty"`
}

// PersonalInfo holds the taxpayer's personal circumstances
type PersonalInfo struct {
	BirthYear            int         `yaml:"birth_year" json:"birthYear"`
	SpouseBirthYear      *int        `yaml:"spouse_birth_year,omitempty" json:"spouseBirthYear,omitempty"`
	CivilStatus          CivilStatus `yaml:"civil_status" json:"civilStatus"`
	HasChildren          bool        `yaml:"has_children" json:"hasChildren"`
	NumberOfDependents   int         `yaml:"number_of_dependents" json:"numberOfDependents"`
	FinnmarkDeduction    bool        `yaml:"finnmark_deduction" json:"finnmarkDeduction"`
	HasRegularEmployment bool        `yaml:"has_regular_employment" json:"hasRegularEmployment"`
	HasBeenOnSickLeave   bool        `yaml:"has_been_on_sick_leave" json:"hasBeenOnSickLeave"`
	HasOwnHome           bool        `yaml:"has_own_home" json:"hasOwnHome"`
	HasStudentLoans      bool        `yaml:"has_student_loans" json:"hasStudentLoans"`
	HasCarOrBoat         bool        `yaml:"has_car_or_boat" json:"hasCarOrBoat"`
	HasSecondHome        bool        `yaml:"has_second_home" json:"hasSecondHome"`
	HasShares            bool        `yaml:"has_shares" json:"hasShares"`
}

// Income holds personal income for the period
type Income struct {
	Salary                  decimal.Decimal `yaml:"salary" json:"salary"`
	DisabilityPension       decimal.Decimal `yaml:"disability_pension" json:"disabilityPension"`
	WorkAssessmentAllowance decimal.Decimal `yaml:"work_assessment_allowance" json:"workAssessmentAllowance"`
	UnemploymentBenefits    decimal.Decimal `yaml:"unemployment_benefits" json:"unemploymentBenefits"`
	MaternityBenefits       decimal.Decimal `yaml:"maternity_benefits" json:"maternityBenefits"`
	SicknessBenefits        decimal.Decimal `yaml:"sickness_benefits" json:"sicknessBenefits"`
	EmployerBenefits        decimal.Decimal `yaml:"employer_benefits" json:"employerBenefits"`
	Dividend                decimal.Decimal `yaml:"dividend" json:"dividend"`
	OtherIncome             decimal.Decimal `yaml:"other_income" json:"otherIncome"`
}

// BusinessIncome holds self-employment income
type BusinessIncome struct {
	FishingAgricultureIncome decimal.Decimal `yaml:"fishing_agriculture_income" json:"fishingAgricultureIncome"`
	OtherBusinessIncome      decimal.Decimal `yaml:"other_business_income" json:"otherBusinessIncome"`
	BusinessProfit           decimal.Decimal `yaml:"business_profit" json:"businessProfit"`
	BusinessLoss             decimal.Decimal `yaml:"business_loss" json:"businessLoss"`
	TotalIncome              decimal.Decimal `yaml:"total_income" json:"totalIncome"` // derived
}

// Deductions holds the deduction section of the form
type Deductions struct {
	StandardDeduction     decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"` // derived
	UnionFee              decimal.Decimal `yaml:"union_fee" json:"unionFee"`
	IPS                   decimal.Decimal `yaml:"ips" json:"ips"`
	BSU                   decimal.Decimal `yaml:"bsu" json:"bsu"`
	ParentalDeduction     decimal.Decimal `yaml:"parental_deduction" json:"parentalDeduction"` // derived
	NumberOfChildren      int             `yaml:"number_of_children" json:"numberOfChildren"`
	OtherDeductions       decimal.Decimal `yaml:"other_deductions" json:"otherDeductions"`
	TotalDeductions       decimal.Decimal `yaml:"total_deductions" json:"totalDeductions"`             // derived
	IncomeAfterDeductions decimal.Decimal `yaml:"income_after_deductions" json:"incomeAfterDeductions"` // derived
}

// TravelExpenses holds commuting and home-visit travel
type TravelExpenses struct {
	TripsPerYear        decimal.Decimal `yaml:"trips_per_year" json:"tripsPerYear"`
	KilometersPerTrip   decimal.Decimal `yaml:"kilometers_per_trip" json:"kilometersPerTrip"`
	HomeVisits          decimal.Decimal `yaml:"home_visits" json:"homeVisits"`
	TollAndFerry        decimal.Decimal `yaml:"toll_and_ferry" json:"tollAndFerry"`
	TotalTravelExpenses decimal.Decimal `yaml:"total_travel_expenses" json:"totalTravelExpenses"` // derived
}

// Financial holds assets, debt and capital items plus the derived tax figures
type Financial struct {
	TotalBankBalance        decimal.Decimal `yaml:"total_bank_balance" json:"totalBankBalance"`
	InvestmentValue         decimal.Decimal `yaml:"investment_value" json:"investmentValue"`
	PrimaryResidenceValue   decimal.Decimal `yaml:"primary_residence_value" json:"primaryResidenceValue"`
	SecondaryResidenceValue decimal.Decimal `yaml:"secondary_residence_value" json:"secondaryResidenceValue"`
	VehicleValue            decimal.Decimal `yaml:"vehicle_value" json:"vehicleValue"`
	BoatValue               decimal.Decimal `yaml:"boat_value" json:"boatValue"`
	TotalAssets             decimal.Decimal `yaml:"total_assets" json:"totalAssets"` // derived

	MortgageShare decimal.Decimal `yaml:"mortgage_share" json:"mortgageShare"` // percent of the mortgage owned
	TotalMortgage decimal.Decimal `yaml:"total_mortgage" json:"totalMortgage"`
	CarLoan       decimal.Decimal `yaml:"car_loan" json:"carLoan"`
	StudentLoan   decimal.Decimal `yaml:"student_loan" json:"studentLoan"`
	ConsumerLoan  decimal.Decimal `yaml:"consumer_loan" json:"consumerLoan"`
	OtherLoans    decimal.Decimal `yaml:"other_loans" json:"otherLoans"`
	TotalDebt     decimal.Decimal `yaml:"total_debt" json:"totalDebt"` // derived

	InterestIncome        decimal.Decimal `yaml:"interest_income" json:"interestIncome"`
	InterestExpenses      decimal.Decimal `yaml:"interest_expenses" json:"interestExpenses"`
	InvestmentGainsLosses decimal.Decimal `yaml:"investment_gains_losses" json:"investmentGainsLosses"`

	// Derived from the breakdown by Annotate
	SocialSecurityContribution decimal.Decimal `yaml:"social_security_contribution" json:"socialSecurityContribution"`
	GeneralIncomeTax           decimal.Decimal `yaml:"general_income_tax" json:"generalIncomeTax"`
	BracketTax                 decimal.Decimal `yaml:"bracket_tax" json:"bracketTax"`
	WealthTax                  decimal.Decimal `yaml:"wealth_tax" json:"wealthTax"`
	TotalTax                   decimal.Decimal `yaml:"total_tax" json:"totalTax"`
	WithholdingPercentage      decimal.Decimal `yaml:"withholding_percentage" json:"withholdingPercentage"`
}

// NewTaxInput returns an input populated with the form's default values
func NewTaxInput() TaxInput {
	return TaxInput{
		PersonalInfo: PersonalInfo{CivilStatus: CivilStatusSingle},
		Period:       PeriodAnnual,
		Location:     "Norway",
	}
}

// DeepCopy returns a copy that shares no pointers with the receiver
func (in *TaxInput) DeepCopy() *TaxInput {
	if in == nil {
		return nil
	}
	out := *in
	if in.PersonalInfo.SpouseBirthYear != nil {
		y := *in.PersonalInfo.SpouseBirthYear
		out.PersonalInfo.SpouseBirthYear = &y
	}
	return &out
}
