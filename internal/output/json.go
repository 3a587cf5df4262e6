package output

import (
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/taxberg/internal/domain"
)

// BreakdownJSON is the wire form of a TaxBreakdown. Amounts are plain JSON
// numbers rounded to øre, matching what browser clients expect.
type BreakdownJSON struct {
	TaxYear                  int     `json:"taxYear"`
	TotalIncome              float64 `json:"totalIncome"`
	BracketTax               float64 `json:"bracketTax"`
	InsuranceContribution    float64 `json:"insuranceContribution"`
	CommonTax                float64 `json:"commonTax"`
	StandardDeduction        float64 `json:"standardDeduction"`
	MinimumDeduction         float64 `json:"minimumDeduction"`
	MortgageDeduction        float64 `json:"mortgageDeduction"`
	PropertyDeduction        float64 `json:"propertyDeduction"`
	ParentalDeduction        float64 `json:"parentalDeduction"`
	ParentalBenefitDeduction float64 `json:"parentalBenefitDeduction"`
	DisabilityDeduction      float64 `json:"disabilityDeduction"`
	ContributionCredits      float64 `json:"contributionCredits"`
	TravelDeduction          float64 `json:"travelDeduction"`
	OtherDeductions          float64 `json:"otherDeductions"`
	NetWealth                float64 `json:"netWealth"`
	WealthTax                float64 `json:"wealthTax"`
	TotalDeductions          float64 `json:"totalDeductions"`
	IncomeAfterDeductions    float64 `json:"incomeAfterDeductions"`
	TotalTax                 float64 `json:"totalTax"`
	NetPay                   float64 `json:"netPay"`
	MarginalTaxRate          float64 `json:"marginalTaxRate"`
	AverageTaxRate           float64 `json:"averageTaxRate"`
}

// NewBreakdownJSON converts a breakdown to its wire form
func NewBreakdownJSON(b domain.TaxBreakdown) BreakdownJSON {
	return BreakdownJSON{
		TaxYear:                  b.TaxYear,
		TotalIncome:              b.TotalIncome.InexactFloat64(),
		BracketTax:               b.BracketTax.InexactFloat64(),
		InsuranceContribution:    b.InsuranceContribution.InexactFloat64(),
		CommonTax:                b.CommonTax.InexactFloat64(),
		StandardDeduction:        b.StandardDeduction.InexactFloat64(),
		MinimumDeduction:         b.MinimumDeduction.InexactFloat64(),
		MortgageDeduction:        b.MortgageDeduction.InexactFloat64(),
		PropertyDeduction:        b.PropertyDeduction.InexactFloat64(),
		ParentalDeduction:        b.ParentalDeduction.InexactFloat64(),
		ParentalBenefitDeduction: b.ParentalBenefitDeduction.InexactFloat64(),
		DisabilityDeduction:      b.DisabilityDeduction.InexactFloat64(),
		ContributionCredits:      b.ContributionCredits.InexactFloat64(),
		TravelDeduction:          b.TravelDeduction.InexactFloat64(),
		OtherDeductions:          b.OtherDeductions.InexactFloat64(),
		NetWealth:                b.NetWealth.InexactFloat64(),
		WealthTax:                b.WealthTax.InexactFloat64(),
		TotalDeductions:          b.TotalDeductions.InexactFloat64(),
		IncomeAfterDeductions:    b.IncomeAfterDeductions.InexactFloat64(),
		TotalTax:                 b.TotalTax.InexactFloat64(),
		NetPay:                   b.NetPay.InexactFloat64(),
		MarginalTaxRate:          b.MarginalTaxRate.InexactFloat64(),
		AverageTaxRate:           b.AverageTaxRate.InexactFloat64(),
	}
}

// TaxbergJSON is the wire form of the taxberg figures
type TaxbergJSON struct {
	NetPay               float64       `json:"netPay"`
	TaxYouPay            float64       `json:"taxYouPay"`
	EmployerContribution float64       `json:"employerContribution"`
	TotalTaxPaid         float64       `json:"totalTaxPaid"`
	RealTaxRate          float64       `json:"realTaxRate"`
	StatePer10Kroner     float64       `json:"statePer10Kroner"`
	Shares               TaxSharesJSON `json:"shares"`
}

// TaxSharesJSON is the wire form of TaxShares
type TaxSharesJSON struct {
	BracketTax            float64 `json:"bracketTax"`
	InsuranceContribution float64 `json:"insuranceContribution"`
	CommonTax             float64 `json:"commonTax"`
}

// NewTaxbergJSON converts taxberg figures to their wire form
func NewTaxbergJSON(t Taxberg) TaxbergJSON {
	return TaxbergJSON{
		NetPay:               t.NetPay.InexactFloat64(),
		TaxYouPay:            t.TaxYouPay.InexactFloat64(),
		EmployerContribution: t.EmployerContribution.InexactFloat64(),
		TotalTaxPaid:         t.TotalTaxPaid.InexactFloat64(),
		RealTaxRate:          t.RealTaxRate.InexactFloat64(),
		StatePer10Kroner:     t.StatePer10Kroner.InexactFloat64(),
		Shares: TaxSharesJSON{
			BracketTax:            t.Shares.BracketTax.InexactFloat64(),
			InsuranceContribution: t.Shares.InsuranceContribution.InexactFloat64(),
			CommonTax:             t.Shares.CommonTax.InexactFloat64(),
		},
	}
}

// JSONFormatter renders the breakdown and taxberg figures as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	doc := struct {
		Breakdown BreakdownJSON `json:"breakdown"`
		Taxberg   TaxbergJSON   `json:"taxberg"`
	}{
		Breakdown: NewBreakdownJSON(r.Breakdown),
		Taxberg:   NewTaxbergJSON(r.Taxberg),
	}
	return json.MarshalIndent(doc, "", "  ")
}
