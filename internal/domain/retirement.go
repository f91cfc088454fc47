package domain

import "github.com/shopspring/decimal"

// Lifestyle qualifier values accepted on RetirementInputs. Unknown strings
// are treated as the neutral middle option.
const (
	HealthExcellent = "excellent"
	HealthGood      = "good"
	HealthFair      = "fair"
	HealthPoor      = "poor"

	HousingOwnOutright = "own_outright"
	HousingMortgage    = "mortgage"
	HousingRent        = "rent"

	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"

	ExperienceNone        = "none"
	ExperienceSome        = "some"
	ExperienceExperienced = "experienced"
)

// RetirementInputs is the projector's own input record, supplied separately
// from the tax profile.
type RetirementInputs struct {
	CurrentAge            int             `yaml:"current_age" json:"currentAge"`
	RetirementAge         int             `yaml:"retirement_age" json:"retirementAge"`
	CurrentSavings        decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
	MonthlyContribution   decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
	ExpectedReturn        decimal.Decimal `yaml:"expected_return" json:"expectedReturn"`
	ReturnVolatility      decimal.Decimal `yaml:"return_volatility" json:"returnVolatility"`
	DesiredAnnualIncome   decimal.Decimal `yaml:"desired_annual_income" json:"desiredAnnualIncome"`
	SocialSecurityMonthly decimal.Decimal `yaml:"social_security_monthly" json:"socialSecurityMonthly"`

	// Financial and lifestyle qualifiers feeding the readiness score.
	EmergencyFundMonths  decimal.Decimal `yaml:"emergency_fund_months" json:"emergencyFundMonths"`
	MonthlyDebtPayments  decimal.Decimal `yaml:"monthly_debt_payments" json:"monthlyDebtPayments"`
	HealthStatus         string          `yaml:"health_status" json:"healthStatus"`
	HasHealthInsurance   bool            `yaml:"has_health_insurance" json:"hasHealthInsurance"`
	HousingStatus        string          `yaml:"housing_status" json:"housingStatus"`
	RiskTolerance        string          `yaml:"risk_tolerance" json:"riskTolerance"`
	InvestmentExperience string          `yaml:"investment_experience" json:"investmentExperience"`
}

// FilerContext is the subset of tax-profile data the retirement projector
// consumes. It flows one way; the projector never feeds back into the tax
// pipeline.
type FilerContext struct {
	AdjustedGrossIncome decimal.Decimal `yaml:"adjusted_gross_income" json:"adjustedGrossIncome"`
	FilingStatus        FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	Dependents          int             `yaml:"dependents" json:"dependents"`
}

// PercentileBands holds the ordered terminal-value distribution of a Monte
// Carlo run. Invariant: P5 <= P25 <= P50 <= P75 <= P95.
type PercentileBands struct {
	P5  decimal.Decimal `yaml:"p5" json:"p5"`
	P25 decimal.Decimal `yaml:"p25" json:"p25"`
	P50 decimal.Decimal `yaml:"p50" json:"p50"`
	P75 decimal.Decimal `yaml:"p75" json:"p75"`
	P95 decimal.Decimal `yaml:"p95" json:"p95"`
}

// RetirementAnalysis is the projector's output record.
type RetirementAnalysis struct {
	Score              int             `yaml:"score" json:"score"`
	ProjectedSavings   decimal.Decimal `yaml:"projected_savings" json:"projectedSavings"`
	TargetFund         decimal.Decimal `yaml:"target_fund" json:"targetFund"`
	AdditionalNeeded   decimal.Decimal `yaml:"additional_needed" json:"additionalNeeded"`
	MonthlyShortfall   decimal.Decimal `yaml:"monthly_shortfall" json:"monthlyShortfall"`
	Percentiles        PercentileBands `yaml:"percentiles" json:"percentiles"`
	SuccessProbability decimal.Decimal `yaml:"success_probability" json:"successProbability"`
	Recommendations    []string        `yaml:"recommendations" json:"recommendations"`
	Strengths          []string        `yaml:"strengths" json:"strengths"`
	Concerns           []string        `yaml:"concerns" json:"concerns"`
}
