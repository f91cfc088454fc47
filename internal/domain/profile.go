package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilingStatus identifies the federal filing status on a tax profile.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
	FilingQualifyingWidow FilingStatus = "qualifying_widow"
)

// Valid reports whether the status is one of the five recognized values.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case FilingSingle, FilingMarriedJoint, FilingMarriedSeparate,
		FilingHeadOfHousehold, FilingQualifyingWidow:
		return true
	}
	return false
}

// IsJoint reports whether the status carries two-contributor limits
// (doubled retirement-savings contribution cap, joint phase-out thresholds).
func (fs FilingStatus) IsJoint() bool {
	return fs == FilingMarriedJoint || fs == FilingQualifyingWidow
}

// IncomeItem is an ad-hoc income entry added by the filer outside the
// named income sources.
type IncomeItem struct {
	Type        string          `yaml:"type" json:"type"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// AdjustmentItem is an ad-hoc above-the-line adjustment entry.
type AdjustmentItem struct {
	Type        string          `yaml:"type" json:"type"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// Adjustments holds the above-the-line adjustments to income.
type Adjustments struct {
	StudentLoanInterest     decimal.Decimal  `yaml:"student_loan_interest" json:"studentLoanInterest"`
	RetirementContributions decimal.Decimal  `yaml:"retirement_contributions" json:"retirementContributions"`
	HSAContributions        decimal.Decimal  `yaml:"hsa_contributions" json:"hsaContributions"`
	OtherAdjustments        decimal.Decimal  `yaml:"other_adjustments" json:"otherAdjustments"`
	AdditionalItems         []AdjustmentItem `yaml:"additional_items,omitempty" json:"additionalItems,omitempty"`
}

// IncomeSources holds the named income fields plus any ad-hoc items.
// TotalIncome and AdjustedGrossIncome may carry precomputed values from the
// form layer; when positive they take precedence over recomputation (see
// calculation.AggregationPolicy).
type IncomeSources struct {
	Wages              decimal.Decimal `yaml:"wages" json:"wages"`
	OtherEarnedIncome  decimal.Decimal `yaml:"other_earned_income" json:"otherEarnedIncome"`
	InterestIncome     decimal.Decimal `yaml:"interest_income" json:"interestIncome"`
	DividendIncome     decimal.Decimal `yaml:"dividend_income" json:"dividendIncome"`
	BusinessIncome     decimal.Decimal `yaml:"business_income" json:"businessIncome"`
	CapitalGains       decimal.Decimal `yaml:"capital_gains" json:"capitalGains"`
	RentalIncome       decimal.Decimal `yaml:"rental_income" json:"rentalIncome"`
	RetirementIncome   decimal.Decimal `yaml:"retirement_income" json:"retirementIncome"`
	UnemploymentIncome decimal.Decimal `yaml:"unemployment_income" json:"unemploymentIncome"`
	OtherIncome        decimal.Decimal `yaml:"other_income" json:"otherIncome"`

	AdditionalItems []IncomeItem `yaml:"additional_items,omitempty" json:"additionalItems,omitempty"`
	Adjustments     Adjustments  `yaml:"adjustments" json:"adjustments"`

	TotalIncome         decimal.Decimal `yaml:"total_income" json:"totalIncome"`
	AdjustedGrossIncome decimal.Decimal `yaml:"adjusted_gross_income" json:"adjustedGrossIncome"`
}

// Deductions holds the standard-vs-itemized election and the itemized
// breakdown. ItemizedTotal is pre-summed by the form layer.
type Deductions struct {
	UseStandard       bool            `yaml:"use_standard" json:"useStandardDeduction"`
	Medical           decimal.Decimal `yaml:"medical" json:"medical"`
	StateLocalTaxes   decimal.Decimal `yaml:"state_local_taxes" json:"stateLocalTaxes"`
	RealEstateTaxes   decimal.Decimal `yaml:"real_estate_taxes" json:"realEstateTaxes"`
	MortgageInterest  decimal.Decimal `yaml:"mortgage_interest" json:"mortgageInterest"`
	CharitableCash    decimal.Decimal `yaml:"charitable_cash" json:"charitableCash"`
	CharitableNonCash decimal.Decimal `yaml:"charitable_non_cash" json:"charitableNonCash"`
	ItemizedTotal     decimal.Decimal `yaml:"itemized_total" json:"itemizedTotal"`
}

// TaxCredits holds user-entered credit values. A positive value for one of
// the auto-computable credits (child tax, child care, retirement savings)
// overrides the engine's own computation; a positive TotalCredits overrides
// the component sum. ChildCareExpenses feeds the dependent-care computation.
type TaxCredits struct {
	ChildTaxCredit          decimal.Decimal `yaml:"child_tax_credit" json:"childTaxCredit"`
	ChildCareCredit         decimal.Decimal `yaml:"child_care_credit" json:"childCareCredit"`
	RetirementSavingsCredit decimal.Decimal `yaml:"retirement_savings_credit" json:"retirementSavingsCredit"`
	EducationCredits        decimal.Decimal `yaml:"education_credits" json:"educationCredits"`
	OtherCredits            decimal.Decimal `yaml:"other_credits" json:"otherCredits"`
	ChildCareExpenses       decimal.Decimal `yaml:"child_care_expenses" json:"childCareExpenses"`
	TotalCredits            decimal.Decimal `yaml:"total_credits" json:"totalCredits"`
}

// AdditionalTax holds self-employment figures, estimated payments, and the
// other-income/other-taxes catch-alls.
type AdditionalTax struct {
	SelfEmploymentIncome decimal.Decimal `yaml:"self_employment_income" json:"selfEmploymentIncome"`
	SelfEmploymentTax    decimal.Decimal `yaml:"self_employment_tax" json:"selfEmploymentTax"`
	EstimatedTaxPayments decimal.Decimal `yaml:"estimated_tax_payments" json:"estimatedTaxPayments"`
	OtherIncome          decimal.Decimal `yaml:"other_income" json:"otherIncome"`
	OtherTaxes           decimal.Decimal `yaml:"other_taxes" json:"otherTaxes"`
}

// Dependent represents a claimed dependent. IsQualifyingChild, when set,
// overrides the age test for child tax credit eligibility.
type Dependent struct {
	Name              string    `yaml:"name,omitempty" json:"name,omitempty"`
	DateOfBirth       time.Time `yaml:"date_of_birth" json:"dateOfBirth"`
	IsQualifyingChild *bool     `yaml:"is_qualifying_child,omitempty" json:"isQualifyingChild,omitempty"`
	Relationship      string    `yaml:"relationship,omitempty" json:"relationship,omitempty"`
}

// AgeAtYearEnd calculates the dependent's age on December 31 of taxYear.
func (d Dependent) AgeAtYearEnd(taxYear int) int {
	yearEnd := time.Date(taxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	age := yearEnd.Year() - d.DateOfBirth.Year()
	if yearEnd.YearDay() < d.DateOfBirth.YearDay() {
		age--
	}
	return age
}

// TaxProfile is the complete filer input. It is created and mutated by the
// form layer; the engine treats it as a read-only snapshot per invocation.
type TaxProfile struct {
	FilingStatus  FilingStatus  `yaml:"filing_status" json:"filingStatus"`
	Income        IncomeSources `yaml:"income" json:"income"`
	Deductions    Deductions    `yaml:"deductions" json:"deductions"`
	TaxCredits    TaxCredits    `yaml:"tax_credits" json:"taxCredits"`
	AdditionalTax AdditionalTax `yaml:"additional_tax" json:"additionalTax"`
	Dependents    []Dependent   `yaml:"dependents,omitempty" json:"dependents,omitempty"`
}
