package domain

import "github.com/shopspring/decimal"

// CalculatedResults is the fully derived output of the tax pipeline. Every
// field is a non-negative money amount rounded to cents, and exactly one of
// RefundAmount and AmountOwed is non-zero. The record is recomputed fresh on
// every invocation; nothing is cached between runs.
type CalculatedResults struct {
	TotalIncome         decimal.Decimal `yaml:"total_income" json:"totalIncome"`
	Adjustments         decimal.Decimal `yaml:"adjustments" json:"adjustments"`
	AdjustedGrossIncome decimal.Decimal `yaml:"adjusted_gross_income" json:"adjustedGrossIncome"`
	Deductions          decimal.Decimal `yaml:"deductions" json:"deductions"`
	TaxableIncome       decimal.Decimal `yaml:"taxable_income" json:"taxableIncome"`
	FederalTax          decimal.Decimal `yaml:"federal_tax" json:"federalTax"`
	Credits             decimal.Decimal `yaml:"credits" json:"credits"`
	TaxDue              decimal.Decimal `yaml:"tax_due" json:"taxDue"`
	Payments            decimal.Decimal `yaml:"payments" json:"payments"`
	RefundAmount        decimal.Decimal `yaml:"refund_amount" json:"refundAmount"`
	AmountOwed          decimal.Decimal `yaml:"amount_owed" json:"amountOwed"`
}
