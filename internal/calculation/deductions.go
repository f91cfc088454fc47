package calculation

import (
	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// standardDeductions2023 is the fixed per-filing-status standard deduction
// table for the 2023 tax year.
var standardDeductions2023 = map[domain.FilingStatus]decimal.Decimal{
	domain.FilingSingle:          decimal.NewFromInt(13850),
	domain.FilingMarriedJoint:    decimal.NewFromInt(27700),
	domain.FilingMarriedSeparate: decimal.NewFromInt(13850),
	domain.FilingHeadOfHousehold: decimal.NewFromInt(20800),
	domain.FilingQualifyingWidow: decimal.NewFromInt(27700),
}

// ResolveDeduction returns the standard deduction for the filing status when
// the profile elects it, otherwise the pre-summed itemized total verbatim.
// Summing the itemized components is the form layer's job, not the engine's.
func ResolveDeduction(p *domain.TaxProfile) decimal.Decimal {
	if p.Deductions.UseStandard {
		return standardDeductions2023[p.FilingStatus]
	}
	return p.Deductions.ItemizedTotal
}
