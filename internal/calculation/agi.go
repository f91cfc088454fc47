package calculation

import (
	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

var two = decimal.NewFromInt(2)

// ReconcileAGI derives adjusted gross income and total adjustments. Under
// TrustPrecomputed, when the profile carries both a positive total income
// and a positive AGI, the AGI is taken verbatim and adjustments fall out by
// subtraction. Otherwise adjustments are summed from the adjustment fields,
// half of self-employment tax (rounded to cents before inclusion), and the
// ad-hoc adjustment items, and AGI is totalIncome minus that sum.
//
// AGI may come out negative here; the clamp happens at the taxable-income
// step, not in this function.
func ReconcileAGI(p *domain.TaxProfile, totalIncome decimal.Decimal, policy AggregationPolicy) (agi, adjustments decimal.Decimal) {
	if policy == TrustPrecomputed &&
		p.Income.TotalIncome.GreaterThan(decimal.Zero) &&
		p.Income.AdjustedGrossIncome.GreaterThan(decimal.Zero) {
		return p.Income.AdjustedGrossIncome, p.Income.TotalIncome.Sub(p.Income.AdjustedGrossIncome)
	}

	halfSETax := p.AdditionalTax.SelfEmploymentTax.Div(two).Round(2)

	adjustments = p.Income.Adjustments.StudentLoanInterest.
		Add(p.Income.Adjustments.RetirementContributions).
		Add(p.Income.Adjustments.HSAContributions).
		Add(p.Income.Adjustments.OtherAdjustments).
		Add(halfSETax)

	for _, item := range p.Income.Adjustments.AdditionalItems {
		adjustments = adjustments.Add(item.Amount)
	}

	return totalIncome.Sub(adjustments), adjustments
}
