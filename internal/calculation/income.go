package calculation

import (
	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// AggregationPolicy names the precedence rule applied when a profile carries
// precomputed totals alongside its component fields. The form layer may have
// performed manual total entry or adjustment, so under TrustPrecomputed a
// positive precomputed value wins verbatim and divergence from the component
// sum is not detected. RecomputeFromParts ignores precomputed totals and
// always derives from components.
type AggregationPolicy int

const (
	TrustPrecomputed AggregationPolicy = iota
	RecomputeFromParts
)

// AggregateIncome produces the filer's total income. Under TrustPrecomputed
// a positive Income.TotalIncome is used as-is; otherwise the total is the
// sum of the named sources, self-employment income, additional-tax other
// income, and all ad-hoc income items.
func AggregateIncome(p *domain.TaxProfile, policy AggregationPolicy) decimal.Decimal {
	if policy == TrustPrecomputed && p.Income.TotalIncome.GreaterThan(decimal.Zero) {
		return p.Income.TotalIncome
	}

	total := p.Income.Wages.
		Add(p.Income.OtherEarnedIncome).
		Add(p.Income.InterestIncome).
		Add(p.Income.DividendIncome).
		Add(p.Income.BusinessIncome).
		Add(p.Income.CapitalGains).
		Add(p.Income.RentalIncome).
		Add(p.Income.RetirementIncome).
		Add(p.Income.UnemploymentIncome).
		Add(p.Income.OtherIncome).
		Add(p.AdditionalTax.SelfEmploymentIncome).
		Add(p.AdditionalTax.OtherIncome)

	for _, item := range p.Income.AdditionalItems {
		total = total.Add(item.Amount)
	}

	return total
}
