package calculation

import (
	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// saverTiers holds the three ascending AGI thresholds selecting the 50%,
// 20%, and 10% retirement-savings-credit rates. AGI above the last
// threshold earns no credit.
type saverTiers struct {
	fifty  decimal.Decimal
	twenty decimal.Decimal
	ten    decimal.Decimal
}

// CreditCalculator computes the four phased-out credits. All outputs are
// clamped at zero and rounded to cents.
type CreditCalculator struct {
	Year int

	childCreditPerChild  decimal.Decimal
	otherDependentCredit decimal.Decimal
	phaseOutStep         decimal.Decimal
	phaseOutPerStep      decimal.Decimal
	phaseOutThresholds   map[domain.FilingStatus]decimal.Decimal
	saverContributionCap decimal.Decimal
	saverTiersByStatus   map[domain.FilingStatus]saverTiers
	careExpenseCapOne    decimal.Decimal
	careExpenseCapMany   decimal.Decimal
	careRateFloorAGI     decimal.Decimal
	careRateStep         decimal.Decimal
}

// NewCreditCalculator2023 creates a credit calculator with the 2023 credit
// parameters: $2,000 child tax credit with a $50-per-$1,000 phase-out above
// $400,000 (joint) or $200,000, $500 other-dependent credit on the same
// schedule, the 2023 saver's-credit tier table, and the 35%-to-20%
// dependent-care rate slide above $15,000 AGI.
func NewCreditCalculator2023() *CreditCalculator {
	jointThreshold := decimal.NewFromInt(400000)
	singleThreshold := decimal.NewFromInt(200000)
	jointSaver := saverTiers{
		fifty:  decimal.NewFromInt(43500),
		twenty: decimal.NewFromInt(47500),
		ten:    decimal.NewFromInt(73000),
	}
	singleSaver := saverTiers{
		fifty:  decimal.NewFromInt(21750),
		twenty: decimal.NewFromInt(23750),
		ten:    decimal.NewFromInt(36500),
	}
	return &CreditCalculator{
		Year:                 2023,
		childCreditPerChild:  decimal.NewFromInt(2000),
		otherDependentCredit: decimal.NewFromInt(500),
		phaseOutStep:         decimal.NewFromInt(1000),
		phaseOutPerStep:      decimal.NewFromInt(50),
		phaseOutThresholds: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:          singleThreshold,
			domain.FilingMarriedJoint:    jointThreshold,
			domain.FilingMarriedSeparate: singleThreshold,
			domain.FilingHeadOfHousehold: singleThreshold,
			domain.FilingQualifyingWidow: jointThreshold,
		},
		saverContributionCap: decimal.NewFromInt(2000),
		saverTiersByStatus: map[domain.FilingStatus]saverTiers{
			domain.FilingSingle:          singleSaver,
			domain.FilingMarriedJoint:    jointSaver,
			domain.FilingMarriedSeparate: singleSaver,
			domain.FilingHeadOfHousehold: {
				fifty:  decimal.NewFromInt(32625),
				twenty: decimal.NewFromInt(35625),
				ten:    decimal.NewFromInt(54750),
			},
			domain.FilingQualifyingWidow: jointSaver,
		},
		careExpenseCapOne:  decimal.NewFromInt(3000),
		careExpenseCapMany: decimal.NewFromInt(6000),
		careRateFloorAGI:   decimal.NewFromInt(15000),
		careRateStep:       decimal.NewFromInt(2000),
	}
}

// childEligible reports child-tax-credit eligibility: an explicit
// qualifying-child flag is respected in both directions; absent the flag,
// the dependent qualifies when under 17 at tax-year end.
func (cc *CreditCalculator) childEligible(d domain.Dependent) bool {
	if d.IsQualifyingChild != nil {
		return *d.IsQualifyingChild
	}
	return d.AgeAtYearEnd(cc.Year) < 17
}

// phaseOut reduces base by $50 for every full or partial $1,000 of AGI above
// the filing-status threshold, floored at zero.
func (cc *CreditCalculator) phaseOut(base, agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	threshold := cc.phaseOutThresholds[status]
	if agi.LessThanOrEqual(threshold) {
		return base.Round(2)
	}
	increments := agi.Sub(threshold).Div(cc.phaseOutStep).Ceil()
	reduced := base.Sub(increments.Mul(cc.phaseOutPerStep))
	if reduced.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return reduced.Round(2)
}

// ChildTaxCredit computes the child tax credit: $2,000 per eligible child,
// phased out above the filing-status AGI threshold.
func (cc *CreditCalculator) ChildTaxCredit(dependents []domain.Dependent, agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	count := 0
	for _, d := range dependents {
		if cc.childEligible(d) {
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	base := cc.childCreditPerChild.Mul(decimal.NewFromInt(int64(count)))
	return cc.phaseOut(base, agi, status)
}

// OtherDependentCredit computes the credit for dependents not eligible for
// the child tax credit: $500 each, on the same phase-out schedule.
func (cc *CreditCalculator) OtherDependentCredit(dependents []domain.Dependent, agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	count := 0
	for _, d := range dependents {
		if !cc.childEligible(d) {
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	base := cc.otherDependentCredit.Mul(decimal.NewFromInt(int64(count)))
	return cc.phaseOut(base, agi, status)
}

// RetirementSavingsCredit computes the saver's credit. The eligible
// contribution is capped at $2,000, doubled for married-joint and
// qualifying-widow filers to represent two contributors, and the rate is
// tiered 50/20/10/0 percent by AGI against the filing-status thresholds.
func (cc *CreditCalculator) RetirementSavingsCredit(contribution, agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if contribution.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	contributionCap := cc.saverContributionCap
	if status.IsJoint() {
		contributionCap = contributionCap.Mul(two)
	}
	eligible := decimal.Min(contribution, contributionCap)

	tiers := cc.saverTiersByStatus[status]
	var rate decimal.Decimal
	switch {
	case agi.LessThanOrEqual(tiers.fifty):
		rate = decimal.NewFromFloat(0.50)
	case agi.LessThanOrEqual(tiers.twenty):
		rate = decimal.NewFromFloat(0.20)
	case agi.LessThanOrEqual(tiers.ten):
		rate = decimal.NewFromFloat(0.10)
	default:
		return decimal.Zero
	}

	return eligible.Mul(rate).Round(2)
}

// DependentCareCredit computes the child and dependent care credit from the
// entered care expenses. Expenses are capped at $3,000 for one qualifying
// dependent (under 13 at year end) or $6,000 for more than one; the rate
// starts at 35% for AGI at or below $15,000 and drops one percentage point
// per full $2,000 above that, never below 20%.
func (cc *CreditCalculator) DependentCareCredit(expenses, agi decimal.Decimal, dependents []domain.Dependent) decimal.Decimal {
	if expenses.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	qualifying := 0
	for _, d := range dependents {
		if d.AgeAtYearEnd(cc.Year) < 13 {
			qualifying++
		}
	}
	if qualifying == 0 {
		return decimal.Zero
	}

	expenseCap := cc.careExpenseCapOne
	if qualifying > 1 {
		expenseCap = cc.careExpenseCapMany
	}
	capped := decimal.Min(expenses, expenseCap)

	rate := decimal.NewFromFloat(0.35)
	if agi.GreaterThan(cc.careRateFloorAGI) {
		steps := agi.Sub(cc.careRateFloorAGI).Div(cc.careRateStep).Floor()
		rate = rate.Sub(steps.Mul(decimal.NewFromFloat(0.01)))
		floor := decimal.NewFromFloat(0.20)
		if rate.LessThan(floor) {
			rate = floor
		}
	}

	return capped.Mul(rate).Round(2)
}

// Total produces the credits total for the profile. A positive user-entered
// TotalCredits wins verbatim under TrustPrecomputed. Otherwise the total is
// the sum of the four computed credits plus the pass-through education and
// other credits, where a positive user-entered value for an auto-computable
// credit also wins over its computation under TrustPrecomputed.
func (cc *CreditCalculator) Total(p *domain.TaxProfile, agi decimal.Decimal, policy AggregationPolicy) decimal.Decimal {
	if policy == TrustPrecomputed && p.TaxCredits.TotalCredits.GreaterThan(decimal.Zero) {
		return p.TaxCredits.TotalCredits.Round(2)
	}

	childCredit := cc.ChildTaxCredit(p.Dependents, agi, p.FilingStatus)
	if policy == TrustPrecomputed && p.TaxCredits.ChildTaxCredit.GreaterThan(decimal.Zero) {
		childCredit = p.TaxCredits.ChildTaxCredit
	}

	careCredit := cc.DependentCareCredit(p.TaxCredits.ChildCareExpenses, agi, p.Dependents)
	if policy == TrustPrecomputed && p.TaxCredits.ChildCareCredit.GreaterThan(decimal.Zero) {
		careCredit = p.TaxCredits.ChildCareCredit
	}

	saverCredit := cc.RetirementSavingsCredit(p.Income.Adjustments.RetirementContributions, agi, p.FilingStatus)
	if policy == TrustPrecomputed && p.TaxCredits.RetirementSavingsCredit.GreaterThan(decimal.Zero) {
		saverCredit = p.TaxCredits.RetirementSavingsCredit
	}

	otherDependentCredit := cc.OtherDependentCredit(p.Dependents, agi, p.FilingStatus)

	total := childCredit.
		Add(careCredit).
		Add(saverCredit).
		Add(otherDependentCredit).
		Add(p.TaxCredits.EducationCredits).
		Add(p.TaxCredits.OtherCredits)

	if total.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return total.Round(2)
}
