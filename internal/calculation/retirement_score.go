package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// ReadinessScorer turns a projection into a 0-100 readiness score plus the
// derived recommendation, strength, and concern lists. The base score comes
// from the ratio of retirement-available resources (median projection plus
// Social Security over the horizon) to retirement need (desired income at an
// 85% replacement assumption across the years in retirement); lifestyle
// qualifiers then apply bounded multiplicative adjustments.
type ReadinessScorer struct {
	LifeExpectancy    int
	ReplacementFactor decimal.Decimal
}

// NewReadinessScorer creates a scorer with a life expectancy of 90 and the
// 85% income-replacement assumption.
func NewReadinessScorer() *ReadinessScorer {
	return &ReadinessScorer{
		LifeExpectancy:    90,
		ReplacementFactor: decimal.NewFromFloat(0.85),
	}
}

// yearsInRetirement is the horizon from retirement age to life expectancy,
// never less than one year.
func (rs *ReadinessScorer) yearsInRetirement(retirementAge int) int {
	years := rs.LifeExpectancy - retirementAge
	if years < 1 {
		years = 1
	}
	return years
}

// baseScore maps the resources-to-need ratio onto the piecewise 0-100 scale.
func baseScore(ratio float64) float64 {
	switch {
	case ratio >= 1.0:
		bonus := (ratio - 1.0) * 5
		if bonus > 5 {
			bonus = 5
		}
		return 95 + bonus
	case ratio >= 0.8:
		return 85 + (ratio-0.8)/0.2*10
	case ratio >= 0.6:
		return 70 + (ratio-0.6)/0.2*15
	case ratio >= 0.4:
		return 50 + (ratio-0.4)/0.2*20
	default:
		return ratio / 0.4 * 50
	}
}

// Apply computes the score and narrative lists and writes them onto the
// analysis.
func (rs *ReadinessScorer) Apply(analysis *domain.RetirementAnalysis, inputs domain.RetirementInputs, filer domain.FilerContext) {
	years := rs.yearsInRetirement(inputs.RetirementAge)
	yearsDec := decimal.NewFromInt(int64(years))

	socialSecurityTotal := inputs.SocialSecurityMonthly.Mul(decimal.NewFromInt(12)).Mul(yearsDec)
	resources := analysis.ProjectedSavings.Add(socialSecurityTotal)
	need := inputs.DesiredAnnualIncome.Mul(rs.ReplacementFactor).Mul(yearsDec)

	ratio := 1.0
	if need.GreaterThan(decimal.Zero) {
		ratio = resources.Div(need).InexactFloat64()
	}

	score := baseScore(ratio)

	var strengths, concerns, recommendations []string

	score *= rs.emergencyFundFactor(inputs, &strengths, &concerns, &recommendations)
	score *= rs.debtFactor(inputs, filer, &strengths, &concerns, &recommendations)
	score *= rs.healthFactor(inputs, &concerns, &recommendations)
	score *= rs.riskFactor(inputs, &concerns, &recommendations)
	score *= rs.housingFactor(inputs, &strengths)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	rs.narrate(analysis, inputs, filer, &strengths, &concerns, &recommendations)

	analysis.Score = int(score + 0.5)
	analysis.Strengths = strengths
	analysis.Concerns = concerns
	analysis.Recommendations = recommendations
}

func (rs *ReadinessScorer) emergencyFundFactor(inputs domain.RetirementInputs, strengths, concerns, recommendations *[]string) float64 {
	months := inputs.EmergencyFundMonths.InexactFloat64()
	switch {
	case months >= 6:
		*strengths = append(*strengths, "Emergency fund covers six or more months of expenses")
		return 1.05
	case months >= 3:
		return 1.0
	case months >= 1:
		*concerns = append(*concerns, "Emergency fund covers less than three months of expenses")
		return 0.95
	default:
		*concerns = append(*concerns, "No meaningful emergency fund")
		*recommendations = append(*recommendations, "Build an emergency fund of three to six months of expenses before increasing retirement contributions")
		return 0.90
	}
}

func (rs *ReadinessScorer) debtFactor(inputs domain.RetirementInputs, filer domain.FilerContext, strengths, concerns, recommendations *[]string) float64 {
	if filer.AdjustedGrossIncome.LessThanOrEqual(decimal.Zero) {
		if inputs.MonthlyDebtPayments.GreaterThan(decimal.Zero) {
			*concerns = append(*concerns, "Carrying debt payments with no reported income")
			return 0.95
		}
		return 1.0
	}
	monthlyIncome := filer.AdjustedGrossIncome.Div(decimal.NewFromInt(12))
	ratio := inputs.MonthlyDebtPayments.Div(monthlyIncome).InexactFloat64()
	switch {
	case ratio <= 0.20:
		*strengths = append(*strengths, "Debt payments are a small share of income")
		return 1.03
	case ratio <= 0.36:
		return 1.0
	case ratio <= 0.50:
		*concerns = append(*concerns, "Debt-to-income ratio is elevated")
		return 0.92
	default:
		*concerns = append(*concerns, "Debt payments consume over half of monthly income")
		*recommendations = append(*recommendations, "Pay down high-interest debt before expanding retirement savings")
		return 0.85
	}
}

func (rs *ReadinessScorer) healthFactor(inputs domain.RetirementInputs, concerns, recommendations *[]string) float64 {
	factor := 1.0
	switch inputs.HealthStatus {
	case domain.HealthExcellent:
		factor = 1.02
	case domain.HealthFair:
		factor = 0.97
	case domain.HealthPoor:
		factor = 0.92
		*concerns = append(*concerns, "Poor health raises expected retirement medical costs")
	}
	if !inputs.HasHealthInsurance {
		factor *= 0.95
		*concerns = append(*concerns, "No health insurance coverage")
		*recommendations = append(*recommendations, "Obtain health insurance; an uncovered medical event can erase retirement savings")
	}
	return factor
}

func (rs *ReadinessScorer) riskFactor(inputs domain.RetirementInputs, concerns, recommendations *[]string) float64 {
	if inputs.RiskTolerance == domain.RiskAggressive && inputs.InvestmentExperience == domain.ExperienceNone {
		*concerns = append(*concerns, "Aggressive risk tolerance without investment experience")
		*recommendations = append(*recommendations, "Match portfolio risk to experience, or get professional guidance before taking aggressive positions")
		return 0.93
	}
	if inputs.RiskTolerance == domain.RiskConservative && inputs.InvestmentExperience == domain.ExperienceExperienced {
		*recommendations = append(*recommendations, "Allocation may be more conservative than necessary given investment experience")
		return 0.97
	}
	return 1.0
}

func (rs *ReadinessScorer) housingFactor(inputs domain.RetirementInputs, strengths *[]string) float64 {
	switch inputs.HousingStatus {
	case domain.HousingOwnOutright:
		*strengths = append(*strengths, "Home owned outright removes housing cost from retirement need")
		return 1.02
	case domain.HousingRent:
		return 0.98
	default:
		return 1.0
	}
}

// narrate adds projection-driven entries to the narrative lists.
func (rs *ReadinessScorer) narrate(analysis *domain.RetirementAnalysis, inputs domain.RetirementInputs, filer domain.FilerContext, strengths, concerns, recommendations *[]string) {
	successPct := analysis.SuccessProbability.Mul(decimal.NewFromInt(100))
	switch {
	case analysis.SuccessProbability.GreaterThanOrEqual(decimal.NewFromFloat(0.8)):
		*strengths = append(*strengths, fmt.Sprintf("%s%% of simulations meet the target fund", successPct.StringFixed(0)))
	case analysis.SuccessProbability.LessThan(decimal.NewFromFloat(0.5)):
		*concerns = append(*concerns, fmt.Sprintf("Only %s%% of simulations meet the target fund", successPct.StringFixed(0)))
	}

	if analysis.MonthlyShortfall.GreaterThan(decimal.Zero) {
		*recommendations = append(*recommendations, fmt.Sprintf(
			"Projected retirement income falls %s per month short of the goal; raising the monthly contribution closes the gap fastest",
			"$"+analysis.MonthlyShortfall.StringFixed(2)))
	}

	if filer.Dependents > 0 && analysis.AdditionalNeeded.GreaterThan(decimal.Zero) {
		*concerns = append(*concerns, "Dependent obligations compete with the remaining savings gap")
	}
	if filer.FilingStatus.IsJoint() {
		*strengths = append(*strengths, "Joint household can coordinate two benefit streams and contribution limits")
	}
}
