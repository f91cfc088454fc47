package calculation

import (
	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// TaxBracket is a marginal tax segment: income up to UpperBound (cumulative,
// not per-bracket width) is taxed at Rate. The top bracket of each table
// uses bracketCeiling as an effectively unbounded cap.
type TaxBracket struct {
	Rate       decimal.Decimal
	UpperBound decimal.Decimal
}

// bracketCeiling stands in for the top bracket's infinite upper bound.
var bracketCeiling = decimal.NewFromInt(999999999999)

var bracketRates = [7]float64{0.10, 0.12, 0.22, 0.24, 0.32, 0.35, 0.37}

func bracketTable(bounds [6]int64) []TaxBracket {
	table := make([]TaxBracket, 0, 7)
	for i, bound := range bounds {
		table = append(table, TaxBracket{
			Rate:       decimal.NewFromFloat(bracketRates[i]),
			UpperBound: decimal.NewFromInt(bound),
		})
	}
	return append(table, TaxBracket{Rate: decimal.NewFromFloat(bracketRates[6]), UpperBound: bracketCeiling})
}

// FederalTaxCalculator walks per-filing-status marginal bracket tables.
type FederalTaxCalculator struct {
	Year     int
	Brackets map[domain.FilingStatus][]TaxBracket
}

// NewFederalTaxCalculator2023 creates a federal tax calculator loaded with
// the 2023 bracket tables for all five filing statuses.
func NewFederalTaxCalculator2023() *FederalTaxCalculator {
	single := bracketTable([6]int64{11000, 44725, 95375, 182100, 231250, 578125})
	joint := bracketTable([6]int64{22000, 89450, 190750, 364200, 462500, 693750})
	return &FederalTaxCalculator{
		Year: 2023,
		Brackets: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle:          single,
			domain.FilingMarriedJoint:    joint,
			domain.FilingMarriedSeparate: bracketTable([6]int64{11000, 44725, 95375, 182100, 231250, 346875}),
			domain.FilingHeadOfHousehold: bracketTable([6]int64{15700, 59850, 95350, 182100, 231250, 578100}),
			domain.FilingQualifyingWidow: joint,
		},
	}
}

// Compute calculates federal income tax on taxableIncome using standard
// progressive-bracket semantics: each bracket taxes only the slice of income
// between the previous bracket's cap and its own, at its marginal rate. The
// result is rounded to the nearest cent.
func (ftc *FederalTaxCalculator) Compute(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	brackets, ok := ftc.Brackets[status]
	if !ok {
		brackets = ftc.Brackets[domain.FilingSingle]
	}

	tax := decimal.Zero
	previousCap := decimal.Zero
	remaining := taxableIncome

	for _, bracket := range brackets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		incomeInBracket := decimal.Min(bracket.UpperBound.Sub(previousCap), remaining)
		tax = tax.Add(incomeInBracket.Mul(bracket.Rate))
		remaining = remaining.Sub(incomeInBracket)
		previousCap = bracket.UpperBound
	}

	return tax.Round(2)
}
