package calculation

import (
	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// Engine orchestrates the deterministic tax pipeline: normalize, aggregate
// income, reconcile AGI, resolve the deduction, walk the brackets, apply
// credit phase-outs, settle. Every step is pure over an immutable snapshot;
// identical input produces bit-identical output.
type Engine struct {
	FederalTaxCalc *FederalTaxCalculator
	CreditCalc     *CreditCalculator
	Aggregation    AggregationPolicy
	Withholding    WithholdingPolicy
}

// NewEngine creates an engine with 2023 tables and the default policies:
// trust precomputed totals, count only user-entered estimated payments.
func NewEngine() *Engine {
	return &Engine{
		FederalTaxCalc: NewFederalTaxCalculator2023(),
		CreditCalc:     NewCreditCalculator2023(),
		Aggregation:    TrustPrecomputed,
		Withholding:    EstimatedPaymentsOnly,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}

// Calculate runs the full pipeline on a possibly-partial profile and returns
// a fresh results record. There are no error paths: missing sections default
// to zero and negative intermediates clamp to zero.
func (e *Engine) Calculate(p domain.TaxProfile) domain.CalculatedResults {
	prof := NormalizeProfile(p)

	totalIncome := AggregateIncome(&prof, e.Aggregation)
	agi, adjustments := ReconcileAGI(&prof, totalIncome, e.Aggregation)
	deduction := ResolveDeduction(&prof)

	taxableIncome := nonNegative(agi.Sub(deduction))
	federalTax := e.FederalTaxCalc.Compute(taxableIncome, prof.FilingStatus)
	credits := e.CreditCalc.Total(&prof, agi, e.Aggregation)

	settlement := Settle(federalTax, credits, totalIncome, prof.AdditionalTax, e.Withholding)

	return domain.CalculatedResults{
		TotalIncome:         nonNegative(totalIncome).Round(2),
		Adjustments:         nonNegative(adjustments).Round(2),
		AdjustedGrossIncome: nonNegative(agi).Round(2),
		Deductions:          nonNegative(deduction).Round(2),
		TaxableIncome:       taxableIncome.Round(2),
		FederalTax:          federalTax,
		Credits:             credits,
		TaxDue:              settlement.TaxDue,
		Payments:            settlement.Payments,
		RefundAmount:        settlement.RefundAmount,
		AmountOwed:          settlement.AmountOwed,
	}
}
