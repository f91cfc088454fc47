// Package compare runs the tax pipeline under its policy variants so the
// differences the policies encode (trusting precomputed totals, assuming
// withholding) are visible side by side instead of buried in configuration.
package compare

import (
	"github.com/shopspring/decimal"

	"taxfolio/internal/calculation"
	"taxfolio/internal/domain"
)

// Variant names one policy combination.
type Variant struct {
	Name        string
	Aggregation calculation.AggregationPolicy
	Withholding calculation.WithholdingPolicy
}

// DefaultVariants covers the four policy combinations, with the engine
// defaults first as the base.
func DefaultVariants() []Variant {
	return []Variant{
		{Name: "trust-precomputed", Aggregation: calculation.TrustPrecomputed, Withholding: calculation.EstimatedPaymentsOnly},
		{Name: "recompute-from-parts", Aggregation: calculation.RecomputeFromParts, Withholding: calculation.EstimatedPaymentsOnly},
		{Name: "trust-precomputed+withholding", Aggregation: calculation.TrustPrecomputed, Withholding: calculation.AssumeWithholding},
		{Name: "recompute+withholding", Aggregation: calculation.RecomputeFromParts, Withholding: calculation.AssumeWithholding},
	}
}

// VariantResult is one variant's outcome plus its deltas against the base.
type VariantResult struct {
	Name         string                   `json:"name"`
	Results      domain.CalculatedResults `json:"results"`
	TaxDueDelta  decimal.Decimal          `json:"taxDueDelta"`
	SettledDelta decimal.Decimal          `json:"settledDelta"`
}

// ComparisonSet holds the base variant and the alternatives.
type ComparisonSet struct {
	Base         VariantResult   `json:"base"`
	Alternatives []VariantResult `json:"alternatives"`
}

// settled is the signed settlement position: refund positive, owed negative.
func settled(r domain.CalculatedResults) decimal.Decimal {
	return r.RefundAmount.Sub(r.AmountOwed)
}

// Run calculates the profile under every variant. The first variant is the
// base; deltas are relative to it.
func Run(p domain.TaxProfile, variants []Variant) *ComparisonSet {
	if len(variants) == 0 {
		variants = DefaultVariants()
	}

	results := make([]domain.CalculatedResults, len(variants))
	for i, v := range variants {
		engine := calculation.NewEngine()
		engine.Aggregation = v.Aggregation
		engine.Withholding = v.Withholding
		results[i] = engine.Calculate(p)
	}

	set := &ComparisonSet{
		Base: VariantResult{Name: variants[0].Name, Results: results[0]},
	}
	for i := 1; i < len(variants); i++ {
		set.Alternatives = append(set.Alternatives, VariantResult{
			Name:         variants[i].Name,
			Results:      results[i],
			TaxDueDelta:  results[i].TaxDue.Sub(results[0].TaxDue),
			SettledDelta: settled(results[i]).Sub(settled(results[0])),
		})
	}
	return set
}
