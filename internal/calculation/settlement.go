package calculation

import (
	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// WithholdingPolicy names the payments assumption. Historical variants of
// this engine disagreed: some counted only user-entered estimated payments,
// others also assumed withholding of 15% of total income. The policy makes
// the choice explicit instead of baking in either variant.
type WithholdingPolicy int

const (
	EstimatedPaymentsOnly WithholdingPolicy = iota
	AssumeWithholding
)

// assumedWithholdingRate applies under AssumeWithholding.
var assumedWithholdingRate = decimal.NewFromFloat(0.15)

// Settlement is the outcome of netting tax due against payments.
// RefundAmount and AmountOwed are mutually exclusive.
type Settlement struct {
	TaxDue       decimal.Decimal
	Payments     decimal.Decimal
	RefundAmount decimal.Decimal
	AmountOwed   decimal.Decimal
}

// Settle computes tax due as bracket tax net of credits (clamped at zero)
// plus other taxes and self-employment tax, then nets it against payments.
func Settle(federalTax, credits, totalIncome decimal.Decimal, addl domain.AdditionalTax, policy WithholdingPolicy) Settlement {
	due := federalTax.Sub(credits)
	if due.LessThan(decimal.Zero) {
		due = decimal.Zero
	}
	due = due.Add(addl.OtherTaxes).Add(addl.SelfEmploymentTax).Round(2)

	payments := addl.EstimatedTaxPayments
	if policy == AssumeWithholding {
		payments = payments.Add(totalIncome.Mul(assumedWithholdingRate))
	}
	payments = payments.Round(2)

	refund := payments.Sub(due)
	owed := due.Sub(payments)
	if refund.LessThan(decimal.Zero) {
		refund = decimal.Zero
	}
	if owed.LessThan(decimal.Zero) {
		owed = decimal.Zero
	}

	return Settlement{
		TaxDue:       due,
		Payments:     payments,
		RefundAmount: refund.Round(2),
		AmountOwed:   owed.Round(2),
	}
}
