package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"taxfolio/internal/domain"
)

func TestFederalTaxSingle50K(t *testing.T) {
	calc := NewFederalTaxCalculator2023()

	// 10% of 11,000 + 12% of 33,725 + 22% of 5,275 = 6,307.50
	tax := calc.Compute(decimal.NewFromInt(50000), domain.FilingSingle)
	assert.True(t, tax.Equal(decimal.NewFromFloat(6307.50)),
		"Expected $6,307.50, got %s", tax.StringFixed(2))
}

func TestFederalTaxFirstBracketOnly(t *testing.T) {
	calc := NewFederalTaxCalculator2023()

	tax := calc.Compute(decimal.NewFromInt(10000), domain.FilingSingle)
	assert.True(t, tax.Equal(decimal.NewFromInt(1000)),
		"Expected $1,000.00, got %s", tax.StringFixed(2))
}

func TestFederalTaxZeroAndNegativeIncome(t *testing.T) {
	calc := NewFederalTaxCalculator2023()

	tax := calc.Compute(decimal.Zero, domain.FilingMarriedJoint)
	if !tax.IsZero() {
		t.Errorf("Expected zero tax on zero income, got %s", tax.StringFixed(2))
	}

	tax = calc.Compute(decimal.NewFromInt(-5000), domain.FilingSingle)
	if !tax.IsZero() {
		t.Errorf("Expected zero tax on negative income, got %s", tax.StringFixed(2))
	}
}

func TestFederalTaxMonotonic(t *testing.T) {
	calc := NewFederalTaxCalculator2023()

	statuses := []domain.FilingStatus{
		domain.FilingSingle, domain.FilingMarriedJoint,
		domain.FilingMarriedSeparate, domain.FilingHeadOfHousehold,
		domain.FilingQualifyingWidow,
	}

	for _, status := range statuses {
		prev := decimal.Zero
		for income := int64(0); income <= 800000; income += 7777 {
			tax := calc.Compute(decimal.NewFromInt(income), status)
			// Strictly increasing above zero: every bracket rate is positive.
			if income > 0 && tax.LessThanOrEqual(prev) {
				t.Fatalf("Tax not strictly increasing for %s at income %d: %s <= %s",
					status, income, tax.StringFixed(2), prev.StringFixed(2))
			}
			prev = tax
		}
	}
}

// Tax just above a bracket boundary should differ from tax at the boundary
// by exactly the next bracket's rate applied to the excess.
func TestFederalTaxBracketContinuity(t *testing.T) {
	calc := NewFederalTaxCalculator2023()

	// End of the single 12% bracket; the next $100 is taxed at 22%.
	boundary := decimal.NewFromInt(44725)
	atBoundary := calc.Compute(boundary, domain.FilingSingle)
	above := calc.Compute(boundary.Add(decimal.NewFromInt(100)), domain.FilingSingle)

	delta := above.Sub(atBoundary)
	assert.True(t, delta.Equal(decimal.NewFromInt(22)),
		"Expected $22.00 marginal tax over boundary, got %s", delta.StringFixed(2))
}

func TestFederalTaxUnknownStatusFallsBackToSingle(t *testing.T) {
	calc := NewFederalTaxCalculator2023()

	income := decimal.NewFromInt(75000)
	unknown := calc.Compute(income, domain.FilingStatus("unregistered"))
	single := calc.Compute(income, domain.FilingSingle)
	assert.True(t, unknown.Equal(single))
}

func TestFederalTaxJointSplitsEvenly(t *testing.T) {
	calc := NewFederalTaxCalculator2023()

	// Joint brackets double the single brackets below the top, so a joint
	// return at 2x income pays exactly 2x the single tax in that range.
	single := calc.Compute(decimal.NewFromInt(90000), domain.FilingSingle)
	joint := calc.Compute(decimal.NewFromInt(180000), domain.FilingMarriedJoint)
	assert.True(t, joint.Equal(single.Mul(decimal.NewFromInt(2))),
		"Expected joint %s to equal 2x single %s", joint.StringFixed(2), single.StringFixed(2))
}
