package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxfolio/internal/domain"
)

func comparisonProfile() domain.TaxProfile {
	return domain.TaxProfile{
		FilingStatus: domain.FilingSingle,
		Income: domain.IncomeSources{
			Wages:       decimal.NewFromInt(60000),
			TotalIncome: decimal.NewFromInt(75000),
		},
		Deductions: domain.Deductions{UseStandard: true},
	}
}

func TestRunDefaultVariants(t *testing.T) {
	set := Run(comparisonProfile(), nil)

	assert.Equal(t, "trust-precomputed", set.Base.Name)
	require.Len(t, set.Alternatives, 3)

	// The base trusts the entered $75,000 total; the recompute variant sums
	// to $60,000 instead, so its tax due drops.
	recompute := set.Alternatives[0]
	assert.Equal(t, "recompute-from-parts", recompute.Name)
	assert.True(t, recompute.Results.TotalIncome.Equal(decimal.NewFromInt(60000)))
	assert.True(t, recompute.TaxDueDelta.LessThan(decimal.Zero),
		"Expected recompute variant to owe less, delta %s", recompute.TaxDueDelta.StringFixed(2))

	// The withholding variant credits 15% of income as paid, improving the
	// settled position without changing the tax due.
	withholding := set.Alternatives[1]
	assert.Equal(t, "trust-precomputed+withholding", withholding.Name)
	assert.True(t, withholding.TaxDueDelta.IsZero())
	assert.True(t, withholding.SettledDelta.GreaterThan(decimal.Zero))
	assert.True(t, withholding.Results.Payments.Equal(decimal.NewFromInt(11250)))
}

func TestRunIdenticalVariantsProduceZeroDeltas(t *testing.T) {
	// Without precomputed totals or withholding differences in play, a
	// profile built purely from parts settles identically everywhere.
	p := domain.TaxProfile{
		FilingStatus: domain.FilingSingle,
		Income:       domain.IncomeSources{Wages: decimal.NewFromInt(60000)},
		Deductions:   domain.Deductions{UseStandard: true},
	}

	variants := []Variant{DefaultVariants()[0], DefaultVariants()[1]}
	set := Run(p, variants)

	require.Len(t, set.Alternatives, 1)
	assert.True(t, set.Alternatives[0].TaxDueDelta.IsZero())
	assert.True(t, set.Alternatives[0].SettledDelta.IsZero())
}

func TestFormatTable(t *testing.T) {
	set := Run(comparisonProfile(), nil)

	out, err := Format(set, "table")
	require.NoError(t, err)
	assert.Contains(t, out, "POLICY COMPARISON")
	assert.Contains(t, out, "trust-precomputed")
	assert.Contains(t, out, "recompute-from-parts")
	assert.Contains(t, out, "base")
}

func TestFormatCSV(t *testing.T) {
	set := Run(comparisonProfile(), nil)

	out, err := Format(set, "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Variant", rows[0][0])
	assert.Equal(t, "trust-precomputed", rows[1][0])
}

func TestFormatUnsupported(t *testing.T) {
	set := Run(comparisonProfile(), nil)

	_, err := Format(set, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
