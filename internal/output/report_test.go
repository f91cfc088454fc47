package output

import (
	"encoding/csv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxfolio/internal/domain"
)

func sampleResults() *domain.CalculatedResults {
	return &domain.CalculatedResults{
		TotalIncome:         decimal.NewFromInt(63850),
		AdjustedGrossIncome: decimal.NewFromInt(63850),
		Deductions:          decimal.NewFromInt(13850),
		TaxableIncome:       decimal.NewFromInt(50000),
		FederalTax:          decimal.NewFromFloat(6307.50),
		TaxDue:              decimal.NewFromFloat(6307.50),
		AmountOwed:          decimal.NewFromFloat(6307.50),
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1234.56", FormatCurrency(decimal.NewFromFloat(1234.56)))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "$-42.00", FormatCurrency(decimal.NewFromInt(-42)))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "85.00%", FormatPercentage(decimal.NewFromFloat(0.85)))
	assert.Equal(t, "0.50%", FormatPercentage(decimal.NewFromFloat(0.005)))
}

func TestTaxConsoleReport(t *testing.T) {
	rg := NewReportGenerator()

	out, err := rg.FormatTaxReport(sampleResults(), "console")
	require.NoError(t, err)

	assert.Contains(t, out, "FEDERAL TAX CALCULATION SUMMARY")
	assert.Contains(t, out, "$6307.50")
	assert.Contains(t, out, "AMOUNT OWED")
	assert.NotContains(t, out, "REFUND")
}

func TestTaxConsoleReportShowsRefund(t *testing.T) {
	rg := NewReportGenerator()

	r := sampleResults()
	r.Payments = decimal.NewFromInt(10000)
	r.RefundAmount = decimal.NewFromFloat(3692.50)
	r.AmountOwed = decimal.Zero

	out, err := rg.FormatTaxReport(r, "console")
	require.NoError(t, err)
	assert.Contains(t, out, "REFUND")
	assert.Contains(t, out, "$3692.50")
}

func TestTaxJSONReportRoundTrips(t *testing.T) {
	rg := NewReportGenerator()

	out, err := rg.FormatTaxReport(sampleResults(), "json")
	require.NoError(t, err)

	var decoded domain.CalculatedResults
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.FederalTax.Equal(decimal.NewFromFloat(6307.50)))
	assert.True(t, decoded.TaxableIncome.Equal(decimal.NewFromInt(50000)))
}

func TestTaxCSVReportParses(t *testing.T) {
	rg := NewReportGenerator()

	out, err := rg.FormatTaxReport(sampleResults(), "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 12)
	assert.Equal(t, []string{"Field", "Amount"}, rows[0])
	assert.Equal(t, []string{"Federal Tax", "6307.50"}, rows[6])
}

func TestRetirementConsoleReport(t *testing.T) {
	rg := NewReportGenerator()

	a := &domain.RetirementAnalysis{
		Score:              78,
		ProjectedSavings:   decimal.NewFromInt(900000),
		TargetFund:         decimal.NewFromInt(1500000),
		AdditionalNeeded:   decimal.NewFromInt(600000),
		SuccessProbability: decimal.NewFromFloat(0.62),
		Percentiles: domain.PercentileBands{
			P5:  decimal.NewFromInt(400000),
			P25: decimal.NewFromInt(650000),
			P50: decimal.NewFromInt(900000),
			P75: decimal.NewFromInt(1300000),
			P95: decimal.NewFromInt(2100000),
		},
		Strengths: []string{"Emergency fund covers six or more months of expenses"},
		Concerns:  []string{"Debt-to-income ratio is elevated"},
	}

	out, err := rg.FormatRetirementReport(a, "console")
	require.NoError(t, err)

	assert.Contains(t, out, "RETIREMENT READINESS ANALYSIS")
	assert.Contains(t, out, "78 / 100")
	assert.Contains(t, out, "62.0%")
	assert.Contains(t, out, "95th percentile")
	assert.Contains(t, out, "STRENGTHS")
	assert.Contains(t, out, "CONCERNS")
	assert.NotContains(t, out, "RECOMMENDATIONS")
}

func TestRetirementCSVReport(t *testing.T) {
	rg := NewReportGenerator()

	a := &domain.RetirementAnalysis{
		Score:              88,
		SuccessProbability: decimal.NewFromFloat(0.9015),
	}
	out, err := rg.FormatRetirementReport(a, "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Score", "88"}, rows[1])
	assert.Equal(t, []string{"Success Probability", "0.9015"}, rows[6])
}

func TestUnsupportedFormat(t *testing.T) {
	rg := NewReportGenerator()

	_, err := rg.FormatTaxReport(sampleResults(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, err = rg.FormatRetirementReport(&domain.RetirementAnalysis{}, "yaml")
	require.Error(t, err)
}
