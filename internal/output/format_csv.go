package output

import (
	"encoding/csv"
	"strconv"
	"strings"

	"taxfolio/internal/domain"
)

func writeCSV(rows [][]string) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func taxCSV(r *domain.CalculatedResults) (string, error) {
	return writeCSV([][]string{
		{"Field", "Amount"},
		{"Total Income", r.TotalIncome.StringFixed(2)},
		{"Adjustments", r.Adjustments.StringFixed(2)},
		{"Adjusted Gross Income", r.AdjustedGrossIncome.StringFixed(2)},
		{"Deductions", r.Deductions.StringFixed(2)},
		{"Taxable Income", r.TaxableIncome.StringFixed(2)},
		{"Federal Tax", r.FederalTax.StringFixed(2)},
		{"Credits", r.Credits.StringFixed(2)},
		{"Tax Due", r.TaxDue.StringFixed(2)},
		{"Payments", r.Payments.StringFixed(2)},
		{"Refund Amount", r.RefundAmount.StringFixed(2)},
		{"Amount Owed", r.AmountOwed.StringFixed(2)},
	})
}

func retirementCSV(a *domain.RetirementAnalysis) (string, error) {
	return writeCSV([][]string{
		{"Field", "Value"},
		{"Score", strconv.Itoa(a.Score)},
		{"Projected Savings", a.ProjectedSavings.StringFixed(2)},
		{"Target Fund", a.TargetFund.StringFixed(2)},
		{"Additional Needed", a.AdditionalNeeded.StringFixed(2)},
		{"Monthly Shortfall", a.MonthlyShortfall.StringFixed(2)},
		{"Success Probability", a.SuccessProbability.StringFixed(4)},
		{"P5", a.Percentiles.P5.StringFixed(2)},
		{"P25", a.Percentiles.P25.StringFixed(2)},
		{"P50", a.Percentiles.P50.StringFixed(2)},
		{"P75", a.Percentiles.P75.StringFixed(2)},
		{"P95", a.Percentiles.P95.StringFixed(2)},
	})
}
