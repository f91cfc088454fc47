package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// ReportGenerator renders calculation results in the supported formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// FormatTaxReport renders the results in the given format: console, json,
// or csv.
func (rg *ReportGenerator) FormatTaxReport(results *domain.CalculatedResults, format string) (string, error) {
	switch format {
	case "console":
		return rg.taxConsole(results), nil
	case "json":
		return FormatJSON(results, true)
	case "csv":
		return taxCSV(results)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatRetirementReport renders a retirement analysis in the given format.
func (rg *ReportGenerator) FormatRetirementReport(analysis *domain.RetirementAnalysis, format string) (string, error) {
	switch format {
	case "console":
		return rg.retirementConsole(analysis), nil
	case "json":
		return FormatJSON(analysis, true)
	case "csv":
		return retirementCSV(analysis)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (rg *ReportGenerator) taxConsole(r *domain.CalculatedResults) string {
	var sb strings.Builder
	sb.WriteString("=================================================\n")
	sb.WriteString("FEDERAL TAX CALCULATION SUMMARY\n")
	sb.WriteString("=================================================\n\n")

	fmt.Fprintf(&sb, "Total Income:          %s\n", FormatCurrency(r.TotalIncome))
	fmt.Fprintf(&sb, "Adjustments:           %s\n", FormatCurrency(r.Adjustments))
	fmt.Fprintf(&sb, "Adjusted Gross Income: %s\n", FormatCurrency(r.AdjustedGrossIncome))
	fmt.Fprintf(&sb, "Deductions:            %s\n", FormatCurrency(r.Deductions))
	fmt.Fprintf(&sb, "Taxable Income:        %s\n\n", FormatCurrency(r.TaxableIncome))

	fmt.Fprintf(&sb, "Federal Tax:           %s\n", FormatCurrency(r.FederalTax))
	fmt.Fprintf(&sb, "Credits:               %s\n", FormatCurrency(r.Credits))
	fmt.Fprintf(&sb, "Tax Due:               %s\n", FormatCurrency(r.TaxDue))
	fmt.Fprintf(&sb, "Payments:              %s\n\n", FormatCurrency(r.Payments))

	if r.RefundAmount.GreaterThan(decimal.Zero) {
		fmt.Fprintf(&sb, "REFUND:                %s\n", FormatCurrency(r.RefundAmount))
	} else {
		fmt.Fprintf(&sb, "AMOUNT OWED:           %s\n", FormatCurrency(r.AmountOwed))
	}
	return sb.String()
}

func (rg *ReportGenerator) retirementConsole(a *domain.RetirementAnalysis) string {
	var sb strings.Builder
	sb.WriteString("=================================================\n")
	sb.WriteString("RETIREMENT READINESS ANALYSIS\n")
	sb.WriteString("=================================================\n\n")

	fmt.Fprintf(&sb, "Readiness Score:       %d / 100\n", a.Score)
	fmt.Fprintf(&sb, "Projected Savings:     %s (median)\n", FormatCurrency(a.ProjectedSavings))
	fmt.Fprintf(&sb, "Target Fund:           %s\n", FormatCurrency(a.TargetFund))
	fmt.Fprintf(&sb, "Additional Needed:     %s\n", FormatCurrency(a.AdditionalNeeded))
	fmt.Fprintf(&sb, "Monthly Shortfall:     %s\n", FormatCurrency(a.MonthlyShortfall))
	fmt.Fprintf(&sb, "Success Probability:   %s%%\n\n", a.SuccessProbability.Mul(decimal.NewFromInt(100)).StringFixed(1))

	sb.WriteString("PROJECTION DISTRIBUTION\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&sb, " 5th percentile:  %s\n", FormatCurrency(a.Percentiles.P5))
	fmt.Fprintf(&sb, "25th percentile:  %s\n", FormatCurrency(a.Percentiles.P25))
	fmt.Fprintf(&sb, "50th percentile:  %s\n", FormatCurrency(a.Percentiles.P50))
	fmt.Fprintf(&sb, "75th percentile:  %s\n", FormatCurrency(a.Percentiles.P75))
	fmt.Fprintf(&sb, "95th percentile:  %s\n", FormatCurrency(a.Percentiles.P95))

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n" + title + "\n")
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for _, item := range items {
			fmt.Fprintf(&sb, "- %s\n", item)
		}
	}
	writeList("STRENGTHS", a.Strengths)
	writeList("CONCERNS", a.Concerns)
	writeList("RECOMMENDATIONS", a.Recommendations)

	return sb.String()
}

// FormatCurrency formats a decimal as a dollar amount.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal fraction as a percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
