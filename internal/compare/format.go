package compare

import (
	"encoding/csv"
	"fmt"
	"strings"

	"taxfolio/internal/output"
)

// Format renders a comparison set as table, csv, or json.
func Format(set *ComparisonSet, format string) (string, error) {
	switch format {
	case "table", "console":
		return formatTable(set), nil
	case "csv":
		return formatCSV(set)
	case "json":
		return output.FormatJSON(set, true)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatTable(set *ComparisonSet) string {
	var sb strings.Builder
	sb.WriteString("POLICY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	fmt.Fprintf(&sb, "%-32s %14s %14s %12s %12s\n", "Variant", "Tax Due", "Refund", "Owed", "Delta")

	row := func(vr VariantResult, delta string) {
		fmt.Fprintf(&sb, "%-32s %14s %14s %12s %12s\n",
			vr.Name,
			output.FormatCurrency(vr.Results.TaxDue),
			output.FormatCurrency(vr.Results.RefundAmount),
			output.FormatCurrency(vr.Results.AmountOwed),
			delta,
		)
	}

	row(set.Base, "base")
	for _, alt := range set.Alternatives {
		row(alt, output.FormatCurrency(alt.SettledDelta))
	}
	return sb.String()
}

func formatCSV(set *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{"Variant", "Tax Due", "Payments", "Refund", "Owed", "Tax Due Delta", "Settled Delta"}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	writeRow := func(vr VariantResult) error {
		return writer.Write([]string{
			vr.Name,
			vr.Results.TaxDue.StringFixed(2),
			vr.Results.Payments.StringFixed(2),
			vr.Results.RefundAmount.StringFixed(2),
			vr.Results.AmountOwed.StringFixed(2),
			vr.TaxDueDelta.StringFixed(2),
			vr.SettledDelta.StringFixed(2),
		})
	}

	if err := writeRow(set.Base); err != nil {
		return "", err
	}
	for _, alt := range set.Alternatives {
		if err := writeRow(alt); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
