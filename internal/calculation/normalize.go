package calculation

import (
	"taxfolio/internal/domain"
)

// NormalizeProfile returns a canonical copy of a possibly-partial profile:
// every list is non-nil and the filing status falls back to single. Numeric
// fields need no defaulting because a decimal zero value is already zero.
// Absence of input is not an error; it is the common case for a filer who
// has not yet completed a section.
func NormalizeProfile(p domain.TaxProfile) domain.TaxProfile {
	if !p.FilingStatus.Valid() {
		p.FilingStatus = domain.FilingSingle
	}
	if p.Income.AdditionalItems == nil {
		p.Income.AdditionalItems = []domain.IncomeItem{}
	}
	if p.Income.Adjustments.AdditionalItems == nil {
		p.Income.Adjustments.AdditionalItems = []domain.AdjustmentItem{}
	}
	if p.Dependents == nil {
		p.Dependents = []domain.Dependent{}
	}
	return p
}
