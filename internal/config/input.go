package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"taxfolio/internal/domain"
)

// InputParser handles parsing of input files. YAML is the native format;
// JSON parses through the same path since YAML is a superset.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfile loads a tax profile from a YAML or JSON file.
func (ip *InputParser) LoadProfile(filename string) (*domain.TaxProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile domain.TaxProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}

// ValidateProfile rejects only structurally unusable input. Missing sections
// and zero values are fine; the normalizer handles those. An unrecognized
// non-empty filing status is the one thing that cannot be defaulted away
// silently without masking a typo in the file.
func (ip *InputParser) ValidateProfile(p *domain.TaxProfile) error {
	if p.FilingStatus != "" && !p.FilingStatus.Valid() {
		return fmt.Errorf("unknown filing status %q", p.FilingStatus)
	}
	return nil
}

// RetirementRequest pairs the projector inputs with the filer context pulled
// from the tax side.
type RetirementRequest struct {
	Inputs domain.RetirementInputs `yaml:"inputs" json:"inputs"`
	Filer  domain.FilerContext     `yaml:"filer" json:"filer"`
}

// LoadRetirementRequest loads retirement projection inputs from a YAML or
// JSON file.
func (ip *InputParser) LoadRetirementRequest(filename string) (*RetirementRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var req RetirementRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse retirement inputs: %w", err)
	}

	if err := ip.ValidateRetirementInputs(&req.Inputs); err != nil {
		return nil, fmt.Errorf("retirement input validation failed: %w", err)
	}

	return &req, nil
}

// ValidateRetirementInputs checks the simulation parameters for values the
// projector cannot meaningfully simulate. A retirement age at or below the
// current age is allowed; the projector short-circuits that case.
func (ip *InputParser) ValidateRetirementInputs(ri *domain.RetirementInputs) error {
	if ri.CurrentAge < 0 || ri.CurrentAge > 120 {
		return fmt.Errorf("current age %d out of range", ri.CurrentAge)
	}
	if ri.RetirementAge < 0 || ri.RetirementAge > 120 {
		return fmt.Errorf("retirement age %d out of range", ri.RetirementAge)
	}
	if ri.CurrentSavings.LessThan(decimal.Zero) {
		return fmt.Errorf("current savings must not be negative")
	}
	if ri.MonthlyContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly contribution must not be negative")
	}
	if ri.ReturnVolatility.LessThan(decimal.Zero) {
		return fmt.Errorf("return volatility must not be negative")
	}
	if ri.ExpectedReturn.LessThan(decimal.NewFromInt(-1)) || ri.ExpectedReturn.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("expected return must be between -100%% and 100%%, got %s%%",
			ri.ExpectedReturn.Mul(decimal.NewFromInt(100)).StringFixed(2))
	}
	if ri.DesiredAnnualIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("desired annual income must not be negative")
	}
	return nil
}
