package calculation

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxfolio/internal/domain"
)

func testInputs() domain.RetirementInputs {
	return domain.RetirementInputs{
		CurrentAge:            35,
		RetirementAge:         65,
		CurrentSavings:        decimal.NewFromInt(150000),
		MonthlyContribution:   decimal.NewFromInt(1500),
		ExpectedReturn:        decimal.NewFromFloat(0.06),
		ReturnVolatility:      decimal.NewFromFloat(0.15),
		DesiredAnnualIncome:   decimal.NewFromInt(60000),
		SocialSecurityMonthly: decimal.NewFromInt(1800),
		EmergencyFundMonths:   decimal.NewFromInt(4),
		HealthStatus:          domain.HealthGood,
		HasHealthInsurance:    true,
		HousingStatus:         domain.HousingMortgage,
		RiskTolerance:         domain.RiskModerate,
		InvestmentExperience:  domain.ExperienceSome,
	}
}

func testFiler() domain.FilerContext {
	return domain.FilerContext{
		AdjustedGrossIncome: decimal.NewFromInt(95000),
		FilingStatus:        domain.FilingSingle,
	}
}

func seededProjector(seed int64) *RetirementProjector {
	return NewRetirementProjectorWithConfig(MonteCarloConfig{
		NumTrials: 2000,
		Workers:   4,
		Seed:      seed,
	})
}

func TestProjectPercentilesOrdered(t *testing.T) {
	analysis := seededProjector(42).Project(testInputs(), testFiler())

	p := analysis.Percentiles
	assert.True(t, p.P5.LessThanOrEqual(p.P25), "P5 %s > P25 %s", p.P5, p.P25)
	assert.True(t, p.P25.LessThanOrEqual(p.P50), "P25 %s > P50 %s", p.P25, p.P50)
	assert.True(t, p.P50.LessThanOrEqual(p.P75), "P50 %s > P75 %s", p.P50, p.P75)
	assert.True(t, p.P75.LessThanOrEqual(p.P95), "P75 %s > P95 %s", p.P75, p.P95)
}

func TestProjectReproducibleForFixedSeed(t *testing.T) {
	inputs := testInputs()
	filer := testFiler()

	first := seededProjector(42).Project(inputs, filer)
	second := seededProjector(42).Project(inputs, filer)
	require.Equal(t, first, second, "Same seed and config should reproduce the run exactly")

	// A different seed should move the percentile bands.
	third := seededProjector(43).Project(inputs, filer)
	assert.False(t, first.Percentiles.P50.Equal(third.Percentiles.P50),
		"Different seeds produced identical medians, sampler is likely ignoring the seed")
}

func TestProjectZeroYearsShortCircuits(t *testing.T) {
	inputs := testInputs()
	inputs.CurrentAge = 65
	inputs.RetirementAge = 65

	// With no years to simulate there is no randomness at all: every
	// percentile equals the current savings regardless of seed.
	a := seededProjector(1).Project(inputs, testFiler())
	b := seededProjector(999).Project(inputs, testFiler())
	require.Equal(t, a, b)

	savings := decimal.NewFromInt(150000)
	assert.True(t, a.Percentiles.P5.Equal(savings))
	assert.True(t, a.Percentiles.P95.Equal(savings))
	assert.True(t, a.ProjectedSavings.Equal(savings))
	assert.True(t, a.SuccessProbability.IsZero(),
		"Expected 0%% success with savings below target, got %s", a.SuccessProbability)
}

func TestProjectRetirementAgeInPast(t *testing.T) {
	inputs := testInputs()
	inputs.CurrentAge = 70
	inputs.RetirementAge = 65

	analysis := seededProjector(7).Project(inputs, testFiler())
	assert.True(t, analysis.ProjectedSavings.Equal(decimal.NewFromInt(150000)))
}

func TestProjectTargetFundUsesTwentyFiveTimesRule(t *testing.T) {
	analysis := seededProjector(42).Project(testInputs(), testFiler())
	assert.True(t, analysis.TargetFund.Equal(decimal.NewFromInt(1500000)),
		"Expected 25x $60,000, got %s", analysis.TargetFund.StringFixed(2))
}

func TestProjectZeroVolatilityIsDeterministicCompounding(t *testing.T) {
	inputs := testInputs()
	inputs.ReturnVolatility = decimal.Zero
	inputs.CurrentAge = 64
	inputs.RetirementAge = 65
	inputs.CurrentSavings = decimal.NewFromInt(1000)
	inputs.MonthlyContribution = decimal.NewFromInt(100)
	inputs.ExpectedReturn = decimal.Zero

	// One year, zero return: 1,000 + 12 x 100 = 2,200 in every trial.
	analysis := seededProjector(5).Project(inputs, testFiler())
	assert.True(t, analysis.Percentiles.P5.Equal(decimal.NewFromInt(2200)))
	assert.True(t, analysis.Percentiles.P95.Equal(decimal.NewFromInt(2200)))
}

func TestProjectSuccessProbabilityBounds(t *testing.T) {
	analysis := seededProjector(42).Project(testInputs(), testFiler())

	assert.True(t, analysis.SuccessProbability.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, analysis.SuccessProbability.LessThanOrEqual(decimal.NewFromInt(1)))
}

func TestProjectAdditionalNeededNonNegative(t *testing.T) {
	// Savings far above the target: additional needed clamps to zero.
	inputs := testInputs()
	inputs.CurrentSavings = decimal.NewFromInt(10000000)

	analysis := seededProjector(42).Project(inputs, testFiler())
	assert.True(t, analysis.AdditionalNeeded.IsZero())
	assert.True(t, analysis.MonthlyShortfall.IsZero())
}

func TestProjectScoreWithinRange(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		analysis := seededProjector(seed).Project(testInputs(), testFiler())
		if analysis.Score < 0 || analysis.Score > 100 {
			t.Fatalf("Score %d out of range for seed %d", analysis.Score, seed)
		}
	}
}

func TestBoxMullerMomentsRoughlyStandardNormal(t *testing.T) {
	src := NewBoxMullerSource(1234)

	const n = 200000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := src.NormFloat64()
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	if math.Abs(mean) > 0.02 {
		t.Errorf("Sample mean %f too far from 0", mean)
	}
	if math.Abs(variance-1) > 0.03 {
		t.Errorf("Sample variance %f too far from 1", variance)
	}
}

func TestSimulateTrialClampsAtZero(t *testing.T) {
	// A return of -200% would drive the balance negative without the clamp.
	src := NewBoxMullerSource(9)
	terminal := simulateTrial(src, 1000, 0, -2.0, 0, 3)
	assert.Equal(t, 0.0, terminal)
}

func TestPercentileAtIndexSelection(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	assert.Equal(t, 10.0, percentileAt(sorted, 5))
	assert.Equal(t, 30.0, percentileAt(sorted, 25))
	assert.Equal(t, 60.0, percentileAt(sorted, 50))
	assert.Equal(t, 100.0, percentileAt(sorted, 95))
	assert.Equal(t, 100.0, percentileAt(sorted, 100))
}
