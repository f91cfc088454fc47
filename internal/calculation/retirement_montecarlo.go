package calculation

import (
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"taxfolio/internal/domain"
)

// NormalSource yields standard-normal draws for the return sampler. Any
// implementation can be injected so the sampling method is swappable and
// deterministic tests can reproduce exact percentile outputs.
type NormalSource interface {
	NormFloat64() float64
}

// BoxMullerSource generates standard-normal variates from two independent
// uniform draws per pair, the transform the simulation has always used.
type BoxMullerSource struct {
	uniform  *rand.Rand
	spare    float64
	hasSpare bool
}

// NewBoxMullerSource creates a Box-Muller normal source seeded by seed.
func NewBoxMullerSource(seed int64) *BoxMullerSource {
	return &BoxMullerSource{uniform: rand.New(rand.NewSource(seed))}
}

// NormFloat64 returns the next standard-normal variate.
func (b *BoxMullerSource) NormFloat64() float64 {
	if b.hasSpare {
		b.hasSpare = false
		return b.spare
	}
	u1 := b.uniform.Float64()
	for u1 == 0 {
		u1 = b.uniform.Float64()
	}
	u2 := b.uniform.Float64()
	radius := math.Sqrt(-2 * math.Log(u1))
	angle := 2 * math.Pi * u2
	b.spare = radius * math.Sin(angle)
	b.hasSpare = true
	return radius * math.Cos(angle)
}

// MonteCarloConfig holds the simulation parameters. A run is reproducible
// for a fixed (Seed, NumTrials, Workers) triple: each worker derives its own
// seed from the base seed and simulates a fixed contiguous block of trials.
type MonteCarloConfig struct {
	NumTrials int
	Workers   int
	Seed      int64
}

// targetFundMultiple applies the 4% rule: a fund of 25x desired annual
// income supports indefinite withdrawals at roughly 4% per year.
var targetFundMultiple = decimal.NewFromInt(25)

// withdrawalRate is the sustainable annual draw used for the monthly
// shortfall estimate, the flip side of the 25x target.
const withdrawalRate = 0.04

// RetirementProjector runs the Monte Carlo compounding simulation and scores
// the outcome. It is the only non-deterministic component of the system.
type RetirementProjector struct {
	Config MonteCarloConfig
	Scorer *ReadinessScorer
}

// NewRetirementProjector creates a projector with the default 10,000 trials,
// one worker per CPU, and a time-based seed.
func NewRetirementProjector() *RetirementProjector {
	return NewRetirementProjectorWithConfig(MonteCarloConfig{})
}

// NewRetirementProjectorWithConfig creates a projector, filling zero config
// fields with defaults.
func NewRetirementProjectorWithConfig(cfg MonteCarloConfig) *RetirementProjector {
	if cfg.NumTrials <= 0 {
		cfg.NumTrials = 10000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &RetirementProjector{
		Config: cfg,
		Scorer: NewReadinessScorer(),
	}
}

// simulateTrial compounds one savings path: each year adds twelve monthly
// contributions, then applies an annual return sampled from the configured
// normal distribution, clamping the balance at zero.
func simulateTrial(src NormalSource, savings, monthly, meanReturn, volatility float64, years int) float64 {
	for year := 0; year < years; year++ {
		savings += monthly * 12
		annualReturn := meanReturn + volatility*src.NormFloat64()
		savings *= 1 + annualReturn
		if savings < 0 {
			savings = 0
		}
	}
	return savings
}

// percentileAt extracts a percentile from sorted values by index.
func percentileAt(sorted []float64, percentile int) float64 {
	idx := len(sorted) * percentile / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Project runs the simulation for the retirement inputs and the filer
// context and returns the complete analysis. Zero or negative years to
// retirement short-circuits to a single deterministic scenario.
func (rp *RetirementProjector) Project(inputs domain.RetirementInputs, filer domain.FilerContext) domain.RetirementAnalysis {
	targetFund := inputs.DesiredAnnualIncome.Mul(targetFundMultiple)
	years := inputs.RetirementAge - inputs.CurrentAge

	var terminal []float64
	if years <= 0 {
		terminal = []float64{inputs.CurrentSavings.InexactFloat64()}
	} else {
		terminal = rp.runTrials(inputs, years)
		sort.Float64s(terminal)
	}

	targetFloat := targetFund.InexactFloat64()
	met := 0
	for _, v := range terminal {
		if v >= targetFloat {
			met++
		}
	}
	successProbability := decimal.NewFromFloat(float64(met) / float64(len(terminal)))

	bands := domain.PercentileBands{
		P5:  decimal.NewFromFloat(percentileAt(terminal, 5)).Round(2),
		P25: decimal.NewFromFloat(percentileAt(terminal, 25)).Round(2),
		P50: decimal.NewFromFloat(percentileAt(terminal, 50)).Round(2),
		P75: decimal.NewFromFloat(percentileAt(terminal, 75)).Round(2),
		P95: decimal.NewFromFloat(percentileAt(terminal, 95)).Round(2),
	}
	median := bands.P50

	additionalNeeded := nonNegative(targetFund.Sub(median)).Round(2)
	monthlyShortfall := rp.monthlyShortfall(inputs, median)

	analysis := domain.RetirementAnalysis{
		ProjectedSavings:   median,
		TargetFund:         targetFund.Round(2),
		AdditionalNeeded:   additionalNeeded,
		MonthlyShortfall:   monthlyShortfall,
		Percentiles:        bands,
		SuccessProbability: successProbability.Round(4),
	}

	rp.Scorer.Apply(&analysis, inputs, filer)
	return analysis
}

// runTrials fans the trials out across workers. Each worker owns a
// contiguous block and a seed derived from the base seed, so the union of
// terminal values is deterministic for a fixed configuration.
func (rp *RetirementProjector) runTrials(inputs domain.RetirementInputs, years int) []float64 {
	numTrials := rp.Config.NumTrials
	workers := rp.Config.Workers
	if workers > numTrials {
		workers = numTrials
	}

	savings := inputs.CurrentSavings.InexactFloat64()
	monthly := inputs.MonthlyContribution.InexactFloat64()
	meanReturn := inputs.ExpectedReturn.InexactFloat64()
	volatility := inputs.ReturnVolatility.InexactFloat64()

	terminal := make([]float64, numTrials)
	perWorker := numTrials / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if w == workers-1 {
			end = numTrials
		}
		wg.Add(1)
		go func(worker, start, end int) {
			defer wg.Done()
			src := NewBoxMullerSource(rp.Config.Seed + int64(worker))
			for i := start; i < end; i++ {
				terminal[i] = simulateTrial(src, savings, monthly, meanReturn, volatility, years)
			}
		}(w, start, end)
	}
	wg.Wait()

	return terminal
}

// monthlyShortfall estimates the gap between the desired monthly retirement
// income and what the median projection plus Social Security can sustain at
// the 4% withdrawal rate.
func (rp *RetirementProjector) monthlyShortfall(inputs domain.RetirementInputs, median decimal.Decimal) decimal.Decimal {
	twelve := decimal.NewFromInt(12)
	desiredMonthly := inputs.DesiredAnnualIncome.Div(twelve)
	sustainableMonthly := median.Mul(decimal.NewFromFloat(withdrawalRate)).Div(twelve).
		Add(inputs.SocialSecurityMonthly)
	return nonNegative(desiredMonthly.Sub(sustainableMonthly)).Round(2)
}
