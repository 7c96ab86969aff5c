package analysis

import (
	"fmt"
	"math"
	"time"

	"vitalis.app/pulse/internal/model"
)

// Minimum aligned samples before a correlation is computed. Below the floor
// the result is omitted entirely, never returned with placeholder values.
const (
	MinSamplesCrossDomain = 5  // daily metric vs slow-cadence lab marker
	MinSamplesSameCadence = 10 // two daily metrics
)

// MetricPair identifies one lifestyle/health comparison. Significance bands
// are per-pair design constants, not a universal cutoff: a |r| that reads
// "high" for one pair may only be "medium" for another.
type MetricPair struct {
	Key        string
	LabelA     string
	LabelB     string
	CategoryA  model.Category
	CategoryB  model.Category
	FieldA     string
	FieldB     string
	Tolerance  time.Duration
	MinSamples int
	HighBand   float64
	MediumBand float64
}

// Pairs is the comparison table the correlation run works through.
var Pairs = []MetricPair{
	{
		Key:    "sleep_efficiency_vs_hrv",
		LabelA: "sleep efficiency", LabelB: "HRV",
		CategoryA: model.CategorySleep, CategoryB: model.CategoryHeart,
		FieldA: model.FieldSleepEfficiency, FieldB: model.FieldHRV,
		Tolerance: ToleranceDaily, MinSamples: MinSamplesSameCadence,
		HighBand: 0.7, MediumBand: 0.4,
	},
	{
		Key:    "steps_vs_resting_hr",
		LabelA: "daily steps", LabelB: "resting heart rate",
		CategoryA: model.CategoryActivity, CategoryB: model.CategoryHeart,
		FieldA: model.FieldSteps, FieldB: model.FieldRestingHR,
		Tolerance: ToleranceDaily, MinSamples: MinSamplesSameCadence,
		HighBand: 0.6, MediumBand: 0.3,
	},
	{
		Key:    "sleep_duration_vs_steps",
		LabelA: "sleep duration", LabelB: "daily steps",
		CategoryA: model.CategorySleep, CategoryB: model.CategoryActivity,
		FieldA: model.FieldSleepDuration, FieldB: model.FieldSteps,
		Tolerance: ToleranceDaily, MinSamples: MinSamplesSameCadence,
		HighBand: 0.5, MediumBand: 0.3,
	},
	{
		Key:    "sleep_efficiency_vs_resting_hr",
		LabelA: "sleep efficiency", LabelB: "resting heart rate",
		CategoryA: model.CategorySleep, CategoryB: model.CategoryHeart,
		FieldA: model.FieldSleepEfficiency, FieldB: model.FieldRestingHR,
		Tolerance: ToleranceDaily, MinSamples: MinSamplesSameCadence,
		HighBand: 0.6, MediumBand: 0.3,
	},
	{
		Key:    "steps_vs_glucose",
		LabelA: "daily steps", LabelB: "glucose",
		CategoryA: model.CategoryActivity, CategoryB: model.CategoryLab,
		FieldA: model.FieldSteps, FieldB: model.FieldGlucose,
		Tolerance: ToleranceLab, MinSamples: MinSamplesCrossDomain,
		HighBand: 0.5, MediumBand: 0.3,
	},
	{
		Key:    "hrv_vs_crp",
		LabelA: "HRV", LabelB: "CRP",
		CategoryA: model.CategoryHeart, CategoryB: model.CategoryLab,
		FieldA: model.FieldHRV, FieldB: model.FieldCRP,
		Tolerance: ToleranceLab, MinSamples: MinSamplesCrossDomain,
		HighBand: 0.7, MediumBand: 0.4,
	},
}

// Correlate computes the Pearson correlation for one metric pair over an
// aligned series. Returns nil when the series is below the pair's sample
// floor; callers treat absence as a normal outcome.
func Correlate(pair MetricPair, s model.AlignedSeries) *model.CorrelationResult {
	n := len(s)
	if n < pair.MinSamples {
		return nil
	}

	r := pearson(s)

	return &model.CorrelationResult{
		Pair:           pair.Key,
		Coefficient:    r,
		Significance:   pair.significance(r),
		PValue:         approximatePValue(r, n),
		SampleSize:     n,
		Interpretation: pair.interpret(r),
	}
}

// pearson computes the standard Pearson coefficient. Zero variance in either
// vector yields 0 rather than a division error.
func pearson(s model.AlignedSeries) float64 {
	n := float64(len(s))

	var sumX, sumY float64
	for _, p := range s {
		sumX += p.X
		sumY += p.Y
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for _, p := range s {
		dx := p.X - meanX
		dy := p.Y - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	denom := math.Sqrt(varX * varY)
	if denom == 0 {
		return 0
	}
	return cov / denom
}

// approximatePValue maps a t-statistic onto three categorical p-values.
// This is a deliberately coarse approximation; downstream severity bands are
// calibrated to exactly these breakpoints, so it must not be made more
// precise.
func approximatePValue(r float64, n int) float64 {
	abs := math.Abs(r)
	var t float64
	if abs >= 1 {
		// Perfect correlation; treat as maximally significant.
		t = math.Inf(1)
	} else {
		t = abs * math.Sqrt(float64(n-2)/(1-r*r))
	}

	switch {
	case t > 2.048:
		return 0.05
	case t > 1.645:
		return 0.10
	default:
		return 0.20
	}
}

func (p MetricPair) significance(r float64) model.Significance {
	abs := math.Abs(r)
	switch {
	case abs > p.HighBand:
		return model.SignificanceHigh
	case abs > p.MediumBand:
		return model.SignificanceMedium
	default:
		return model.SignificanceLow
	}
}

func (p MetricPair) interpret(r float64) string {
	abs := math.Abs(r)

	var magnitude string
	switch {
	case abs > p.HighBand:
		magnitude = "Strong"
	case abs > p.MediumBand:
		magnitude = "Moderate"
	default:
		magnitude = "Weak"
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}

	return fmt.Sprintf("%s %s correlation between %s and %s", magnitude, direction, p.LabelA, p.LabelB)
}
