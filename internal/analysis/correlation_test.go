package analysis_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"vitalis.app/pulse/internal/analysis"
	"vitalis.app/pulse/internal/model"
)

var _ = Describe("Correlate", func() {
	dailyPair := analysis.MetricPair{
		Key:    "sleep_efficiency_vs_hrv",
		LabelA: "sleep efficiency", LabelB: "HRV",
		MinSamples: analysis.MinSamplesSameCadence,
		HighBand:   0.7, MediumBand: 0.4,
	}

	series := func(pairs ...[2]float64) model.AlignedSeries {
		s := make(model.AlignedSeries, len(pairs))
		for i, p := range pairs {
			s[i] = model.AlignedPair{X: p[0], Y: p[1]}
		}
		return s
	}

	// Twelve samples with y rising roughly with x.
	noisy := series(
		[2]float64{70, 28}, [2]float64{72, 31}, [2]float64{75, 30},
		[2]float64{78, 34}, [2]float64{80, 33}, [2]float64{82, 37},
		[2]float64{84, 36}, [2]float64{85, 40}, [2]float64{87, 39},
		[2]float64{89, 43}, [2]float64{90, 42}, [2]float64{92, 46},
	)

	It("omits the result below the pair's sample floor", func() {
		short := noisy[:analysis.MinSamplesSameCadence-1]
		Expect(analysis.Correlate(dailyPair, short)).To(BeNil())
	})

	It("keeps the coefficient within [-1, 1]", func() {
		result := analysis.Correlate(dailyPair, noisy)
		Expect(result).NotTo(BeNil())
		Expect(result.Coefficient).To(BeNumerically(">=", -1))
		Expect(result.Coefficient).To(BeNumerically("<=", 1))
		Expect(result.SampleSize).To(Equal(len(noisy)))
	})

	It("is symmetric in its two vectors", func() {
		swapped := make(model.AlignedSeries, len(noisy))
		for i, p := range noisy {
			swapped[i] = model.AlignedPair{X: p.Y, Y: p.X}
		}

		a := analysis.Correlate(dailyPair, noisy)
		b := analysis.Correlate(dailyPair, swapped)
		Expect(a.Coefficient).To(BeNumerically("~", b.Coefficient, 1e-9))
	})

	It("yields exactly 1 for two identical series", func() {
		identical := make(model.AlignedSeries, 0, 12)
		for i := 0; i < 12; i++ {
			v := float64(60 + i)
			identical = append(identical, model.AlignedPair{X: v, Y: v})
		}

		result := analysis.Correlate(dailyPair, identical)
		Expect(result.Coefficient).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("detects a known linear relationship", func() {
		linear := make(model.AlignedSeries, 0, 12)
		for i := 0; i < 12; i++ {
			x := float64(i + 1)
			jitter := 0.01 * math.Pow(-1, float64(i))
			linear = append(linear, model.AlignedPair{X: x, Y: 2*x + jitter})
		}

		result := analysis.Correlate(dailyPair, linear)
		Expect(result.Coefficient).To(BeNumerically(">", 0.95))
		Expect(result.PValue).To(Equal(0.05))
		Expect(result.Significance).To(Equal(model.SignificanceHigh))
		Expect(result.Interpretation).To(Equal("Strong positive correlation between sleep efficiency and HRV"))
	})

	It("returns coefficient 0 when either vector has zero variance", func() {
		flat := make(model.AlignedSeries, 0, 12)
		for i := 0; i < 12; i++ {
			flat = append(flat, model.AlignedPair{X: 80, Y: float64(30 + i)})
		}

		result := analysis.Correlate(dailyPair, flat)
		Expect(result.Coefficient).To(BeZero())
		Expect(result.Significance).To(Equal(model.SignificanceLow))
	})

	It("maps a weak coefficient to the 0.20 p band", func() {
		// Near-zero relationship: y alternates independently of x.
		weak := series(
			[2]float64{70, 30}, [2]float64{72, 45}, [2]float64{75, 28},
			[2]float64{78, 44}, [2]float64{80, 29}, [2]float64{82, 45},
			[2]float64{84, 30}, [2]float64{85, 44}, [2]float64{87, 28},
			[2]float64{89, 45}, [2]float64{90, 29}, [2]float64{92, 44},
		)

		result := analysis.Correlate(dailyPair, weak)
		Expect(result.PValue).To(Equal(0.20))
		Expect(result.Significance).To(Equal(model.SignificanceLow))
	})

	It("bands the same coefficient differently per metric pair", func() {
		// r for this series is ~0.60, between the 0.5 and 0.7 band edges.
		moderate := series(
			[2]float64{70, 32}, [2]float64{72, 38}, [2]float64{75, 31},
			[2]float64{78, 41}, [2]float64{80, 34}, [2]float64{82, 40},
			[2]float64{84, 35}, [2]float64{85, 43}, [2]float64{87, 36},
			[2]float64{89, 44}, [2]float64{90, 37}, [2]float64{92, 45},
		)

		strict := analysis.Correlate(dailyPair, moderate)
		Expect(strict.Coefficient).To(BeNumerically(">", 0.5))
		Expect(strict.Coefficient).To(BeNumerically("<", 0.7))
		Expect(strict.Significance).To(Equal(model.SignificanceMedium))

		lenient := dailyPair
		lenient.HighBand, lenient.MediumBand = 0.5, 0.3
		relaxed := analysis.Correlate(lenient, moderate)
		Expect(relaxed.Significance).To(Equal(model.SignificanceHigh))
	})

	It("uses the lower floor for cross-domain pairs", func() {
		labPair := dailyPair
		labPair.MinSamples = analysis.MinSamplesCrossDomain

		six := noisy[:6]
		Expect(analysis.Correlate(dailyPair, six)).To(BeNil())
		Expect(analysis.Correlate(labPair, six)).NotTo(BeNil())
	})
})
