package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"vitalis.app/pulse/internal/analysis"
	"vitalis.app/pulse/internal/model"
)

func f(v float64) *float64 { return &v }

var _ = Describe("Brief", func() {
	It("produces the maintenance baseline when no signal is available", func() {
		b := analysis.Brief(analysis.BriefingInput{})

		Expect(b.Priority).To(Equal("Recovery"))
		Expect(b.Focus).To(Equal("Maintenance"))
		Expect(b.EnergyPrediction).To(Equal(7))
		Expect(b.RiskAlert).To(BeNil())
		Expect(b.Source).To(Equal(model.SourceRules))

		// Only the hydration baseline fires.
		Expect(b.Recommendations).To(HaveLen(1))
		Expect(b.Recommendations[0].Category).To(Equal("hydration"))
		Expect(b.Recommendations[0].Priority).To(Equal(model.PriorityLow))
	})

	It("predicts high energy after excellent sleep despite low activity", func() {
		b := analysis.Brief(analysis.BriefingInput{
			SleepEfficiency: f(90),
			SleepDuration:   f(8),
			Steps:           f(2000),
			LatestHRV:       f(45),
		})

		Expect(b.EnergyPrediction).To(Equal(9))
		Expect(b.Focus).To(Equal("Performance Optimization"))
		Expect(b.Priority).To(Equal("Recovery"))
		Expect(b.RiskAlert).To(BeNil())

		Expect(b.Recommendations).To(HaveLen(2))
		Expect(b.Recommendations[0].Category).To(Equal("activity"))
		Expect(b.Recommendations[1].Category).To(Equal("hydration"))
	})

	It("shifts to sleep recovery after a poor night", func() {
		b := analysis.Brief(analysis.BriefingInput{
			SleepEfficiency: f(60),
			SleepDuration:   f(7.5),
			Steps:           f(9000),
			LatestHRV:       f(40),
		})

		Expect(b.EnergyPrediction).To(Equal(4))
		Expect(b.Priority).To(Equal("Recovery"))
		Expect(b.Focus).To(Equal("Sleep Recovery"))

		// Recovery, metabolic (low energy), hydration.
		Expect(b.Recommendations).To(HaveLen(3))
		Expect(b.Recommendations[0].Category).To(Equal("recovery"))
		Expect(b.Recommendations[0].Priority).To(Equal(model.PriorityHigh))
		Expect(b.Recommendations[1].Category).To(Equal("metabolic"))
		Expect(b.Recommendations[2].Category).To(Equal("hydration"))
	})

	It("treats short duration alone as a poor night", func() {
		b := analysis.Brief(analysis.BriefingInput{
			SleepEfficiency: f(88),
			SleepDuration:   f(5),
		})

		Expect(b.Focus).To(Equal("Sleep Recovery"))
		Expect(b.EnergyPrediction).To(Equal(4))
	})

	It("lets very low HRV override the sleep-derived focus", func() {
		b := analysis.Brief(analysis.BriefingInput{
			SleepEfficiency: f(90),
			SleepDuration:   f(8),
			LatestHRV:       f(18),
		})

		Expect(b.Priority).To(Equal("Stress Management"))
		Expect(b.Focus).To(Equal("Autonomic Recovery"))
		Expect(b.EnergyPrediction).To(Equal(5))
		Expect(b.RiskAlert).NotTo(BeNil())
		Expect(*b.RiskAlert).To(ContainSubstring("18ms"))

		Expect(b.Recommendations[0].Category).To(Equal("stress"))
		Expect(b.Recommendations[0].Priority).To(Equal(model.PriorityCritical))
		Expect(b.Recommendations[0].Timing).NotTo(BeNil())
	})

	It("suggests stress reduction on a declining HRV trend", func() {
		b := analysis.Brief(analysis.BriefingInput{
			LatestHRV: f(35),
			HRVTrend:  f(-8),
		})

		Expect(b.Priority).To(Equal("Recovery"))
		Expect(b.RiskAlert).To(BeNil())

		Expect(b.Recommendations[0].Category).To(Equal("stress"))
		Expect(b.Recommendations[0].Priority).To(Equal(model.PriorityMedium))
		Expect(b.Recommendations[0].Reasoning).To(ContainSubstring("8ms"))
	})

	It("truncates in generation order without re-sorting by priority", func() {
		// Poor sleep and very low HRV generate five candidates:
		// recovery (High), stress (Critical), activity, metabolic,
		// hydration. The cut keeps the first four as generated -- the
		// Critical entry stays second.
		b := analysis.Brief(analysis.BriefingInput{
			SleepEfficiency: f(60),
			SleepDuration:   f(5),
			Steps:           f(1000),
			LatestHRV:       f(12),
		})

		Expect(b.Recommendations).To(HaveLen(4))
		Expect(b.Recommendations[0].Priority).To(Equal(model.PriorityHigh))
		Expect(b.Recommendations[1].Priority).To(Equal(model.PriorityCritical))
		Expect(b.Recommendations[2].Category).To(Equal("activity"))
		Expect(b.Recommendations[3].Category).To(Equal("metabolic"))
	})

	It("honors a configured recommendation cap", func() {
		b := analysis.Brief(analysis.BriefingInput{
			SleepEfficiency:    f(60),
			SleepDuration:      f(5),
			Steps:              f(1000),
			LatestHRV:          f(12),
			MaxRecommendations: 2,
		})

		Expect(b.Recommendations).To(HaveLen(2))
		Expect(b.Recommendations[0].Category).To(Equal("recovery"))
		Expect(b.Recommendations[1].Category).To(Equal("stress"))
	})
})

var _ = Describe("BriefingInputFromRecords", func() {
	It("takes yesterday's values from the latest records", func() {
		sleep := append(
			dailyRecords(model.CategorySleep, model.FieldSleepEfficiency, []float64{70, 92}),
			dailyRecords(model.CategorySleep, model.FieldSleepDuration, []float64{6, 7.8})...,
		)
		activity := dailyRecords(model.CategoryActivity, model.FieldSteps, []float64{3000, 8200})
		heart := dailyRecords(model.CategoryHeart, model.FieldHRV, []float64{50, 48, 47, 46})

		in := analysis.BriefingInputFromRecords(heart, sleep, activity, 4)

		Expect(in.SleepEfficiency).To(HaveValue(Equal(92.0)))
		Expect(in.SleepDuration).To(HaveValue(Equal(7.8)))
		Expect(in.Steps).To(HaveValue(Equal(8200.0)))
		Expect(in.LatestHRV).To(HaveValue(Equal(46.0)))
		Expect(in.MaxRecommendations).To(Equal(4))
	})

	It("derives the HRV trend as second-half minus first-half average", func() {
		heart := dailyRecords(model.CategoryHeart, model.FieldHRV, []float64{50, 50, 50, 40, 40, 40})

		in := analysis.BriefingInputFromRecords(heart, nil, nil, 4)

		Expect(in.HRVTrend).To(HaveValue(BeNumerically("~", -10, 1e-9)))
	})

	It("derives the trend from HRV readings even with other heart rows interleaved", func() {
		heart := append(
			dailyRecords(model.CategoryHeart, model.FieldHRV, []float64{50, 50, 50, 40, 40, 40}),
			dailyRecords(model.CategoryHeart, model.FieldRestingHR, []float64{60, 60, 60, 60})...,
		)

		in := analysis.BriefingInputFromRecords(heart, nil, nil, 4)

		Expect(in.HRVTrend).To(HaveValue(BeNumerically("~", -10, 1e-9)))
	})

	It("leaves the trend unset on fewer than four readings", func() {
		heart := dailyRecords(model.CategoryHeart, model.FieldHRV, []float64{50, 40, 30})

		in := analysis.BriefingInputFromRecords(heart, nil, nil, 4)

		Expect(in.HRVTrend).To(BeNil())
	})

	It("leaves every field unset on empty input", func() {
		in := analysis.BriefingInputFromRecords(nil, nil, nil, 4)

		Expect(in.SleepEfficiency).To(BeNil())
		Expect(in.SleepDuration).To(BeNil())
		Expect(in.Steps).To(BeNil())
		Expect(in.LatestHRV).To(BeNil())
		Expect(in.HRVTrend).To(BeNil())
	})
})
