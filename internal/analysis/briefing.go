package analysis

import (
	"fmt"

	"vitalis.app/pulse/internal/model"
)

// BriefingInput carries yesterday's snapshot and short trends. Pointer
// fields are nil when the source category had no usable record.
type BriefingInput struct {
	SleepEfficiency *float64 // yesterday, percent
	SleepDuration   *float64 // yesterday, hours
	Steps           *float64 // yesterday
	LatestHRV       *float64 // most recent reading, ms

	// HRVTrend is the change in average HRV over the past 7 days, in ms.
	// Negative means declining.
	HRVTrend *float64

	// MaxRecommendations caps the list; zero falls back to the default of 4.
	MaxRecommendations int
}

// BriefingInputFromRecords derives the briefing input from raw series.
// Yesterday's values come from the most recent sleep/activity record; the
// HRV trend compares the first and second halves of the recent heart window.
func BriefingInputFromRecords(heart, sleep, activity []model.MeasurementRecord, maxRecommendations int) BriefingInput {
	in := BriefingInput{MaxRecommendations: maxRecommendations}

	if v, ok := latestValue(sleep, model.FieldSleepEfficiency); ok {
		in.SleepEfficiency = &v
	}
	if v, ok := latestValue(sleep, model.FieldSleepDuration); ok {
		in.SleepDuration = &v
	}
	if v, ok := latestValue(activity, model.FieldSteps); ok {
		in.Steps = &v
	}
	if v, ok := latestValue(heart, model.FieldHRV); ok {
		in.LatestHRV = &v
	}

	hrv := recentValues(heart, model.FieldHRV, scoreWindow)
	if len(hrv) >= 4 {
		mid := len(hrv) / 2
		trend := mean(hrv[mid:]) - mean(hrv[:mid])
		in.HRVTrend = &trend
	}

	return in
}

// Brief re-evaluates the daily priority selection from scratch on every
// call. The rule cascade below is ordered; later rules may add
// recommendations without overriding an earlier focus selection. The final
// list keeps generation order and is truncated to the cap -- it is
// deliberately not re-sorted by priority.
func Brief(in BriefingInput) model.Briefing {
	b := model.Briefing{
		Priority:         "Recovery",
		Focus:            "Maintenance",
		EnergyPrediction: 7,
		Source:           model.SourceRules,
	}
	var recs []model.Recommendation

	poorSleep := (in.SleepEfficiency != nil && *in.SleepEfficiency < 70) ||
		(in.SleepDuration != nil && *in.SleepDuration < 6)
	greatSleep := in.SleepEfficiency != nil && *in.SleepEfficiency > 85 &&
		in.SleepDuration != nil && *in.SleepDuration > 7

	if poorSleep {
		b.EnergyPrediction = 4
		b.Priority = "Recovery"
		b.Focus = "Sleep Recovery"
		recs = append(recs, model.Recommendation{
			Priority:  model.PriorityHigh,
			Category:  "recovery",
			Action:    "Limit strenuous activity today",
			Reasoning: "Last night's sleep was insufficient for full recovery",
		})
	} else if greatSleep {
		b.EnergyPrediction = 9
		b.Focus = "Performance Optimization"
	}

	if in.LatestHRV != nil && *in.LatestHRV < 20 {
		b.Priority = "Stress Management"
		b.Focus = "Autonomic Recovery"
		if b.EnergyPrediction > 5 {
			b.EnergyPrediction = 5
		}
		risk := fmt.Sprintf("HRV of %.0fms signals elevated physiological stress", *in.LatestHRV)
		b.RiskAlert = &risk
		recs = append(recs, model.Recommendation{
			Priority:  model.PriorityCritical,
			Category:  "stress",
			Action:    "Run a 10-minute paced-breathing protocol",
			Reasoning: "Very low HRV indicates acute autonomic strain",
			Timing:    timing("morning"),
		})
	} else if in.HRVTrend != nil && *in.HRVTrend < -5 {
		recs = append(recs, model.Recommendation{
			Priority:  model.PriorityMedium,
			Category:  "stress",
			Action:    "Schedule a stress-reduction block today",
			Reasoning: fmt.Sprintf("HRV has declined %.0fms over the past week", -*in.HRVTrend),
		})
	}

	if in.Steps != nil && *in.Steps < 5000 {
		recs = append(recs, model.Recommendation{
			Priority:  model.PriorityMedium,
			Category:  "activity",
			Action:    "Take a 30-minute walk",
			Reasoning: "Yesterday's step count was below the activity target",
		})
	}

	if b.EnergyPrediction < 7 {
		recs = append(recs, model.Recommendation{
			Priority:  model.PriorityMedium,
			Category:  "metabolic",
			Action:    "Front-load meals and avoid late eating",
			Reasoning: "Lower predicted energy favors an earlier feeding window",
			Timing:    timing("before 19:00"),
		})
	}

	recs = append(recs, model.Recommendation{
		Priority:  model.PriorityLow,
		Category:  "hydration",
		Action:    "Drink at least 2L of water",
		Reasoning: "Baseline hydration supports every other recommendation",
	})

	limit := in.MaxRecommendations
	if limit <= 0 {
		limit = 4
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	b.Recommendations = recs

	return b
}

func timing(s string) *string {
	return &s
}
