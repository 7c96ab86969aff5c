package analysis

import (
	"fmt"
	"sort"

	"vitalis.app/pulse/common/id"
	"vitalis.app/pulse/internal/model"
)

// Clinical thresholds on 7-record rolling averages. All comparisons are
// strict: an HRV average of exactly 15 is a warning, not critical.
const (
	hrvCritical = 15.0
	hrvWarning  = 25.0

	restingHRCritical = 90.0
	restingHRWarning  = 75.0

	sleepEffCritical = 70.0
	sleepEffWarning  = 80.0

	stepsWarning = 3000.0
	stepsLow     = 6000.0
)

// ScanAlerts compares rolling averages of the monitored metrics against
// fixed clinical thresholds. The result places all critical alerts first;
// within a severity tier, generation order is preserved.
func ScanAlerts(heart, sleep, activity []model.MeasurementRecord) []model.Alert {
	var alerts []model.Alert

	if avg, ok := recentAverage(heart, model.FieldHRV, scoreWindow); ok {
		switch {
		case avg < hrvCritical:
			alerts = append(alerts, newAlert(model.AlertCritical, model.CategoryHeart, "hrv", avg, hrvCritical,
				fmt.Sprintf("HRV average of %.0fms indicates severe autonomic stress", avg),
				"Contact your clinician; suspend strenuous training until HRV recovers"))
		case avg < hrvWarning:
			alerts = append(alerts, newAlert(model.AlertWarning, model.CategoryHeart, "hrv", avg, hrvWarning,
				fmt.Sprintf("HRV average of %.0fms is below the healthy range", avg),
				"Prioritize sleep and reduce training load this week"))
		}
	}

	if avg, ok := recentAverage(heart, model.FieldRestingHR, scoreWindow); ok {
		switch {
		case avg > restingHRCritical:
			alerts = append(alerts, newAlert(model.AlertCritical, model.CategoryHeart, "resting_heart_rate", avg, restingHRCritical,
				fmt.Sprintf("Resting heart rate average of %.0fbpm is elevated", avg),
				"Seek medical review; rule out illness, dehydration and overtraining"))
		case avg > restingHRWarning:
			alerts = append(alerts, newAlert(model.AlertWarning, model.CategoryHeart, "resting_heart_rate", avg, restingHRWarning,
				fmt.Sprintf("Resting heart rate average of %.0fbpm is above baseline", avg),
				"Monitor stress and caffeine intake; recheck in a few days"))
		}
	}

	if avg, ok := recentAverage(sleep, model.FieldSleepEfficiency, scoreWindow); ok {
		switch {
		case avg < sleepEffCritical:
			alerts = append(alerts, newAlert(model.AlertCritical, model.CategorySleep, "sleep_efficiency", avg, sleepEffCritical,
				fmt.Sprintf("Sleep efficiency average of %.0f%% indicates severely disrupted sleep", avg),
				"Discuss sleep hygiene or a sleep study with your clinician"))
		case avg < sleepEffWarning:
			alerts = append(alerts, newAlert(model.AlertWarning, model.CategorySleep, "sleep_efficiency", avg, sleepEffWarning,
				fmt.Sprintf("Sleep efficiency average of %.0f%% is below target", avg),
				"Keep a consistent sleep schedule and limit screens before bed"))
		}
	}

	if avg, ok := recentAverage(activity, model.FieldSteps, scoreWindow); ok {
		switch {
		case avg < stepsWarning:
			alerts = append(alerts, newAlert(model.AlertWarning, model.CategoryActivity, "steps", avg, stepsWarning,
				fmt.Sprintf("Daily step average of %.0f is sedentary", avg),
				"Add two short walks per day to break up sedentary time"))
		case avg < stepsLow:
			alerts = append(alerts, newAlert(model.AlertInfo, model.CategoryActivity, "steps", avg, stepsLow,
				fmt.Sprintf("Daily step average of %.0f is below the activity target", avg),
				"Aim for a gradual increase toward 8000 steps per day"))
		}
	}

	// Stable: critical floats to the front, generation order holds otherwise.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Level == model.AlertCritical && alerts[j].Level != model.AlertCritical
	})

	return alerts
}

func newAlert(level model.AlertLevel, category model.Category, metric string, current, threshold float64, message, action string) model.Alert {
	return model.Alert{
		ID:                id.New(),
		Level:             level,
		Category:          category,
		Metric:            metric,
		CurrentValue:      current,
		Threshold:         threshold,
		Message:           message,
		RecommendedAction: action,
	}
}
