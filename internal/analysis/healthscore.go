package analysis

import "vitalis.app/pulse/internal/model"

// scoreWindow bounds each domain to the most recent records of its source
// series, or fewer when the window is short on data.
const scoreWindow = 7

// Score maps domain aggregates through breakpoint rubrics into a 0-100
// composite. Missing source data defaults the affected sub-score to 0, so an
// all-empty input produces a zero score rather than an error.
//
// Cardiovascular and metabolic read their markers directly. The
// inflammatory, nutritional and recovery domains have no dedicated source
// category; their sub-scores are deterministic derivations from secondary
// signals (CRP and glycemic lab markers, sleep quality and duration, HRV,
// activity volume). The derivation is spelled out at each rubric below.
func Score(heart, sleep, activity, lab []model.MeasurementRecord) model.HealthScore {
	score := model.HealthScore{
		Cardiovascular: cardiovascularScore(heart),
		Metabolic:      metabolicScore(sleep, activity, lab),
		Inflammatory:   inflammatoryScore(sleep, lab),
		Nutritional:    nutritionalScore(activity, lab),
		Recovery:       recoveryScore(heart, sleep),
	}

	for _, d := range score.Domains() {
		score.Overall += d.Score
	}
	return score
}

// cardiovascularScore: 25 points from HRV (10), resting heart rate (10) and
// systolic blood pressure (5), each averaged over the recent window.
func cardiovascularScore(heart []model.MeasurementRecord) model.DomainScore {
	sub := map[string]int{"hrv": 0, "resting_heart_rate": 0, "blood_pressure": 0}

	if avg, ok := recentAverage(heart, model.FieldHRV, scoreWindow); ok {
		switch {
		case avg >= 40:
			sub["hrv"] = 10
		case avg >= 30:
			sub["hrv"] = 8
		case avg >= 20:
			sub["hrv"] = 6
		case avg >= 15:
			sub["hrv"] = 3
		}
	}

	if avg, ok := recentAverage(heart, model.FieldRestingHR, scoreWindow); ok {
		switch {
		case avg <= 60:
			sub["resting_heart_rate"] = 10
		case avg <= 70:
			sub["resting_heart_rate"] = 8
		case avg <= 80:
			sub["resting_heart_rate"] = 6
		case avg <= 90:
			sub["resting_heart_rate"] = 3
		}
	}

	if avg, ok := recentAverage(heart, model.FieldSystolicBP, scoreWindow); ok {
		switch {
		case avg <= 120:
			sub["blood_pressure"] = 5
		case avg <= 130:
			sub["blood_pressure"] = 4
		case avg <= 140:
			sub["blood_pressure"] = 2
		}
	}

	return domainScore(sub, 25)
}

// metabolicScore: 25 points from sleep efficiency (10), step volume (10) and
// the most recent glycemic lab marker (5). Glucose is preferred; HbA1c is
// the fallback when no glucose test exists in the window.
func metabolicScore(sleep, activity, lab []model.MeasurementRecord) model.DomainScore {
	sub := map[string]int{"sleep_efficiency": 0, "activity": 0, "glycemic": 0}

	if avg, ok := recentAverage(sleep, model.FieldSleepEfficiency, scoreWindow); ok {
		switch {
		case avg >= 85:
			sub["sleep_efficiency"] = 10
		case avg >= 80:
			sub["sleep_efficiency"] = 8
		case avg >= 75:
			sub["sleep_efficiency"] = 6
		case avg >= 70:
			sub["sleep_efficiency"] = 3
		}
	}

	if avg, ok := recentAverage(activity, model.FieldSteps, scoreWindow); ok {
		switch {
		case avg >= 10000:
			sub["activity"] = 10
		case avg >= 8000:
			sub["activity"] = 8
		case avg >= 6000:
			sub["activity"] = 6
		case avg >= 3000:
			sub["activity"] = 3
		}
	}

	if glucose, ok := latestValue(lab, model.FieldGlucose); ok {
		switch {
		case glucose <= 99:
			sub["glycemic"] = 5
		case glucose <= 110:
			sub["glycemic"] = 4
		case glucose <= 125:
			sub["glycemic"] = 2
		}
	} else if hba1c, ok := latestValue(lab, model.FieldHbA1c); ok {
		switch {
		case hba1c <= 5.6:
			sub["glycemic"] = 5
		case hba1c <= 6.0:
			sub["glycemic"] = 4
		case hba1c <= 6.4:
			sub["glycemic"] = 2
		}
	}

	return domainScore(sub, 25)
}

// inflammatoryScore: 20 points. No dedicated inflammatory source exists, so
// the domain derives from the latest CRP lab marker (10) and sleep
// efficiency as a systemic-stress proxy (10). Missing signals score 0.
func inflammatoryScore(sleep, lab []model.MeasurementRecord) model.DomainScore {
	sub := map[string]int{"crp_marker": 0, "sleep_quality": 0}

	if crp, ok := latestValue(lab, model.FieldCRP); ok {
		switch {
		case crp <= 1:
			sub["crp_marker"] = 10
		case crp <= 3:
			sub["crp_marker"] = 7
		case crp <= 10:
			sub["crp_marker"] = 3
		}
	}

	if avg, ok := recentAverage(sleep, model.FieldSleepEfficiency, scoreWindow); ok {
		switch {
		case avg >= 85:
			sub["sleep_quality"] = 10
		case avg >= 75:
			sub["sleep_quality"] = 7
		case avg >= 65:
			sub["sleep_quality"] = 4
		}
	}

	return domainScore(sub, 20)
}

// nutritionalScore: 15 points derived from the glycemic lab marker (8) and
// activity volume as an energy-balance proxy (7).
func nutritionalScore(activity, lab []model.MeasurementRecord) model.DomainScore {
	sub := map[string]int{"glycemic_stability": 0, "energy_balance": 0}

	if glucose, ok := latestValue(lab, model.FieldGlucose); ok {
		switch {
		case glucose <= 99:
			sub["glycemic_stability"] = 8
		case glucose <= 110:
			sub["glycemic_stability"] = 6
		case glucose <= 125:
			sub["glycemic_stability"] = 3
		}
	} else if hba1c, ok := latestValue(lab, model.FieldHbA1c); ok {
		switch {
		case hba1c <= 5.6:
			sub["glycemic_stability"] = 8
		case hba1c <= 6.0:
			sub["glycemic_stability"] = 6
		case hba1c <= 6.4:
			sub["glycemic_stability"] = 3
		}
	}

	if avg, ok := recentAverage(activity, model.FieldSteps, scoreWindow); ok {
		switch {
		case avg >= 8000:
			sub["energy_balance"] = 7
		case avg >= 5000:
			sub["energy_balance"] = 5
		case avg >= 2000:
			sub["energy_balance"] = 3
		default:
			sub["energy_balance"] = 1
		}
	}

	return domainScore(sub, 15)
}

// recoveryScore: 15 points derived from HRV (8) and sleep duration (7).
func recoveryScore(heart, sleep []model.MeasurementRecord) model.DomainScore {
	sub := map[string]int{"autonomic": 0, "sleep_duration": 0}

	if avg, ok := recentAverage(heart, model.FieldHRV, scoreWindow); ok {
		switch {
		case avg >= 40:
			sub["autonomic"] = 8
		case avg >= 30:
			sub["autonomic"] = 6
		case avg >= 20:
			sub["autonomic"] = 4
		case avg >= 15:
			sub["autonomic"] = 2
		}
	}

	if avg, ok := recentAverage(sleep, model.FieldSleepDuration, scoreWindow); ok {
		switch {
		case avg >= 7:
			sub["sleep_duration"] = 7
		case avg >= 6:
			sub["sleep_duration"] = 5
		case avg >= 5:
			sub["sleep_duration"] = 3
		default:
			sub["sleep_duration"] = 1
		}
	}

	return domainScore(sub, 15)
}

func domainScore(sub map[string]int, maxPoints int) model.DomainScore {
	total := 0
	for _, v := range sub {
		total += v
	}
	return model.DomainScore{Score: total, MaxPoints: maxPoints, SubScores: sub}
}
