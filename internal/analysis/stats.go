package analysis

import "vitalis.app/pulse/internal/model"

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// recentValues extracts the most recent n readings of the named field.
// Records arrive ordered by recorded_at ascending and one record need not
// carry every field, so the window is taken over the field's own readings,
// not over record positions.
func recentValues(records []model.MeasurementRecord, field string, n int) []float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := r.Field(field); ok {
			values = append(values, v)
		}
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return values
}

// recentAverage averages the named field over the most recent n records.
// The second return is false when no record carries the field.
func recentAverage(records []model.MeasurementRecord, field string, n int) (float64, bool) {
	values := recentValues(records, field, n)
	if len(values) == 0 {
		return 0, false
	}
	return mean(values), true
}

// latestValue returns the named field from the most recent record carrying it.
func latestValue(records []model.MeasurementRecord, field string) (float64, bool) {
	for i := len(records) - 1; i >= 0; i-- {
		if v, ok := records[i].Field(field); ok {
			return v, true
		}
	}
	return 0, false
}
