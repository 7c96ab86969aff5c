package model

import "time"

// Category identifies the source of a measurement record.
type Category string

const (
	CategoryHeart    Category = "heart"
	CategorySleep    Category = "sleep"
	CategoryActivity Category = "activity"
	CategoryLab      Category = "lab"
)

// Well-known measurement field names. Records carry a free-form field map;
// these are the names the analytics core reads.
const (
	FieldHRV             = "hrv"
	FieldRestingHR       = "resting_heart_rate"
	FieldSystolicBP      = "systolic_bp"
	FieldSleepEfficiency = "sleep_efficiency"
	FieldSleepDuration   = "sleep_duration_hours"
	FieldSteps           = "steps"
	FieldGlucose         = "glucose"
	FieldHbA1c           = "hba1c"
	FieldCRP             = "crp"
)

// MeasurementRecord is one timestamped observation for a subject. Records are
// immutable once fetched; the core never mutates them.
type MeasurementRecord struct {
	SubjectID  string             `json:"subject_id"`
	Category   Category           `json:"category"`
	RecordedAt time.Time          `json:"recorded_at"`
	Fields     map[string]float64 `json:"fields"`
}

// Field returns the named numeric field and whether it is present.
func (r MeasurementRecord) Field(name string) (float64, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// AlignedPair is one (x, y) sample produced by joining two record series on
// timestamp proximity.
type AlignedPair struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AlignedSeries is the ordered output of the aligner. Both values of every
// pair are present by construction.
type AlignedSeries []AlignedPair
