package model

// Significance is a coarse band, not an exact statistical claim. Bands are
// calibrated per metric pair; see the analysis package pair table.
type Significance string

const (
	SignificanceHigh   Significance = "high"
	SignificanceMedium Significance = "medium"
	SignificanceLow    Significance = "low"
)

// CorrelationResult is the outcome of correlating one metric pair.
// PValue is a categorical approximation (0.05, 0.10 or 0.20) derived from a
// t-statistic breakpoint table; downstream severity handling is calibrated to
// those exact values.
type CorrelationResult struct {
	Pair           string       `json:"pair"`
	Coefficient    float64      `json:"coefficient"`
	Significance   Significance `json:"significance"`
	PValue         float64      `json:"approximate_p_value"`
	SampleSize     int          `json:"sample_size"`
	Interpretation string       `json:"interpretation"`
}
