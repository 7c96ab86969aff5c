package analysis

import (
	"time"

	"vitalis.app/pulse/internal/model"
)

// Alignment tolerances. Daily metrics pair within a day; lab markers change
// slowly and pair within a week.
const (
	ToleranceDaily = 24 * time.Hour
	ToleranceLab   = 7 * 24 * time.Hour
)

// Align joins two record series by nearest timestamp within tolerance.
// For every record in a carrying fieldA, the closest record in b (by
// absolute time delta) that carries fieldB and falls within tolerance is
// paired; the first candidate wins an exact tie. Records lacking the named
// field are not candidates, so a nearer record without the field never
// shadows a farther one that has it. Empty input yields an empty series,
// never an error.
//
// The scan is O(n*m); series here are at most a few hundred records and
// correctness of the tie-break matters more than asymptotics.
func Align(a, b []model.MeasurementRecord, fieldA, fieldB string, tolerance time.Duration) model.AlignedSeries {
	aligned := make(model.AlignedSeries, 0, len(a))

	for _, ra := range a {
		x, ok := ra.Field(fieldA)
		if !ok {
			continue
		}

		var (
			found     bool
			bestY     float64
			bestDelta time.Duration
		)
		for i := range b {
			y, ok := b[i].Field(fieldB)
			if !ok {
				continue
			}
			delta := b[i].RecordedAt.Sub(ra.RecordedAt)
			if delta < 0 {
				delta = -delta
			}
			if delta > tolerance {
				continue
			}
			if !found || delta < bestDelta {
				found = true
				bestY = y
				bestDelta = delta
			}
		}
		if !found {
			continue
		}
		aligned = append(aligned, model.AlignedPair{X: x, Y: bestY})
	}

	return aligned
}
