package store

import (
	"context"
	"time"

	"vitalis.app/pulse/internal/model"
)

// SampleStore is the sample store adapter boundary: it returns ordered,
// window-filtered measurement records per category. The analytics core does
// no further fetching logic of its own.
type SampleStore interface {
	ListMeasurements(ctx context.Context, subjectID string, category model.Category, from, to time.Time) ([]model.MeasurementRecord, error)
}
