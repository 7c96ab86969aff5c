package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vitalis.app/pulse/core/db"
	"vitalis.app/pulse/internal/model"
)

// pgSampleStore reads measurement rows written by the device-sync
// collaborators. Fields are stored as a jsonb map of named numeric values.
type pgSampleStore struct {
	db *db.DB
}

func NewSampleStore(database *db.DB) SampleStore {
	return &pgSampleStore{db: database}
}

const listMeasurementsQuery = `
SELECT subject_id, category, recorded_at, fields
FROM measurements
WHERE subject_id = $1 AND category = $2 AND recorded_at >= $3 AND recorded_at < $4
ORDER BY recorded_at ASC`

func (s *pgSampleStore) ListMeasurements(ctx context.Context, subjectID string, category model.Category, from, to time.Time) ([]model.MeasurementRecord, error) {
	rows, err := s.db.Pool().Query(ctx, listMeasurementsQuery, subjectID, string(category), from, to)
	if err != nil {
		return nil, fmt.Errorf("querying measurements: %w", err)
	}
	defer rows.Close()

	var records []model.MeasurementRecord
	for rows.Next() {
		var (
			rec    model.MeasurementRecord
			cat    string
			fields []byte
		)
		if err := rows.Scan(&rec.SubjectID, &cat, &rec.RecordedAt, &fields); err != nil {
			return nil, fmt.Errorf("scanning measurement row: %w", err)
		}
		rec.Category = model.Category(cat)
		if err := json.Unmarshal(fields, &rec.Fields); err != nil {
			return nil, fmt.Errorf("decoding measurement fields: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading measurement rows: %w", err)
	}

	return records, nil
}
