package model

import (
	"encoding/json"
	"time"
)

// AnalysisType keys one cached insight per subject.
type AnalysisType string

const (
	AnalysisBriefing AnalysisType = "briefing"
)

// CachedInsight is the envelope stored in the insight cache. A present but
// expired entry is a cache miss; entries are idempotent recomputations, so
// concurrent writers may race and last-write-wins is acceptable.
type CachedInsight struct {
	Payload     json.RawMessage `json:"payload"`
	GeneratedAt time.Time       `json:"generated_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// Expired reports whether the entry is past its validity window.
func (c CachedInsight) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
