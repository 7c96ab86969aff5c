package model

// DomainScore is one physiological domain's contribution to the composite
// score. Invariants: sum of SubScores equals Score, and Score never exceeds
// MaxPoints.
type DomainScore struct {
	Score     int            `json:"score"`
	MaxPoints int            `json:"max_points"`
	SubScores map[string]int `json:"sub_scores"`
}

// HealthScore is the composite 0-100 score with its five-domain breakdown.
// Overall equals the sum of the five domain scores by construction.
type HealthScore struct {
	Overall        int         `json:"overall"`
	Cardiovascular DomainScore `json:"cardiovascular"`
	Metabolic      DomainScore `json:"metabolic"`
	Inflammatory   DomainScore `json:"inflammatory"`
	Nutritional    DomainScore `json:"nutritional"`
	Recovery       DomainScore `json:"recovery"`
}

// Domains returns the five domain scores in rubric order.
func (s HealthScore) Domains() []DomainScore {
	return []DomainScore{s.Cardiovascular, s.Metabolic, s.Inflammatory, s.Nutritional, s.Recovery}
}
