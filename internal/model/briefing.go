package model

// RecommendationPriority orders briefing recommendations by urgency.
type RecommendationPriority string

const (
	PriorityCritical RecommendationPriority = "Critical"
	PriorityHigh     RecommendationPriority = "High"
	PriorityMedium   RecommendationPriority = "Medium"
	PriorityLow      RecommendationPriority = "Low"
)

// Recommendation is one actionable item in the daily briefing.
type Recommendation struct {
	Priority  RecommendationPriority `json:"priority"`
	Category  string                 `json:"category"`
	Action    string                 `json:"action"`
	Reasoning string                 `json:"reasoning"`
	Timing    *string                `json:"timing,omitempty"`
}

// InsightSource marks whether an artifact came from the generative insight
// service or from the deterministic rule engine. A "rules" result is a
// degraded-quality but fully valid outcome, never an error.
type InsightSource string

const (
	SourceRules InsightSource = "rules"
	SourceLLM   InsightSource = "llm"
)

// Briefing is the prioritized daily plan: a single focus selection, an
// energy prediction on a 1-10 scale, and a capped recommendation list.
// Recommendations keep generation order; they are not re-sorted by priority.
type Briefing struct {
	Priority         string           `json:"priority"`
	Focus            string           `json:"focus"`
	EnergyPrediction int              `json:"energy_prediction"`
	RiskAlert        *string          `json:"risk_alert,omitempty"`
	Recommendations  []Recommendation `json:"recommendations"`
	Source           InsightSource    `json:"source"`
}
