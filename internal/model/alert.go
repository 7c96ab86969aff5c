package model

// AlertLevel tags alert severity. Ordering of a scan result places all
// critical alerts first; within a level, generation order is preserved.
type AlertLevel string

const (
	AlertCritical AlertLevel = "critical"
	AlertWarning  AlertLevel = "warning"
	AlertInfo     AlertLevel = "info"
)

// Alert is a threshold breach on a monitored metric's rolling average.
// Alerts are created fresh per analysis run and never persisted by the core.
type Alert struct {
	ID                int64      `json:"id"`
	Level             AlertLevel `json:"level"`
	Category          Category   `json:"category"`
	Metric            string     `json:"metric"`
	CurrentValue      float64    `json:"current_value"`
	Threshold         float64    `json:"threshold"`
	Message           string     `json:"message"`
	RecommendedAction string     `json:"recommended_action"`
}
