package dto

import (
	"vitalis.app/pulse/internal/model"
	"vitalis.app/pulse/internal/service"
)

// Responses are flat JSON documents; the model types already carry the wire
// tags, so mapping is mostly a thin envelope.

type CorrelationsResponse struct {
	SubjectID    string                    `json:"subject_id"`
	WindowDays   int                       `json:"window_days"`
	Correlations []model.CorrelationResult `json:"correlations"`
}

type ScoreResponse struct {
	SubjectID  string            `json:"subject_id"`
	WindowDays int               `json:"window_days"`
	Score      model.HealthScore `json:"score"`
}

type DailyReportResponse struct {
	SubjectID string         `json:"subject_id"`
	Alerts    []model.Alert  `json:"alerts"`
	Briefing  model.Briefing `json:"briefing"`
}

func ToCorrelationsResponse(subjectID string, days int, results []model.CorrelationResult) CorrelationsResponse {
	if results == nil {
		results = []model.CorrelationResult{}
	}
	return CorrelationsResponse{SubjectID: subjectID, WindowDays: days, Correlations: results}
}

func ToScoreResponse(subjectID string, days int, score model.HealthScore) ScoreResponse {
	return ScoreResponse{SubjectID: subjectID, WindowDays: days, Score: score}
}

func ToDailyReportResponse(subjectID string, report service.DailyReport) DailyReportResponse {
	alerts := report.Alerts
	if alerts == nil {
		alerts = []model.Alert{}
	}
	return DailyReportResponse{SubjectID: subjectID, Alerts: alerts, Briefing: report.Briefing}
}
