package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"vitalis.app/pulse/common/logger"
	"vitalis.app/pulse/core/config"
	"vitalis.app/pulse/internal/analysis"
	"vitalis.app/pulse/internal/model"
	"vitalis.app/pulse/internal/store"
)

// ErrInvalidSubject and ErrNoUsableData are the fatal request errors: the
// core returns them instead of partially computing. Everything else degrades.
var (
	ErrInvalidSubject = errors.New("subject id is required")
	ErrNoUsableData   = errors.New("no usable biomarker source for subject")
)

// DailyReport bundles the alert scan with the daily briefing; the two are
// produced together from the same fetched window.
type DailyReport struct {
	Alerts   []model.Alert  `json:"alerts"`
	Briefing model.Briefing `json:"briefing"`
}

type AnalysisService interface {
	Correlations(ctx context.Context, subjectID string, days int) ([]model.CorrelationResult, error)
	Score(ctx context.Context, subjectID string, days int) (*model.HealthScore, error)
	DailyReport(ctx context.Context, subjectID string) (*DailyReport, error)
}

type analysisService struct {
	samples store.SampleStore
	insight InsightGenerator // nil when no generative backend is configured
	cfg     config.AnalysisConfig
}

func NewAnalysisService(samples store.SampleStore, insight InsightGenerator, cfg config.AnalysisConfig) AnalysisService {
	return &analysisService{samples: samples, insight: insight, cfg: cfg}
}

// sampleSet is one subject's fetched window, one slice per category.
// A category whose fetch failed is simply empty.
type sampleSet struct {
	heart    []model.MeasurementRecord
	sleep    []model.MeasurementRecord
	activity []model.MeasurementRecord
	lab      []model.MeasurementRecord
}

func (s sampleSet) empty() bool {
	return len(s.heart) == 0 && len(s.sleep) == 0 && len(s.activity) == 0 && len(s.lab) == 0
}

func (s sampleSet) byCategory(c model.Category) []model.MeasurementRecord {
	switch c {
	case model.CategoryHeart:
		return s.heart
	case model.CategorySleep:
		return s.sleep
	case model.CategoryActivity:
		return s.activity
	case model.CategoryLab:
		return s.lab
	}
	return nil
}

// fetchAll fans out the four category fetches concurrently and joins them.
// A failed fetch degrades that category to empty records rather than failing
// the batch; the failure is logged, not surfaced.
func (s *analysisService) fetchAll(ctx context.Context, subjectID string, days int) (sampleSet, error) {
	if subjectID == "" {
		return sampleSet{}, ErrInvalidSubject
	}
	if days <= 0 {
		days = 30
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	categories := []model.Category{
		model.CategoryHeart,
		model.CategorySleep,
		model.CategoryActivity,
		model.CategoryLab,
	}
	results := make([][]model.MeasurementRecord, len(categories))

	var wg sync.WaitGroup
	for i, cat := range categories {
		wg.Add(1)
		go func(i int, cat model.Category) {
			defer wg.Done()
			records, err := s.samples.ListMeasurements(ctx, subjectID, cat, from, to)
			if err != nil {
				slog.WarnContext(ctx, "category fetch failed, proceeding without it",
					"category", string(cat), "error", err)
				return
			}
			results[i] = records
		}(i, cat)
	}
	wg.Wait()

	set := sampleSet{
		heart:    results[0],
		sleep:    results[1],
		activity: results[2],
		lab:      results[3],
	}
	if set.empty() {
		return sampleSet{}, fmt.Errorf("%w: %s", ErrNoUsableData, subjectID)
	}
	return set, nil
}

func (s *analysisService) Correlations(ctx context.Context, subjectID string, days int) ([]model.CorrelationResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		SubjectID:    logger.Ptr(subjectID),
		AnalysisType: logger.Ptr("correlations"),
		WindowDays:   logger.Ptr(days),
		Component:    "pulse.service.analysis",
	})

	set, err := s.fetchAll(ctx, subjectID, days)
	if err != nil {
		return nil, err
	}

	// Below-floor pairs are omitted, not reported with placeholders.
	results := make([]model.CorrelationResult, 0, len(analysis.Pairs))
	for _, pair := range analysis.Pairs {
		aligned := analysis.Align(
			set.byCategory(pair.CategoryA), set.byCategory(pair.CategoryB),
			pair.FieldA, pair.FieldB, pair.Tolerance)
		if result := analysis.Correlate(pair, aligned); result != nil {
			results = append(results, *result)
		}
	}

	slog.InfoContext(ctx, "correlation run complete", "pairs_evaluated", len(analysis.Pairs), "results", len(results))
	return results, nil
}

func (s *analysisService) Score(ctx context.Context, subjectID string, days int) (*model.HealthScore, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		SubjectID:    logger.Ptr(subjectID),
		AnalysisType: logger.Ptr("score"),
		WindowDays:   logger.Ptr(days),
		Component:    "pulse.service.analysis",
	})

	set, err := s.fetchAll(ctx, subjectID, days)
	if err != nil {
		return nil, err
	}

	score := analysis.Score(set.heart, set.sleep, set.activity, set.lab)
	slog.InfoContext(ctx, "health score computed", "overall", score.Overall)
	return &score, nil
}

func (s *analysisService) DailyReport(ctx context.Context, subjectID string) (*DailyReport, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		SubjectID:    logger.Ptr(subjectID),
		AnalysisType: logger.Ptr("briefing"),
		Component:    "pulse.service.analysis",
	})

	set, err := s.fetchAll(ctx, subjectID, 7)
	if err != nil {
		return nil, err
	}

	alerts := analysis.ScanAlerts(set.heart, set.sleep, set.activity)

	input := analysis.BriefingInputFromRecords(set.heart, set.sleep, set.activity, s.cfg.MaxRecommendations)
	briefing := analysis.Brief(input)

	// Optional generative enrichment. Failure of any kind falls back to the
	// rule-based briefing just computed; it never fails the request.
	if s.insight != nil {
		briefing = s.insight.EnrichBriefing(ctx, subjectID, briefing, input)
	}

	slog.InfoContext(ctx, "daily report assembled",
		"alerts", len(alerts),
		"recommendations", len(briefing.Recommendations),
		"insight_source", string(briefing.Source))

	return &DailyReport{Alerts: alerts, Briefing: briefing}, nil
}
