package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vitalis.app/pulse/common/llm"
	"vitalis.app/pulse/internal/analysis"
	"vitalis.app/pulse/internal/cache"
	"vitalis.app/pulse/internal/model"
)

// InsightGenerator enriches a rule-based briefing through the generative
// insight service. It never fails: any gateway, schema or validation problem
// returns the rule-based input unchanged, marked with its "rules" source.
type InsightGenerator interface {
	EnrichBriefing(ctx context.Context, subjectID string, fallback model.Briefing, input analysis.BriefingInput) model.Briefing
}

// briefingResponse is the strict schema the gateway must satisfy. Responses
// are schema-validated by the LLM layer and re-validated here before use;
// free-text extraction is deliberately not attempted.
type briefingResponse struct {
	Priority         string               `json:"priority" jsonschema_description:"Overall priority area, e.g. Recovery or Stress Management"`
	Focus            string               `json:"focus" jsonschema_description:"Single focus theme for the day"`
	EnergyPrediction int                  `json:"energy_prediction" jsonschema_description:"Predicted energy on a 1-10 scale"`
	RiskAlert        string               `json:"risk_alert" jsonschema_description:"Risk callout, empty when none"`
	Recommendations  []recommendationItem `json:"recommendations" jsonschema_description:"Ordered action list, most relevant first"`
}

type recommendationItem struct {
	Priority  string `json:"priority" jsonschema:"enum=Critical,enum=High,enum=Medium,enum=Low" jsonschema_description:"Urgency tier"`
	Category  string `json:"category" jsonschema_description:"Lifestyle category, e.g. recovery, stress, activity, metabolic, hydration"`
	Action    string `json:"action" jsonschema_description:"Concrete action for today"`
	Reasoning string `json:"reasoning" jsonschema_description:"Why this action, grounded in the provided aggregates"`
	Timing    string `json:"timing" jsonschema_description:"Suggested timing, empty when unspecified"`
}

var briefingSchema = llm.GenerateSchema[briefingResponse]()

type insightGenerator struct {
	llm      llm.Client
	cache    cache.InsightCache
	cacheTTL time.Duration
	maxRecs  int
}

func NewInsightGenerator(client llm.Client, insightCache cache.InsightCache, cacheTTL time.Duration, maxRecommendations int) InsightGenerator {
	return &insightGenerator{
		llm:      client,
		cache:    insightCache,
		cacheTTL: cacheTTL,
		maxRecs:  maxRecommendations,
	}
}

const briefingSystemPrompt = `You are a physiology coach writing a daily briefing.
You are given yesterday's biomarker aggregates, a short HRV trend and a
rule-generated draft briefing. Refine the draft: keep its priority and focus
unless the data clearly supports a change, keep recommendations concrete and
grounded in the numbers provided, and never invent measurements.`

func (g *insightGenerator) EnrichBriefing(ctx context.Context, subjectID string, fallback model.Briefing, input analysis.BriefingInput) model.Briefing {
	// A valid cached insight short-circuits regeneration entirely.
	if cached := g.fromCache(ctx, subjectID); cached != nil {
		return *cached
	}

	var resp briefingResponse
	_, err := g.llm.Chat(ctx, llm.Request{
		SystemPrompt: briefingSystemPrompt,
		UserPrompt:   buildBriefingPrompt(fallback, input),
		SchemaName:   "daily_briefing",
		Schema:       briefingSchema,
		Temperature:  llm.Temp(0.3),
	}, &resp)
	if err != nil {
		slog.WarnContext(ctx, "insight generation failed, using rule-based briefing", "error", err)
		return fallback
	}

	briefing, ok := g.toBriefing(resp)
	if !ok {
		slog.WarnContext(ctx, "insight response failed validation, using rule-based briefing")
		return fallback
	}

	g.store(ctx, subjectID, briefing)
	return briefing
}

func (g *insightGenerator) fromCache(ctx context.Context, subjectID string) *model.Briefing {
	entry, err := g.cache.Get(ctx, subjectID, model.AnalysisBriefing)
	if err != nil {
		slog.WarnContext(ctx, "insight cache read failed", "error", err)
		return nil
	}
	if entry == nil {
		return nil
	}

	var briefing model.Briefing
	if err := json.Unmarshal(entry.Payload, &briefing); err != nil {
		slog.WarnContext(ctx, "discarding undecodable cached briefing", "error", err)
		return nil
	}
	return &briefing
}

func (g *insightGenerator) store(ctx context.Context, subjectID string, briefing model.Briefing) {
	payload, err := json.Marshal(briefing)
	if err != nil {
		slog.WarnContext(ctx, "encoding briefing for cache failed", "error", err)
		return
	}
	// Cache writes are best-effort; the result is already in hand.
	if err := g.cache.Put(ctx, subjectID, model.AnalysisBriefing, payload, g.cacheTTL); err != nil {
		slog.WarnContext(ctx, "insight cache write failed", "error", err)
	}
}

// toBriefing validates the gateway response against the output contract.
// Anything out of range rejects the whole response.
func (g *insightGenerator) toBriefing(resp briefingResponse) (model.Briefing, bool) {
	if strings.TrimSpace(resp.Priority) == "" || strings.TrimSpace(resp.Focus) == "" {
		return model.Briefing{}, false
	}
	if resp.EnergyPrediction < 1 || resp.EnergyPrediction > 10 {
		return model.Briefing{}, false
	}
	if len(resp.Recommendations) == 0 {
		return model.Briefing{}, false
	}

	briefing := model.Briefing{
		Priority:         resp.Priority,
		Focus:            resp.Focus,
		EnergyPrediction: resp.EnergyPrediction,
		Source:           model.SourceLLM,
	}
	if resp.RiskAlert != "" {
		briefing.RiskAlert = &resp.RiskAlert
	}

	for _, item := range resp.Recommendations {
		priority := model.RecommendationPriority(item.Priority)
		switch priority {
		case model.PriorityCritical, model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		default:
			return model.Briefing{}, false
		}
		if strings.TrimSpace(item.Action) == "" {
			return model.Briefing{}, false
		}

		rec := model.Recommendation{
			Priority:  priority,
			Category:  item.Category,
			Action:    item.Action,
			Reasoning: item.Reasoning,
		}
		if item.Timing != "" {
			timing := item.Timing
			rec.Timing = &timing
		}
		briefing.Recommendations = append(briefing.Recommendations, rec)
	}

	// Same cap as the rule engine, same generation-order truncation.
	limit := g.maxRecs
	if limit <= 0 {
		limit = 4
	}
	if len(briefing.Recommendations) > limit {
		briefing.Recommendations = briefing.Recommendations[:limit]
	}

	return briefing, true
}

func buildBriefingPrompt(fallback model.Briefing, input analysis.BriefingInput) string {
	var b strings.Builder

	b.WriteString("Yesterday's aggregates:\n")
	writeMetric(&b, "sleep efficiency (%)", input.SleepEfficiency)
	writeMetric(&b, "sleep duration (h)", input.SleepDuration)
	writeMetric(&b, "steps", input.Steps)
	writeMetric(&b, "latest HRV (ms)", input.LatestHRV)
	writeMetric(&b, "7-day HRV trend (ms)", input.HRVTrend)

	draft, _ := json.Marshal(fallback)
	fmt.Fprintf(&b, "\nRule-generated draft briefing:\n%s\n", draft)

	return b.String()
}

func writeMetric(b *strings.Builder, label string, v *float64) {
	if v == nil {
		fmt.Fprintf(b, "- %s: no data\n", label)
		return
	}
	fmt.Fprintf(b, "- %s: %.1f\n", label, *v)
}
