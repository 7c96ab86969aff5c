package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"vitalis.app/pulse/common/llm"
	"vitalis.app/pulse/internal/analysis"
	"vitalis.app/pulse/internal/model"
	"vitalis.app/pulse/internal/service"
)

var _ = Describe("InsightGenerator", func() {
	const subjectID = "subject-1"

	var (
		ctx      context.Context
		client   *mockLLMClient
		cache    *mockInsightCache
		fallback model.Briefing
		input    analysis.BriefingInput
	)

	validResponse := `{
		"priority": "Recovery",
		"focus": "Active Recovery",
		"energy_prediction": 6,
		"risk_alert": "",
		"recommendations": [
			{"priority": "High", "category": "recovery", "action": "Take a rest day", "reasoning": "HRV is trending down", "timing": "today"},
			{"priority": "Low", "category": "hydration", "action": "Drink 2L of water", "reasoning": "Baseline habit", "timing": ""}
		]
	}`

	BeforeEach(func() {
		ctx = context.Background()
		client = &mockLLMClient{}
		cache = &mockInsightCache{}
		fallback = model.Briefing{
			Priority:         "Recovery",
			Focus:            "Maintenance",
			EnergyPrediction: 7,
			Source:           model.SourceRules,
		}
		input = analysis.BriefingInput{MaxRecommendations: 4}
	})

	newGenerator := func() service.InsightGenerator {
		return service.NewInsightGenerator(client, cache, 6*time.Hour, 4)
	}

	It("returns the refined briefing and caches it on success", func() {
		var putPayload []byte
		var putTTL time.Duration
		cache.putFn = func(ctx context.Context, subjectID string, analysisType model.AnalysisType, payload []byte, ttl time.Duration) error {
			putPayload, putTTL = payload, ttl
			return nil
		}
		client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
			Expect(req.SchemaName).To(Equal("daily_briefing"))
			Expect(req.Schema).NotTo(BeNil())
			Expect(json.Unmarshal([]byte(validResponse), result)).To(Succeed())
			return &llm.Response{}, nil
		}

		briefing := newGenerator().EnrichBriefing(ctx, subjectID, fallback, input)

		Expect(briefing.Source).To(Equal(model.SourceLLM))
		Expect(briefing.Focus).To(Equal("Active Recovery"))
		Expect(briefing.EnergyPrediction).To(Equal(6))
		Expect(briefing.RiskAlert).To(BeNil())
		Expect(briefing.Recommendations).To(HaveLen(2))
		Expect(briefing.Recommendations[0].Timing).To(HaveValue(Equal("today")))
		Expect(briefing.Recommendations[1].Timing).To(BeNil())

		Expect(putTTL).To(Equal(6 * time.Hour))
		var cached model.Briefing
		Expect(json.Unmarshal(putPayload, &cached)).To(Succeed())
		Expect(cached.Focus).To(Equal("Active Recovery"))
	})

	It("falls back unchanged when the gateway errors", func() {
		client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
			return nil, errors.New("upstream timeout")
		}

		briefing := newGenerator().EnrichBriefing(ctx, subjectID, fallback, input)

		Expect(briefing).To(Equal(fallback))
		Expect(briefing.Source).To(Equal(model.SourceRules))
	})

	DescribeTable("falls back on responses that violate the output contract",
		func(response string) {
			client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
				Expect(json.Unmarshal([]byte(response), result)).To(Succeed())
				return &llm.Response{}, nil
			}

			briefing := newGenerator().EnrichBriefing(ctx, subjectID, fallback, input)
			Expect(briefing).To(Equal(fallback))
		},
		Entry("empty priority", `{"priority": "", "focus": "Rest", "energy_prediction": 5, "risk_alert": "", "recommendations": [{"priority": "Low", "category": "recovery", "action": "Rest", "reasoning": "", "timing": ""}]}`),
		Entry("energy out of range", `{"priority": "Recovery", "focus": "Rest", "energy_prediction": 11, "risk_alert": "", "recommendations": [{"priority": "Low", "category": "recovery", "action": "Rest", "reasoning": "", "timing": ""}]}`),
		Entry("no recommendations", `{"priority": "Recovery", "focus": "Rest", "energy_prediction": 5, "risk_alert": "", "recommendations": []}`),
		Entry("unknown recommendation priority", `{"priority": "Recovery", "focus": "Rest", "energy_prediction": 5, "risk_alert": "", "recommendations": [{"priority": "Urgent", "category": "recovery", "action": "Rest", "reasoning": "", "timing": ""}]}`),
		Entry("blank action", `{"priority": "Recovery", "focus": "Rest", "energy_prediction": 5, "risk_alert": "", "recommendations": [{"priority": "Low", "category": "recovery", "action": "   ", "reasoning": "", "timing": ""}]}`),
	)

	It("serves a valid cached briefing without calling the gateway", func() {
		cachedBriefing := model.Briefing{
			Priority:         "Stress Management",
			Focus:            "Autonomic Recovery",
			EnergyPrediction: 5,
			Source:           model.SourceLLM,
		}
		payload, err := json.Marshal(cachedBriefing)
		Expect(err).NotTo(HaveOccurred())

		cache.getFn = func(ctx context.Context, subjectID string, analysisType model.AnalysisType) (*model.CachedInsight, error) {
			Expect(analysisType).To(Equal(model.AnalysisBriefing))
			return &model.CachedInsight{
				Payload:     payload,
				GeneratedAt: time.Now().Add(-time.Hour),
				ExpiresAt:   time.Now().Add(time.Hour),
			}, nil
		}
		client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
			Fail("gateway must not be called on a cache hit")
			return nil, nil
		}

		briefing := newGenerator().EnrichBriefing(ctx, subjectID, fallback, input)

		Expect(briefing.Focus).To(Equal("Autonomic Recovery"))
		Expect(briefing.Source).To(Equal(model.SourceLLM))
	})

	It("regenerates when the cache read fails", func() {
		cache.getFn = func(ctx context.Context, subjectID string, analysisType model.AnalysisType) (*model.CachedInsight, error) {
			return nil, errors.New("connection refused")
		}
		called := false
		client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
			called = true
			Expect(json.Unmarshal([]byte(validResponse), result)).To(Succeed())
			return &llm.Response{}, nil
		}

		briefing := newGenerator().EnrichBriefing(ctx, subjectID, fallback, input)

		Expect(called).To(BeTrue())
		Expect(briefing.Source).To(Equal(model.SourceLLM))
	})

	It("discards an undecodable cached payload and regenerates", func() {
		cache.getFn = func(ctx context.Context, subjectID string, analysisType model.AnalysisType) (*model.CachedInsight, error) {
			return &model.CachedInsight{Payload: []byte("not json")}, nil
		}
		client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
			Expect(json.Unmarshal([]byte(validResponse), result)).To(Succeed())
			return &llm.Response{}, nil
		}

		briefing := newGenerator().EnrichBriefing(ctx, subjectID, fallback, input)
		Expect(briefing.Source).To(Equal(model.SourceLLM))
	})

	It("keeps the briefing even when the cache write fails", func() {
		cache.putFn = func(ctx context.Context, subjectID string, analysisType model.AnalysisType, payload []byte, ttl time.Duration) error {
			return errors.New("connection refused")
		}
		client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
			Expect(json.Unmarshal([]byte(validResponse), result)).To(Succeed())
			return &llm.Response{}, nil
		}

		briefing := newGenerator().EnrichBriefing(ctx, subjectID, fallback, input)
		Expect(briefing.Source).To(Equal(model.SourceLLM))
	})

	It("truncates the recommendation list to the configured cap", func() {
		long := `{
			"priority": "Recovery",
			"focus": "Rest",
			"energy_prediction": 5,
			"risk_alert": "",
			"recommendations": [
				{"priority": "Low", "category": "a", "action": "one", "reasoning": "", "timing": ""},
				{"priority": "Low", "category": "b", "action": "two", "reasoning": "", "timing": ""},
				{"priority": "Low", "category": "c", "action": "three", "reasoning": "", "timing": ""}
			]
		}`
		client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
			Expect(json.Unmarshal([]byte(long), result)).To(Succeed())
			return &llm.Response{}, nil
		}

		generator := service.NewInsightGenerator(client, cache, 6*time.Hour, 2)
		briefing := generator.EnrichBriefing(ctx, subjectID, fallback, input)

		Expect(briefing.Recommendations).To(HaveLen(2))
		Expect(briefing.Recommendations[1].Category).To(Equal("b"))
	})
})
