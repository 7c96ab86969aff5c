package service

import (
	"vitalis.app/pulse/common/llm"
	"vitalis.app/pulse/core/config"
	"vitalis.app/pulse/internal/cache"
	"vitalis.app/pulse/internal/store"
)

type Services struct {
	samples      store.SampleStore
	insightLLM   llm.Client // nil when no generative backend is configured
	insightCache cache.InsightCache
	analysisCfg  config.AnalysisConfig
}

type ServicesConfig struct {
	Samples      store.SampleStore
	InsightLLM   llm.Client
	InsightCache cache.InsightCache
	Analysis     config.AnalysisConfig
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		samples:      cfg.Samples,
		insightLLM:   cfg.InsightLLM,
		insightCache: cfg.InsightCache,
		analysisCfg:  cfg.Analysis,
	}
}

func (s *Services) Analysis() AnalysisService {
	return NewAnalysisService(s.samples, s.insight(), s.analysisCfg)
}

func (s *Services) insight() InsightGenerator {
	if s.insightLLM == nil || s.insightCache == nil {
		return nil
	}
	return NewInsightGenerator(s.insightLLM, s.insightCache, s.analysisCfg.InsightCacheTTL, s.analysisCfg.MaxRecommendations)
}
