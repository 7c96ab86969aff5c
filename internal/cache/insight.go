package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"vitalis.app/pulse/internal/model"
)

// InsightCache holds one generated insight per (subject, analysis type).
// Get returns nil on a miss; a present but expired entry is a miss. Put is
// an insert-or-replace, and concurrent writers for a key may race:
// last-write-wins is acceptable because entries are idempotent
// recomputations of the same analysis.
type InsightCache interface {
	Get(ctx context.Context, subjectID string, analysisType model.AnalysisType) (*model.CachedInsight, error)
	Put(ctx context.Context, subjectID string, analysisType model.AnalysisType, payload []byte, ttl time.Duration) error
}

type redisCache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, logger *slog.Logger) InsightCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisCache{client: client, logger: logger}
}

func insightKey(subjectID string, analysisType model.AnalysisType) string {
	return fmt.Sprintf("insight:%s:%s", subjectID, analysisType)
}

func (c *redisCache) Get(ctx context.Context, subjectID string, analysisType model.AnalysisType) (*model.CachedInsight, error) {
	data, err := c.client.Get(ctx, insightKey(subjectID, analysisType)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("reading insight cache: %w", err)
	}

	var entry model.CachedInsight
	if err := json.Unmarshal(data, &entry); err != nil {
		// A corrupt entry is a miss, not a failure; it will be overwritten.
		c.logger.WarnContext(ctx, "discarding corrupt insight cache entry", "subject_id", subjectID, "error", err)
		return nil, nil
	}

	// Redis expiry normally handles this, but the envelope's own window is
	// authoritative: expired-but-present is a miss.
	if entry.Expired(time.Now()) {
		return nil, nil
	}

	return &entry, nil
}

func (c *redisCache) Put(ctx context.Context, subjectID string, analysisType model.AnalysisType, payload []byte, ttl time.Duration) error {
	now := time.Now()
	entry := model.CachedInsight{
		Payload:     payload,
		GeneratedAt: now,
		ExpiresAt:   now.Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding insight cache entry: %w", err)
	}

	if err := c.client.Set(ctx, insightKey(subjectID, analysisType), data, ttl).Err(); err != nil {
		return fmt.Errorf("writing insight cache: %w", err)
	}

	c.logger.DebugContext(ctx, "cached insight", "subject_id", subjectID, "analysis_type", string(analysisType), "ttl", ttl.String())
	return nil
}
