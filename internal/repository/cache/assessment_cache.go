package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/safebag-backend/internal/domain"
	"github.com/safebag-backend/internal/domain/repository"
	apperrors "github.com/safebag-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

type assessmentCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAssessmentCache caches assessments under short TTLs. Read failures
// degrade to misses and write failures surface ErrCacheError; scoring
// always proceeds without the cache.
func NewAssessmentCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.AssessmentCache {
	return &assessmentCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *assessmentCache) Get(ctx context.Context, key string) (*domain.SafetyAssessment, error) {
	data, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		c.logger.Warn("Assessment cache read failed", zap.String("key", key), zap.Error(err))
		return nil, nil
	}

	var assessment domain.SafetyAssessment
	if err := json.Unmarshal([]byte(data), &assessment); err != nil {
		c.logger.Warn("Assessment cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, nil
	}

	return &assessment, nil
}

func (c *assessmentCache) Set(ctx context.Context, key string, assessment *domain.SafetyAssessment) error {
	data, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	if err := c.client.Set(ctx, c.redisKey(key), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Assessment cache write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrCacheError, err)
	}
	return nil
}

func (c *assessmentCache) redisKey(key string) string {
	return "assessment:" + key
}
