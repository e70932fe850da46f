package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/barkingside-hub/autoconfirm/pkg/core/rules"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
)

const (
	candidateKeyPrefix = "autoconfirm:rules:candidates:"
	generationKey      = "autoconfirm:rules:generation"
)

// CachedRuleStore decorates a RuleStore with a Redis snapshot cache for the
// evaluation-time candidate read. Candidate sets are cached as JSON per
// (shift type, location) scope; every rule write bumps a generation counter
// so all cached snapshots from before the write stop being read, and the TTL
// reaps the leftovers.
//
// The cache is best-effort: a Redis failure falls through to the inner store
// and is logged, never surfaced as a retrieval error.
type CachedRuleStore struct {
	inner  db.RuleStore
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a caching decorator around inner with the given snapshot TTL
func New(inner db.RuleStore, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRuleStore {
	return &CachedRuleStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// CandidateRules serves the candidate snapshot from Redis when present,
// falling back to the inner store and populating the cache on a miss.
func (c *CachedRuleStore) CandidateRules(ctx context.Context, shiftTypeID, location string) ([]rules.AutoAcceptRule, error) {
	key, keyErr := c.candidateKey(ctx, shiftTypeID, location)
	if keyErr == nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			var cached []rules.AutoAcceptRule
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
			c.logger.Warn("discarding undecodable rule snapshot", zap.String("key", key), zap.Error(err))
		} else if err != redis.Nil {
			c.logger.Warn("rule snapshot read failed", zap.String("key", key), zap.Error(err))
		}
	}

	candidates, err := c.inner.CandidateRules(ctx, shiftTypeID, location)
	if err != nil {
		return nil, err
	}

	if keyErr == nil {
		payload, err := json.Marshal(candidates)
		if err == nil {
			if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
				c.logger.Warn("rule snapshot write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return candidates, nil
}

// ListRules delegates to the inner store; the admin listing is not cached
func (c *CachedRuleStore) ListRules(ctx context.Context) ([]rules.AutoAcceptRule, error) {
	return c.inner.ListRules(ctx)
}

// GetRule delegates to the inner store
func (c *CachedRuleStore) GetRule(ctx context.Context, id string) (rules.AutoAcceptRule, error) {
	return c.inner.GetRule(ctx, id)
}

// InsertRule writes through and invalidates all cached snapshots
func (c *CachedRuleStore) InsertRule(ctx context.Context, rule *rules.AutoAcceptRule) error {
	if err := c.inner.InsertRule(ctx, rule); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// UpdateRule writes through and invalidates all cached snapshots
func (c *CachedRuleStore) UpdateRule(ctx context.Context, rule *rules.AutoAcceptRule) error {
	if err := c.inner.UpdateRule(ctx, rule); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// DeleteRule writes through and invalidates all cached snapshots
func (c *CachedRuleStore) DeleteRule(ctx context.Context, id string) error {
	if err := c.inner.DeleteRule(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// candidateKey builds a generation-scoped cache key so invalidation never
// needs to enumerate cached scopes
func (c *CachedRuleStore) candidateKey(ctx context.Context, shiftTypeID, location string) (string, error) {
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("%s%d:%s:%s", candidateKeyPrefix, generation, shiftTypeID, location), nil
}

func (c *CachedRuleStore) invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warn("rule cache invalidation failed", zap.Error(err))
	}
}
