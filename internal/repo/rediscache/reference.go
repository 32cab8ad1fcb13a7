// Package rediscache decorates the reference repository with a Redis
// read-through cache. Lots and frameworks change rarely; a short TTL keeps
// evaluation hot paths off Postgres. Any cache failure falls back to the
// wrapped repository.
package rediscache

import (
	"context"
	"encoding/json"
	"marketplace-api/internal/entity"
	"marketplace-api/internal/repo"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const referenceKey = "marketplace:reference"

type ReferenceCache struct {
	inner  repo.Reference
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewReferenceCache(inner repo.Reference, client *redis.Client, ttl time.Duration, log *zap.Logger) *ReferenceCache {
	return &ReferenceCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (c *ReferenceCache) GetReferenceData(ctx context.Context) (*entity.ReferenceData, error) {
	cached, err := c.client.Get(ctx, referenceKey).Bytes()
	if err == nil {
		var refs entity.ReferenceData
		if err := json.Unmarshal(cached, &refs); err == nil {
			return &refs, nil
		}
		c.log.Warn("discarding unreadable reference cache entry", zap.Error(err))
	} else if err != redis.Nil {
		c.log.Warn("reference cache read failed", zap.Error(err))
	}

	refs, err := c.inner.GetReferenceData(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(refs); err == nil {
		if err := c.client.Set(ctx, referenceKey, encoded, c.ttl).Err(); err != nil {
			c.log.Warn("reference cache write failed", zap.Error(err))
		}
	}

	return refs, nil
}
