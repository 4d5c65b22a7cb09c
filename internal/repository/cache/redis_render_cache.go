// Package cache holds the shared render cache backends.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portfolio-content-be/internal/entity"
	"portfolio-content-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const renderKeyPrefix = "render:"

// RedisRenderCache keeps rendered documents in Redis so every instance
// shares one copy.
type RedisRenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRenderCache(client *redis.Client, ttl time.Duration) *RedisRenderCache {
	return &RedisRenderCache{client: client, ttl: ttl}
}

var _ contract.RenderCache = (*RedisRenderCache)(nil)

func (c *RedisRenderCache) key(contentId uuid.UUID) string {
	return renderKeyPrefix + contentId.String()
}

func (c *RedisRenderCache) Get(ctx context.Context, contentId uuid.UUID, version int64) (*entity.RenderedContent, bool, error) {
	raw, err := c.client.Get(ctx, c.key(contentId)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get rendered content: %w", err)
	}

	var rendered entity.RenderedContent
	if err := json.Unmarshal(raw, &rendered); err != nil {
		// Unreadable entries are treated as a miss and overwritten on Set.
		return nil, false, nil
	}
	if rendered.Version != version {
		return nil, false, nil
	}
	return &rendered, true, nil
}

func (c *RedisRenderCache) Set(ctx context.Context, rendered *entity.RenderedContent) error {
	raw, err := json.Marshal(rendered)
	if err != nil {
		return fmt.Errorf("marshal rendered content: %w", err)
	}
	if err := c.client.Set(ctx, c.key(rendered.ContentId), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("save rendered content: %w", err)
	}
	return nil
}

func (c *RedisRenderCache) Delete(ctx context.Context, contentId uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(contentId)).Err(); err != nil {
		return fmt.Errorf("delete rendered content: %w", err)
	}
	return nil
}
