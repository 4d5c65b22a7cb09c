package cache

import (
	"context"

	"portfolio-content-be/internal/entity"
	"portfolio-content-be/internal/repository/contract"

	"github.com/google/uuid"
)

// TieredRenderCache reads through a process-local cache before the shared one.
// Shared-cache errors degrade to a miss on reads; the caller renders again.
type TieredRenderCache struct {
	local  contract.RenderCache
	shared contract.RenderCache
}

func NewTieredRenderCache(local, shared contract.RenderCache) *TieredRenderCache {
	return &TieredRenderCache{local: local, shared: shared}
}

var _ contract.RenderCache = (*TieredRenderCache)(nil)

func (c *TieredRenderCache) Get(ctx context.Context, contentId uuid.UUID, version int64) (*entity.RenderedContent, bool, error) {
	if rendered, ok, err := c.local.Get(ctx, contentId, version); err == nil && ok {
		return rendered, true, nil
	}

	rendered, ok, err := c.shared.Get(ctx, contentId, version)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = c.local.Set(ctx, rendered)
	return rendered, true, nil
}

func (c *TieredRenderCache) Set(ctx context.Context, rendered *entity.RenderedContent) error {
	if err := c.local.Set(ctx, rendered); err != nil {
		return err
	}
	return c.shared.Set(ctx, rendered)
}

func (c *TieredRenderCache) Delete(ctx context.Context, contentId uuid.UUID) error {
	if err := c.local.Delete(ctx, contentId); err != nil {
		return err
	}
	return c.shared.Delete(ctx, contentId)
}

// Evict drops only the local copy. Peers call it when another instance
// announces a change; the shared copy is already handled by the writer.
func (c *TieredRenderCache) Evict(ctx context.Context, contentId uuid.UUID) error {
	return c.local.Delete(ctx, contentId)
}
