package memory

import (
	"context"
	"time"

	"portfolio-content-be/internal/entity"
	"portfolio-content-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type RenderCache struct {
	cache *cache.Cache
}

func NewRenderCache(ttl time.Duration) *RenderCache {
	// Expired items are purged every 10 minutes
	return &RenderCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

var _ contract.RenderCache = (*RenderCache)(nil)

func (r *RenderCache) Get(_ context.Context, contentId uuid.UUID, version int64) (*entity.RenderedContent, bool, error) {
	x, found := r.cache.Get(contentId.String())
	if !found {
		return nil, false, nil
	}
	rendered := x.(*entity.RenderedContent)
	if rendered.Version != version {
		return nil, false, nil
	}
	return rendered, true, nil
}

func (r *RenderCache) Set(_ context.Context, rendered *entity.RenderedContent) error {
	r.cache.Set(rendered.ContentId.String(), rendered, cache.DefaultExpiration)
	return nil
}

func (r *RenderCache) Delete(_ context.Context, contentId uuid.UUID) error {
	r.cache.Delete(contentId.String())
	return nil
}

// Flush drops every entry, used when another instance reports a change
// that cannot be pinned to one id.
func (r *RenderCache) Flush() {
	r.cache.Flush()
}

// Evict is Delete under the name cache invalidation listeners expect.
func (r *RenderCache) Evict(ctx context.Context, contentId uuid.UUID) error {
	return r.Delete(ctx, contentId)
}
