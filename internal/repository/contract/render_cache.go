package contract

import (
	"context"

	"portfolio-content-be/internal/entity"

	"github.com/google/uuid"
)

// RenderCache stores the latest render of each content item. Get reports a
// miss when the stored version differs from the one asked for.
type RenderCache interface {
	Get(ctx context.Context, contentId uuid.UUID, version int64) (*entity.RenderedContent, bool, error)
	Set(ctx context.Context, rendered *entity.RenderedContent) error
	Delete(ctx context.Context, contentId uuid.UUID) error
}
