package memory

import (
	"context"
	"testing"
	"time"

	"portfolio-content-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCache(t *testing.T) {
	ctx := context.Background()
	c := NewRenderCache(time.Minute)
	id := uuid.New()

	_, ok, err := c.Get(ctx, id, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, &entity.RenderedContent{ContentId: id, Version: 1, HTML: "<p>a</p>"}))

	got, ok, err := c.Get(ctx, id, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<p>a</p>", got.HTML)

	_, ok, _ = c.Get(ctx, id, 2)
	assert.False(t, ok, "stale version must miss")

	require.NoError(t, c.Delete(ctx, id))
	_, ok, _ = c.Get(ctx, id, 1)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, &entity.RenderedContent{ContentId: id, Version: 1}))
	c.Flush()
	_, ok, _ = c.Get(ctx, id, 1)
	assert.False(t, ok)
}
