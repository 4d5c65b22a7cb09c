package entity

import (
	"time"

	"portfolio-content-be/pkg/lexical"

	"github.com/google/uuid"
)

type ContentKind string

const (
	ContentKindPost    ContentKind = "post"
	ContentKindProject ContentKind = "project"
	ContentKindPage    ContentKind = "page"
)

func (k ContentKind) Valid() bool {
	switch k {
	case ContentKindPost, ContentKindProject, ContentKindPage:
		return true
	}
	return false
}

type Content struct {
	Id          uuid.UUID
	Kind        ContentKind
	Slug        string
	Title       string
	Excerpt     string
	Body        []byte // Lexical editor state as stored
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

// Version identifies one revision of the body for render caching.
func (c *Content) Version() int64 {
	if c.UpdatedAt != nil {
		return c.UpdatedAt.UnixNano()
	}
	return c.CreatedAt.UnixNano()
}

// RenderedContent is the cached output of one render pass.
type RenderedContent struct {
	ContentId  uuid.UUID          `json:"content_id"`
	Version    int64              `json:"version"`
	HTML       string             `json:"html"`
	Toc        []lexical.TocEntry `json:"toc"`
	RenderedAt time.Time          `json:"rendered_at"`
}
