package dto

import (
	"encoding/json"
	"time"

	"portfolio-content-be/pkg/lexical"

	"github.com/google/uuid"
)

type CreateContentRequest struct {
	Kind      string          `json:"kind" validate:"required,oneof=post project page"`
	Slug      string          `json:"slug" validate:"omitempty,slug,max=255"`
	Title     string          `json:"title" validate:"required,max=255"`
	Excerpt   string          `json:"excerpt"`
	Body      json.RawMessage `json:"body" validate:"required"`
	Published bool            `json:"published"`
}

type CreateContentResponse struct {
	Id   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
}

type UpdateContentRequest struct {
	Id        uuid.UUID       `json:"-"`
	Slug      string          `json:"slug" validate:"omitempty,slug,max=255"`
	Title     string          `json:"title" validate:"required,max=255"`
	Excerpt   string          `json:"excerpt"`
	Body      json.RawMessage `json:"body" validate:"required"`
	Published bool            `json:"published"`
}

type UpdateContentResponse struct {
	Id   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
}

type ListContentRequest struct {
	Kind  string `validate:"required,oneof=post project page"`
	Page  int    `validate:"min=1"`
	Limit int    `validate:"min=1,max=100"`
}

type ContentSummaryResponse struct {
	Id          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	PublishedAt *time.Time `json:"published_at"`
}

type ListContentResponse struct {
	Items []*ContentSummaryResponse `json:"items"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
	Total int64                     `json:"total"`
}

type ShowContentResponse struct {
	ContentSummaryResponse
	HTML      string             `json:"html"`
	Toc       []lexical.TocEntry `json:"toc"`
	UpdatedAt *time.Time         `json:"updated_at"`
}

type MarkdownContentResponse struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

// PublishRenderContentMessage is the pre-render job put on the in-process bus.
type PublishRenderContentMessage struct {
	ContentId uuid.UUID `json:"content_id"`
}
