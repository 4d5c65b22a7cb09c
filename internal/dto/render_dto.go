package dto

import (
	"encoding/json"

	"portfolio-content-be/pkg/lexical"
)

type PreviewRequest struct {
	Content json.RawMessage `json:"content" validate:"required"`
}

type RenderResponse struct {
	HTML string             `json:"html"`
	Toc  []lexical.TocEntry `json:"toc"`
}

type TocFromMarkupRequest struct {
	HTML string `json:"html" validate:"required"`
}

type TocResponse struct {
	Toc []lexical.TocEntry `json:"toc"`
}
