package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"portfolio-content-be/internal/dto"
	"portfolio-content-be/internal/entity"
	"portfolio-content-be/internal/metrics"
	"portfolio-content-be/internal/pkg/logger"
	"portfolio-content-be/internal/pkg/serverutils"
	"portfolio-content-be/internal/repository/contract"
	"portfolio-content-be/pkg/lexical"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type IRenderService interface {
	Render(ctx context.Context, body []byte) (*dto.RenderResponse, error)
	RenderContent(ctx context.Context, content *entity.Content) (*entity.RenderedContent, error)
	Invalidate(ctx context.Context, contentId uuid.UUID) error
	TocFromMarkup(ctx context.Context, markup string) (*dto.TocResponse, error)
}

type renderService struct {
	cache  contract.RenderCache
	policy *bluemonday.Policy // nil when sanitizing is off
	logger logger.ILogger
}

func NewRenderService(cache contract.RenderCache, sanitize bool, log logger.ILogger) IRenderService {
	s := &renderService{
		cache:  cache,
		logger: log,
	}
	if sanitize {
		s.policy = NewSanitizePolicy()
	}
	return s
}

var (
	languageClass = regexp.MustCompile(`^language-[A-Za-z0-9_+-]+$`)
	linkTarget    = regexp.MustCompile(`^_(blank|self|parent|top)$`)
)

// NewSanitizePolicy is the UGC policy widened to everything the renderer emits.
// Heading ids pass through the standard id attribute rule.
func NewSanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataAttributes()
	p.AllowAttrs("class").Matching(languageClass).OnElements("code")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	p.AllowAttrs("target").Matching(linkTarget).OnElements("a")
	p.AllowStyles("color", "background-color", "text-transform").OnElements("span")
	return p
}

func (s *renderService) Render(ctx context.Context, body []byte) (*dto.RenderResponse, error) {
	html, toc, err := s.render(body)
	if err != nil {
		return nil, err
	}
	return &dto.RenderResponse{HTML: html, Toc: toc}, nil
}

func (s *renderService) render(body []byte) (string, []lexical.TocEntry, error) {
	start := time.Now()
	defer func() { metrics.RenderDuration.Observe(time.Since(start).Seconds()) }()

	doc, err := lexical.Decode(body)
	if err != nil {
		metrics.RenderErrorsTotal.Inc()
		return "", nil, serverutils.NewBadRequest("Invalid document", err)
	}

	html := lexical.Render(doc)
	if s.policy != nil {
		html = s.policy.Sanitize(html)
	}
	return html, lexical.ExtractFromAST(doc), nil
}

// RenderContent serves the cached render for the content's current version,
// rendering and storing it on a miss. Cache failures never fail the request.
func (s *renderService) RenderContent(ctx context.Context, content *entity.Content) (*entity.RenderedContent, error) {
	version := content.Version()

	cached, ok, err := s.cache.Get(ctx, content.Id, version)
	switch {
	case err != nil:
		metrics.RenderCacheTotal.WithLabelValues("error").Inc()
		s.logger.Warn("RENDER", "Render cache read failed", map[string]interface{}{
			"content_id": content.Id.String(),
			"error":      err.Error(),
		})
	case ok:
		metrics.RenderCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.RenderCacheTotal.WithLabelValues("miss").Inc()
	}

	html, toc, err := s.render(content.Body)
	if err != nil {
		return nil, err
	}

	rendered := &entity.RenderedContent{
		ContentId:  content.Id,
		Version:    version,
		HTML:       html,
		Toc:        toc,
		RenderedAt: time.Now(),
	}
	if err := s.cache.Set(ctx, rendered); err != nil {
		s.logger.Warn("RENDER", "Render cache write failed", map[string]interface{}{
			"content_id": content.Id.String(),
			"error":      err.Error(),
		})
	}
	return rendered, nil
}

func (s *renderService) Invalidate(ctx context.Context, contentId uuid.UUID) error {
	return s.cache.Delete(ctx, contentId)
}

func (s *renderService) TocFromMarkup(ctx context.Context, markup string) (*dto.TocResponse, error) {
	toc, err := lexical.ExtractFromMarkup(strings.NewReader(markup))
	if err != nil {
		return nil, serverutils.NewBadRequest("Invalid markup", err)
	}
	return &dto.TocResponse{Toc: toc}, nil
}
