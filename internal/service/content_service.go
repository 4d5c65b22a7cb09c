package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portfolio-content-be/internal/dto"
	"portfolio-content-be/internal/entity"
	"portfolio-content-be/internal/pkg/logger"
	"portfolio-content-be/internal/pkg/serverutils"
	"portfolio-content-be/internal/repository/specification"
	"portfolio-content-be/internal/repository/unitofwork"
	"portfolio-content-be/pkg/events"
	"portfolio-content-be/pkg/lexical"

	"github.com/google/uuid"
)

type IContentService interface {
	Create(ctx context.Context, req *dto.CreateContentRequest) (*dto.CreateContentResponse, error)
	Update(ctx context.Context, req *dto.UpdateContentRequest) (*dto.UpdateContentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req *dto.ListContentRequest) (*dto.ListContentResponse, error)
	Show(ctx context.Context, kind, slug string) (*dto.ShowContentResponse, error)
	Markdown(ctx context.Context, kind, slug string) (*dto.MarkdownContentResponse, error)
}

type contentService struct {
	uowFactory       unitofwork.RepositoryFactory
	renderService    IRenderService
	publisherService IPublisherService
	eventPublisher   IContentEventPublisher
	excerptLength    int
	logger           logger.ILogger
}

func NewContentService(
	uowFactory unitofwork.RepositoryFactory,
	renderService IRenderService,
	publisherService IPublisherService,
	eventPublisher IContentEventPublisher,
	excerptLength int,
	log logger.ILogger,
) IContentService {
	return &contentService{
		uowFactory:       uowFactory,
		renderService:    renderService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		excerptLength:    excerptLength,
		logger:           log,
	}
}

var errContentNotFound = serverutils.NewNotFound("Content not found")

func (c *contentService) Create(ctx context.Context, req *dto.CreateContentRequest) (*dto.CreateContentResponse, error) {
	kind := entity.ContentKind(req.Kind)
	if !kind.Valid() {
		return nil, serverutils.NewBadRequest(fmt.Sprintf("Unknown content kind %q", req.Kind), nil)
	}

	doc, err := lexical.Decode(req.Body)
	if err != nil {
		return nil, serverutils.NewBadRequest("Invalid document", err)
	}

	slug := req.Slug
	if slug == "" {
		slug = lexical.Slugify(req.Title)
	}

	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = lexical.Excerpt(doc, c.excerptLength)
	}

	now := time.Now()
	content := entity.Content{
		Id:        uuid.New(),
		Kind:      kind,
		Slug:      slug,
		Title:     req.Title,
		Excerpt:   excerpt,
		Body:      req.Body,
		Published: req.Published,
		CreatedAt: now,
	}
	if content.Published {
		content.PublishedAt = &now
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := c.ensureSlugFree(ctx, uow, kind, slug, uuid.Nil); err != nil {
		return nil, err
	}
	if err := uow.ContentRepository().Create(ctx, &content); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.enqueueRender(ctx, content.Id)
	if content.Published {
		c.eventPublisher.PublishContentEvent(ctx, events.ContentPublished, &content)
	}

	return &dto.CreateContentResponse{
		Id:   content.Id,
		Slug: content.Slug,
	}, nil
}

func (c *contentService) Update(ctx context.Context, req *dto.UpdateContentRequest) (*dto.UpdateContentResponse, error) {
	doc, err := lexical.Decode(req.Body)
	if err != nil {
		return nil, serverutils.NewBadRequest("Invalid document", err)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	content, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, errContentNotFound
	}

	if req.Slug != "" && req.Slug != content.Slug {
		if err := c.ensureSlugFree(ctx, uow, content.Kind, req.Slug, content.Id); err != nil {
			return nil, err
		}
		content.Slug = req.Slug
	}

	wasPublished := content.Published
	now := time.Now()

	content.Title = req.Title
	content.Body = req.Body
	content.Excerpt = req.Excerpt
	if content.Excerpt == "" {
		content.Excerpt = lexical.Excerpt(doc, c.excerptLength)
	}
	content.Published = req.Published
	switch {
	case req.Published && !wasPublished:
		content.PublishedAt = &now
	case !req.Published:
		content.PublishedAt = nil
	}
	content.UpdatedAt = &now

	if err := uow.ContentRepository().Update(ctx, content); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.invalidate(ctx, content.Id)
	c.enqueueRender(ctx, content.Id)
	switch {
	case content.Published && !wasPublished:
		c.eventPublisher.PublishContentEvent(ctx, events.ContentPublished, content)
	case content.Published || wasPublished:
		c.eventPublisher.PublishContentEvent(ctx, events.ContentUpdated, content)
	}

	return &dto.UpdateContentResponse{
		Id:   content.Id,
		Slug: content.Slug,
	}, nil
}

func (c *contentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	content, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if content == nil {
		return errContentNotFound
	}

	if err := uow.ContentRepository().Delete(ctx, id); err != nil {
		return err
	}

	c.invalidate(ctx, id)
	c.eventPublisher.PublishContentEvent(ctx, events.ContentDeleted, content)
	return nil
}

func (c *contentService) List(ctx context.Context, req *dto.ListContentRequest) (*dto.ListContentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	filters := []specification.Specification{
		specification.ByKind{Kind: req.Kind},
		specification.Published{},
	}

	total, err := uow.ContentRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	contents, err := uow.ContentRepository().FindAll(ctx, append(filters,
		specification.NewestPublished{},
		specification.PageOf(req.Page, req.Limit),
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ContentSummaryResponse, 0, len(contents))
	for _, content := range contents {
		items = append(items, toSummary(content))
	}

	return &dto.ListContentResponse{
		Items: items,
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	}, nil
}

func (c *contentService) Show(ctx context.Context, kind, slug string) (*dto.ShowContentResponse, error) {
	content, err := c.findPublished(ctx, kind, slug)
	if err != nil {
		return nil, err
	}

	rendered, err := c.renderService.RenderContent(ctx, content)
	if err != nil {
		return nil, err
	}

	return &dto.ShowContentResponse{
		ContentSummaryResponse: *toSummary(content),
		HTML:                   rendered.HTML,
		Toc:                    rendered.Toc,
		UpdatedAt:              content.UpdatedAt,
	}, nil
}

func (c *contentService) Markdown(ctx context.Context, kind, slug string) (*dto.MarkdownContentResponse, error) {
	content, err := c.findPublished(ctx, kind, slug)
	if err != nil {
		return nil, err
	}

	doc, err := lexical.Decode(content.Body)
	if err != nil {
		return nil, serverutils.NewBadRequest("Invalid document", err)
	}

	return &dto.MarkdownContentResponse{
		Slug:     content.Slug,
		Title:    content.Title,
		Markdown: lexical.NewParser().Markdown(doc),
	}, nil
}

func (c *contentService) findPublished(ctx context.Context, kind, slug string) (*entity.Content, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	content, err := uow.ContentRepository().FindOne(ctx,
		specification.ByKind{Kind: kind},
		specification.BySlug{Slug: slug},
		specification.Published{},
	)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, errContentNotFound
	}
	return content, nil
}

// ensureSlugFree rejects a slug already used by another item of the same kind.
func (c *contentService) ensureSlugFree(ctx context.Context, uow unitofwork.UnitOfWork, kind entity.ContentKind, slug string, self uuid.UUID) error {
	specs := []specification.Specification{
		specification.ByKind{Kind: string(kind)},
		specification.BySlug{Slug: slug},
	}
	if self != uuid.Nil {
		specs = append(specs, specification.ExcludeID{ID: self})
	}

	existing, err := uow.ContentRepository().FindOne(ctx, specs...)
	if err != nil {
		return err
	}
	if existing != nil {
		return serverutils.NewConflict(fmt.Sprintf("Slug %q is already used by another %s", slug, kind))
	}
	return nil
}

// enqueueRender asks the consumer to warm the cache. The response never
// depends on it; Show renders on a miss.
func (c *contentService) enqueueRender(ctx context.Context, id uuid.UUID) {
	payload, _ := json.Marshal(dto.PublishRenderContentMessage{ContentId: id})
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("CONTENT", "Failed to enqueue render", map[string]interface{}{
			"content_id": id.String(),
			"error":      err.Error(),
		})
	}
}

func (c *contentService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.renderService.Invalidate(ctx, id); err != nil {
		c.logger.Warn("CONTENT", "Failed to invalidate render cache", map[string]interface{}{
			"content_id": id.String(),
			"error":      err.Error(),
		})
	}
}

func toSummary(content *entity.Content) *dto.ContentSummaryResponse {
	return &dto.ContentSummaryResponse{
		Id:          content.Id,
		Kind:        string(content.Kind),
		Slug:        content.Slug,
		Title:       content.Title,
		Excerpt:     content.Excerpt,
		PublishedAt: content.PublishedAt,
	}
}
