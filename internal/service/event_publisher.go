package service

import (
	"context"

	"portfolio-content-be/internal/entity"
	"portfolio-content-be/internal/pkg/logger"
	"portfolio-content-be/pkg/events"
)

// EventBus is satisfied by *nats.Publisher.
type EventBus interface {
	Publish(ctx context.Context, event events.Event) error
}

// IContentEventPublisher announces content lifecycle changes to other services
// and to peer instances. Failures are logged, never returned.
type IContentEventPublisher interface {
	PublishContentEvent(ctx context.Context, eventType string, content *entity.Content)
}

type contentEventPublisher struct {
	bus    EventBus
	logger logger.ILogger
}

// NewContentEventPublisher accepts a nil bus, in which case events are dropped.
func NewContentEventPublisher(bus EventBus, log logger.ILogger) IContentEventPublisher {
	return &contentEventPublisher{bus: bus, logger: log}
}

func (p *contentEventPublisher) PublishContentEvent(ctx context.Context, eventType string, content *entity.Content) {
	if p.bus == nil {
		return
	}

	evt := events.NewContentEvent(eventType, content.Id, string(content.Kind), content.Slug)
	if err := p.bus.Publish(ctx, evt); err != nil {
		p.logger.Error("CONTENT", "Failed to publish "+eventType+" event", map[string]interface{}{
			"content_id": content.Id.String(),
			"error":      err.Error(),
		})
	}
}
