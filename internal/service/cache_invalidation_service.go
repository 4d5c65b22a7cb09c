package service

import (
	"context"

	"portfolio-content-be/internal/metrics"
	"portfolio-content-be/internal/pkg/logger"
	"portfolio-content-be/pkg/events"
	pktNats "portfolio-content-be/pkg/nats"

	"github.com/google/uuid"
)

// LocalEvicter drops the process-local copy of a render.
type LocalEvicter interface {
	Evict(ctx context.Context, contentId uuid.UUID) error
}

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

type ICacheInvalidationService interface {
	Start() error
}

// cacheInvalidationService keeps the local render tier of this instance in
// step with writes made on its peers.
type cacheInvalidationService struct {
	subscriber  EventSubscriber
	durableName string
	cache       LocalEvicter
	logger      logger.ILogger
}

func NewCacheInvalidationService(subscriber EventSubscriber, durableName string, cache LocalEvicter, log logger.ILogger) ICacheInvalidationService {
	return &cacheInvalidationService{
		subscriber:  subscriber,
		durableName: durableName,
		cache:       cache,
		logger:      log,
	}
}

func (s *cacheInvalidationService) Start() error {
	return s.subscriber.Subscribe(pktNats.SubjectFor("*"), s.durableName, s.handle)
}

func (s *cacheInvalidationService) handle(ctx context.Context, event events.Event) error {
	id, err := events.ContentID(event)
	if err != nil {
		s.logger.Warn("CACHE", "Ignoring event without content id", map[string]interface{}{
			"type": event.EventType(),
		})
		return nil
	}

	if err := s.cache.Evict(ctx, id); err != nil {
		return err
	}
	metrics.CacheInvalidationsTotal.Inc()
	s.logger.Debug("CACHE", "Evicted local render", map[string]interface{}{
		"content_id": id.String(),
		"type":       event.EventType(),
	})
	return nil
}
