package service

import (
	"context"
	"encoding/json"
	"errors"

	"portfolio-content-be/internal/dto"
	"portfolio-content-be/internal/pkg/logger"
	"portfolio-content-be/internal/pkg/serverutils"
	"portfolio-content-be/internal/repository/specification"
	"portfolio-content-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService pre-renders saved content so the first public read is a cache hit.
type consumerService struct {
	subscriber    message.Subscriber
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	renderService IRenderService
	logger        logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	renderService IRenderService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:    subscriber,
		topicName:     topicName,
		uowFactory:    uowFactory,
		renderService: renderService,
		logger:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishRenderContentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("RENDER", "Failed to unmarshal render message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	details := map[string]interface{}{"content_id": payload.ContentId.String()}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	content, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: payload.ContentId})
	if err != nil {
		details["error"] = err.Error()
		cs.logger.Error("RENDER", "Failed to load content", details)
		msg.Nack() // Nack for retriable errors
		return
	}
	if content == nil {
		cs.logger.Warn("RENDER", "Content gone before render", details)
		msg.Ack()
		return
	}

	rendered, err := cs.renderService.RenderContent(ctx, content)
	if err != nil {
		details["error"] = err.Error()
		var appErr *serverutils.AppError
		if errors.As(err, &appErr) {
			// A broken document stays broken on retry.
			cs.logger.Error("RENDER", "Content body does not render", details)
			msg.Ack()
			return
		}
		cs.logger.Error("RENDER", "Render failed", details)
		msg.Nack()
		return
	}

	details["version"] = rendered.Version
	details["headings"] = len(rendered.Toc)
	cs.logger.Info("RENDER", "Content pre-rendered", details)
	msg.Ack()
}
