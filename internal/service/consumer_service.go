package service

import (
	"context"
	"encoding/json"

	"ai-mathteach-be/internal/pkg/logger"
	"ai-mathteach-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub              *gochannel.GoChannel
	topicName           string
	notificationService INotificationService
	logger              logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	notificationService INotificationService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:              pubSub,
		topicName:           topicName,
		notificationService: notificationService,
		logger:              log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.notificationService.HandleEvent(ctx, event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to handle event", map[string]interface{}{
			"event_type": event.Type,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
