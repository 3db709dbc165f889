package service

import (
	"context"
	"encoding/json"

	"mindly-be/internal/dto"
	"mindly-be/internal/pkg/logger"
	"mindly-be/pkg/knowledge"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	knowledge  IKnowledgeService
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	knowledgeService IKnowledgeService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		knowledge:  knowledgeService,
		logger:     log,
	}
}

// Consume processes ingestion messages until ctx is cancelled.
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
	var payload dto.PublishIngestKnowledgeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal ingest message", map[string]interface{}{"error": err.Error()})
		// invalid payloads are never retried
		msg.Ack()
		return
	}

	passages := make([]knowledge.Passage, len(payload.Documents))
	for i, d := range payload.Documents {
		passages[i] = knowledge.Passage{
			Key:      d.Key,
			Content:  d.Content,
			Category: d.Category,
			Type:     d.Type,
			Source:   d.Source,
		}
	}

	stored, err := cs.knowledge.Store(ctx, passages)
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to store knowledge documents", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("ConsumerService", "Knowledge documents ingested", map[string]interface{}{
		"message_id": msg.UUID,
		"stored":     stored,
	})
	msg.Ack()
}
