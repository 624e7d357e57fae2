package service

import (
	"context"
	"encoding/json"

	"github.com/atemmel/sims-chatbot/internal/dto"
	"github.com/atemmel/sims-chatbot/internal/pkg/logger"
	"github.com/atemmel/sims-chatbot/pkg/events"
	pktNats "github.com/atemmel/sims-chatbot/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type ITelemetryService interface {
	Consume(ctx context.Context) error
}

// telemetryService drains the in-process chat event topic, logs each event
// and forwards it to NATS when a publisher is configured. It runs for the
// lifetime of the process.
type telemetryService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	natsPub   *pktNats.Publisher
	logger    logger.ILogger
}

func NewTelemetryService(
	pubSub *gochannel.GoChannel,
	topicName string,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) ITelemetryService {
	return &telemetryService{
		pubSub:    pubSub,
		topicName: topicName,
		natsPub:   natsPub,
		logger:    log,
	}
}

func (ts *telemetryService) Consume(ctx context.Context) error {
	messages, err := ts.pubSub.Subscribe(ctx, ts.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ts.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ts *telemetryService) processMessage(ctx context.Context, msg *message.Message) {
	// Telemetry is lossy: every message is acked exactly once, failures are
	// logged and dropped rather than retried.
	defer msg.Ack()

	var envelope dto.ChatEventMessage
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		ts.logger.Warn("Telemetry", "Failed to unmarshal chat event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	ts.logger.Info("Telemetry", "Chat event", map[string]interface{}{
		"type":    envelope.Type,
		"payload": envelope.Payload,
	})

	if ts.natsPub == nil {
		return
	}

	evt := events.BaseEvent{
		Type:       envelope.Type,
		Data:       envelope.Payload,
		OccurredAt: envelope.OccurredAt,
	}
	if err := ts.natsPub.Publish(ctx, evt); err != nil {
		ts.logger.Warn("Telemetry", "Failed to forward chat event to NATS", map[string]interface{}{
			"type":  envelope.Type,
			"error": err.Error(),
		})
	}
}
