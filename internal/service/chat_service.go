package service

import (
	"context"
	"encoding/json"

	"github.com/atemmel/sims-chatbot/internal/dto"
	"github.com/atemmel/sims-chatbot/internal/pkg/logger"
	"github.com/atemmel/sims-chatbot/pkg/assistant"
	"github.com/atemmel/sims-chatbot/pkg/enrich"
	"github.com/atemmel/sims-chatbot/pkg/events"
	"github.com/atemmel/sims-chatbot/pkg/session"
)

// failedResponseText is shown when the dialogue engine could not produce a
// reply. The user retries by sending a new message; there is no automatic
// retry.
const failedResponseText = "Sorry, I could not get a response. Please try again."

type IChatService interface {
	Connect(ctx context.Context, connectionID string) []dto.Fragment
	Message(ctx context.Context, connectionID, text string) ([]dto.Fragment, error)
	Disconnect(ctx context.Context, connectionID string)
	Shutdown(ctx context.Context)
}

type chatService struct {
	registry  *session.Registry
	provider  assistant.Provider
	engine    *enrich.Engine
	publisher IPublisherService
	logger    logger.ILogger
}

func NewChatService(
	registry *session.Registry,
	provider assistant.Provider,
	engine *enrich.Engine,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		registry:  registry,
		provider:  provider,
		engine:    engine,
		publisher: publisher,
		logger:    log,
	}
}

// Connect registers an engine session for the connection and returns the
// engine's greeting.
func (s *chatService) Connect(ctx context.Context, connectionID string) []dto.Fragment {
	sessionID, err := s.registry.Connect(ctx, connectionID)
	if err != nil {
		s.logger.Error("ChatService", "Failed to create engine session", map[string]interface{}{
			"connection_id": connectionID,
			"error":         err.Error(),
		})
		return []dto.Fragment{{Text: failedResponseText}}
	}

	s.publishEvent(ctx, events.NewSessionStarted(connectionID))

	// An empty utterance prompts the engine's welcome node.
	result := s.provider.SendMessage(ctx, "", sessionID)
	if !result.Success {
		s.logger.Warn("ChatService", "Engine greeting failed", map[string]interface{}{
			"connection_id": connectionID,
		})
		return []dto.Fragment{{Text: failedResponseText}}
	}

	return s.engine.Greeting(&result.Output)
}

// Message relays one utterance through the engine and enriches the reply.
// An unknown connection is an ordering defect in the transport and surfaces
// as an error.
func (s *chatService) Message(ctx context.Context, connectionID, text string) ([]dto.Fragment, error) {
	sessionID, err := s.registry.Get(connectionID)
	if err != nil {
		s.logger.Error("ChatService", "Message for unknown connection", map[string]interface{}{
			"connection_id": connectionID,
			"error":         err.Error(),
		})
		return nil, err
	}

	s.publishEvent(ctx, events.NewMessageReceived(connectionID, len(text)))

	result := s.provider.SendMessage(ctx, text, sessionID)

	var fragments []dto.Fragment
	if result.Success {
		fragments = s.engine.Enrich(&result.Output)
	} else {
		s.logger.Warn("ChatService", "Engine call failed", map[string]interface{}{
			"connection_id": connectionID,
		})
		fragments = []dto.Fragment{{Text: failedResponseText}}
	}

	s.publishEvent(ctx, events.NewResponseSent(connectionID, len(fragments), result.Success))
	return fragments, nil
}

// Disconnect tears down the connection's engine session.
func (s *chatService) Disconnect(ctx context.Context, connectionID string) {
	if err := s.registry.Disconnect(ctx, connectionID); err != nil {
		s.logger.Warn("ChatService", "Disconnect for unknown connection", map[string]interface{}{
			"connection_id": connectionID,
		})
		return
	}
	s.publishEvent(ctx, events.NewSessionEnded(connectionID))
}

// Shutdown tears down every live session before the process exits.
func (s *chatService) Shutdown(ctx context.Context) {
	s.logger.Info("ChatService", "Tearing down all sessions", map[string]interface{}{
		"live_sessions": s.registry.Len(),
	})
	s.registry.TeardownAll(ctx)
}

// publishEvent puts a chat event on the in-process bus. Telemetry is lossy
// by design; a publish failure never disturbs the chat flow.
func (s *chatService) publishEvent(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}

	envelope := dto.ChatEventMessage{
		Type:       event.EventType(),
		Payload:    event.Payload(),
		OccurredAt: event.Timestamp(),
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Warn("ChatService", "Failed to marshal chat event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("ChatService", "Failed to publish chat event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
