package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "chat.message_received").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by all chat events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Chat event type codes published on the in-process bus.
const (
	TypeSessionStarted  = "chat.session_started"
	TypeSessionEnded    = "chat.session_ended"
	TypeMessageReceived = "chat.message_received"
	TypeResponseSent    = "chat.response_sent"
)

// NewSessionStarted records a new client conversation.
func NewSessionStarted(connectionID string) BaseEvent {
	return BaseEvent{
		Type:       TypeSessionStarted,
		Data:       map[string]interface{}{"connection_id": connectionID},
		OccurredAt: time.Now(),
	}
}

// NewSessionEnded records a finished client conversation.
func NewSessionEnded(connectionID string) BaseEvent {
	return BaseEvent{
		Type:       TypeSessionEnded,
		Data:       map[string]interface{}{"connection_id": connectionID},
		OccurredAt: time.Now(),
	}
}

// NewMessageReceived records an inbound utterance.
func NewMessageReceived(connectionID string, length int) BaseEvent {
	return BaseEvent{
		Type: TypeMessageReceived,
		Data: map[string]interface{}{
			"connection_id":  connectionID,
			"message_length": length,
		},
		OccurredAt: time.Now(),
	}
}

// NewResponseSent records a delivered enriched response.
func NewResponseSent(connectionID string, fragments int, engineOK bool) BaseEvent {
	return BaseEvent{
		Type: TypeResponseSent,
		Data: map[string]interface{}{
			"connection_id": connectionID,
			"fragments":     fragments,
			"engine_ok":     engineOK,
		},
		OccurredAt: time.Now(),
	}
}
