package dto

import "time"

// ChatEventMessage is the envelope chat events travel in on the in-process
// bus before being forwarded to NATS.
type ChatEventMessage struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}
