package assistant

import (
	"context"
)

// Generic is one unit of the engine's generated reply.
type Generic struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// Intent is a classified user goal detected by the engine. The engine
// orders intents by its own confidence, first is primary.
type Intent struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Entity is a classified value extracted from an utterance, e.g. a city
// name or a skill name.
type Entity struct {
	Entity     string  `json:"entity"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Output is the structured part of an engine reply.
type Output struct {
	Generic  []Generic `json:"generic"`
	Intents  []Intent  `json:"intents"`
	Entities []Entity  `json:"entities"`
}

// Result is the normalized outcome of one message exchange with the engine.
// Transport and API failures surface only through Success; callers have a
// single failure signal to check.
type Result struct {
	Success bool
	Output  Output
}

// Provider defines the contract for the external dialogue engine.
type Provider interface {
	// CreateSession allocates a fresh engine-side conversation session.
	CreateSession(ctx context.Context) (string, error)

	// DeleteSession terminates an engine-side session. Failure is
	// non-fatal to callers; local cleanup proceeds regardless.
	DeleteSession(ctx context.Context, sessionID string) error

	// SendMessage sends one utterance within a session. It never returns
	// an error: any failure is normalized to Result.Success == false.
	SendMessage(ctx context.Context, text, sessionID string) *Result
}
