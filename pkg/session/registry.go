package session

import (
	"context"
	"errors"
	"sync"

	"github.com/atemmel/sims-chatbot/internal/pkg/logger"
)

// ErrUnknownConnection is returned when a connection has no registered
// session. In correct usage this is an ordering defect in the caller, not a
// runtime condition to recover from.
var ErrUnknownConnection = errors.New("no session registered for connection")

// Gateway is the slice of the dialogue engine the registry needs for
// session lifecycle calls.
type Gateway interface {
	CreateSession(ctx context.Context) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Registry maps connection ids to engine-side session ids. It is the only
// shared mutable structure in the process; every map access runs under one
// exclusive lock. Gateway calls happen outside the lock so a slow engine
// never blocks unrelated connections.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]string
	gateway  Gateway
	logger   logger.ILogger
}

func NewRegistry(gateway Gateway, log logger.ILogger) *Registry {
	return &Registry{
		sessions: make(map[string]string),
		gateway:  gateway,
		logger:   log,
	}
}

// Connect allocates an engine session for the connection and stores the
// mapping. A duplicate connect overwrites the previous mapping.
func (r *Registry) Connect(ctx context.Context, connectionID string) (string, error) {
	sessionID, err := r.gateway.CreateSession(ctx)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.sessions[connectionID] = sessionID
	r.mu.Unlock()

	r.logger.Info("SessionRegistry", "Session registered", map[string]interface{}{
		"connection_id": connectionID,
	})
	return sessionID, nil
}

// Get returns the session id mapped to the connection.
func (r *Registry) Get(connectionID string) (string, error) {
	r.mu.Lock()
	sessionID, ok := r.sessions[connectionID]
	r.mu.Unlock()

	if !ok {
		return "", ErrUnknownConnection
	}
	return sessionID, nil
}

// Disconnect removes the mapping and asks the engine to terminate the
// session. The local mapping is removed even when the engine call fails;
// termination failure is logged, never fatal.
func (r *Registry) Disconnect(ctx context.Context, connectionID string) error {
	r.mu.Lock()
	sessionID, ok := r.sessions[connectionID]
	delete(r.sessions, connectionID)
	r.mu.Unlock()

	if !ok {
		return ErrUnknownConnection
	}

	if err := r.gateway.DeleteSession(ctx, sessionID); err != nil {
		r.logger.Warn("SessionRegistry", "Failed to terminate engine session", map[string]interface{}{
			"connection_id": connectionID,
			"error":         err.Error(),
		})
	}

	r.logger.Info("SessionRegistry", "Session removed", map[string]interface{}{
		"connection_id": connectionID,
	})
	return nil
}

// TeardownAll disconnects every live session, used at process shutdown.
// Partial failures do not stop the remaining teardowns.
func (r *Registry) TeardownAll(ctx context.Context) {
	r.mu.Lock()
	connections := make([]string, 0, len(r.sessions))
	for connectionID := range r.sessions {
		connections = append(connections, connectionID)
	}
	r.mu.Unlock()

	for _, connectionID := range connections {
		if err := r.Disconnect(ctx, connectionID); err != nil {
			r.logger.Warn("SessionRegistry", "Teardown skipped connection", map[string]interface{}{
				"connection_id": connectionID,
				"error":         err.Error(),
			})
		}
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
