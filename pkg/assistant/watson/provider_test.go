package watson

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(srv *httptest.Server) *WatsonProvider {
	provider := NewWatsonProvider(srv.URL, "assistant-1", "test-key")
	provider.Client = srv.Client()
	return provider
}

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/assistants/assistant-1/sessions", r.URL.Path)
		assert.Equal(t, apiVersion, r.URL.Query().Get("version"))

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "apikey", username)
		assert.Equal(t, "test-key", password)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"session_id": "sess-42"})
	}))
	defer srv.Close()

	sessionID, err := newTestProvider(srv).CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sess-42", sessionID)
}

func TestCreateSessionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv).CreateSession(context.Background())
	assert.Error(t, err)
}

func TestCreateSessionEmptyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	_, err := newTestProvider(srv).CreateSession(context.Background())
	assert.Error(t, err)
}

func TestDeleteSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v2/assistants/assistant-1/sessions/sess-42", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, newTestProvider(srv).DeleteSession(context.Background(), "sess-42"))
}

func TestDeleteSessionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	assert.Error(t, newTestProvider(srv).DeleteSession(context.Background(), "sess-42"))
}

func TestSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/assistants/assistant-1/sessions/sess-42/message", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		input := payload["input"].(map[string]interface{})
		assert.Equal(t, "text", input["message_type"])
		assert.Equal(t, "hello there", input["text"])

		w.Write([]byte(`{
			"output": {
				"generic": [{"response_type": "text", "text": "Hi!"}],
				"intents": [{"intent": "Greeting", "confidence": 0.99}],
				"entities": [{"entity": "CompanyCity", "value": "Oslo", "confidence": 0.8}]
			}
		}`))
	}))
	defer srv.Close()

	result := newTestProvider(srv).SendMessage(context.Background(), "hello there", "sess-42")

	require.True(t, result.Success)
	require.Len(t, result.Output.Generic, 1)
	assert.Equal(t, "Hi!", result.Output.Generic[0].Text)
	require.Len(t, result.Output.Intents, 1)
	assert.Equal(t, "Greeting", result.Output.Intents[0].Intent)
	require.Len(t, result.Output.Entities, 1)
	assert.Equal(t, "Oslo", result.Output.Entities[0].Value)
}

func TestSendMessageNormalizesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "session expired"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	result := newTestProvider(srv).SendMessage(context.Background(), "hello", "sess-42")
	assert.False(t, result.Success)
}

func TestSendMessageNormalizesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on.

	result := newTestProvider(srv).SendMessage(context.Background(), "hello", "sess-42")
	assert.False(t, result.Success)
}

func TestSendMessageNormalizesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output": `))
	}))
	defer srv.Close()

	result := newTestProvider(srv).SendMessage(context.Background(), "hello", "sess-42")
	assert.False(t, result.Success)
}
