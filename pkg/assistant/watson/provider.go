package watson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/atemmel/sims-chatbot/pkg/assistant"
)

// apiVersion is the Watson Assistant v2 API version date sent with every
// request.
const apiVersion = "2021-06-14"

type WatsonProvider struct {
	BaseURL     string
	AssistantID string
	APIKey      string
	Client      *http.Client
}

// Ensure WatsonProvider implements Provider
var _ assistant.Provider = &WatsonProvider{}

func NewWatsonProvider(baseURL, assistantID, apiKey string) *WatsonProvider {
	return &WatsonProvider{
		BaseURL:     baseURL,
		AssistantID: assistantID,
		APIKey:      apiKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type watsonMessageInput struct {
	MessageType string `json:"message_type"`
	Text        string `json:"text"`
}

type watsonMessageRequest struct {
	Input watsonMessageInput `json:"input"`
}

type watsonMessageResponse struct {
	Output assistant.Output `json:"output"`
}

type watsonSessionResponse struct {
	SessionID string `json:"session_id"`
}

// --- Interface Implementation ---

func (w *WatsonProvider) CreateSession(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/v2/assistants/%s/sessions", w.BaseURL, url.PathEscape(w.AssistantID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?version="+apiVersion, nil)
	if err != nil {
		return "", fmt.Errorf("create session request: %w", err)
	}
	w.authorize(req)

	resp, err := w.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("watson create session: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read session response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watson create session: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var sessionResp watsonSessionResponse
	if err := json.Unmarshal(bodyBytes, &sessionResp); err != nil {
		return "", fmt.Errorf("unmarshal session response: %w", err)
	}
	if sessionResp.SessionID == "" {
		return "", fmt.Errorf("watson create session: empty session id in response")
	}

	return sessionResp.SessionID, nil
}

func (w *WatsonProvider) DeleteSession(ctx context.Context, sessionID string) error {
	endpoint := fmt.Sprintf("%s/v2/assistants/%s/sessions/%s",
		w.BaseURL, url.PathEscape(w.AssistantID), url.PathEscape(sessionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint+"?version="+apiVersion, nil)
	if err != nil {
		return fmt.Errorf("delete session request: %w", err)
	}
	w.authorize(req)

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("watson delete session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("watson delete session: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// SendMessage never returns an error; every failure mode collapses into
// Result.Success == false so callers have one signal to check.
func (w *WatsonProvider) SendMessage(ctx context.Context, text, sessionID string) *assistant.Result {
	reqPayload := watsonMessageRequest{
		Input: watsonMessageInput{
			MessageType: "text",
			Text:        text,
		},
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		log.Printf("[WARN] watson: marshal message request: %v", err)
		return &assistant.Result{Success: false}
	}

	endpoint := fmt.Sprintf("%s/v2/assistants/%s/sessions/%s/message",
		w.BaseURL, url.PathEscape(w.AssistantID), url.PathEscape(sessionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?version="+apiVersion, bytes.NewBuffer(payloadBytes))
	if err != nil {
		log.Printf("[WARN] watson: create message request: %v", err)
		return &assistant.Result{Success: false}
	}
	req.Header.Set("Content-Type", "application/json")
	w.authorize(req)

	resp, err := w.Client.Do(req)
	if err != nil {
		log.Printf("[WARN] watson: message request failed: %v", err)
		return &assistant.Result{Success: false}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[WARN] watson: read message response: %v", err)
		return &assistant.Result{Success: false}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[WARN] watson: message status %d, body: %s", resp.StatusCode, string(bodyBytes))
		return &assistant.Result{Success: false}
	}

	var msgResp watsonMessageResponse
	if err := json.Unmarshal(bodyBytes, &msgResp); err != nil {
		log.Printf("[WARN] watson: unmarshal message response: %v", err)
		return &assistant.Result{Success: false}
	}

	return &assistant.Result{
		Success: true,
		Output:  msgResp.Output,
	}
}

func (w *WatsonProvider) authorize(req *http.Request) {
	req.SetBasicAuth("apikey", w.APIKey)
}
