package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/atemmel/sims-chatbot/internal/dto"
	"github.com/atemmel/sims-chatbot/internal/pkg/logger"
	"github.com/atemmel/sims-chatbot/pkg/assistant"
	"github.com/atemmel/sims-chatbot/pkg/enrich"
	"github.com/atemmel/sims-chatbot/pkg/events"
	"github.com/atemmel/sims-chatbot/pkg/knowledge"
	"github.com/atemmel/sims-chatbot/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider scripts engine replies. The greeting (empty text) and regular
// messages can answer differently.
type fakeProvider struct {
	greeting *assistant.Result
	reply    *assistant.Result

	mu       sync.Mutex
	sessions int
	sent     []string
}

func (p *fakeProvider) CreateSession(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions++
	return "session-1", nil
}

func (p *fakeProvider) DeleteSession(ctx context.Context, sessionID string) error {
	return nil
}

func (p *fakeProvider) SendMessage(ctx context.Context, text, sessionID string) *assistant.Result {
	p.mu.Lock()
	p.sent = append(p.sent, text)
	p.mu.Unlock()
	if text == "" {
		return p.greeting
	}
	return p.reply
}

type capturingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, append([]byte(nil), payload...))
	return nil
}

func (p *capturingPublisher) types(t *testing.T) []string {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.payloads))
	for _, payload := range p.payloads {
		var envelope dto.ChatEventMessage
		require.NoError(t, json.Unmarshal(payload, &envelope))
		out = append(out, envelope.Type)
	}
	return out
}

func textResult(texts ...string) *assistant.Result {
	out := assistant.Output{}
	for _, text := range texts {
		out.Generic = append(out.Generic, assistant.Generic{ResponseType: "text", Text: text})
	}
	return &assistant.Result{Success: true, Output: out}
}

func newTestChatService(provider assistant.Provider, publisher IPublisherService) IChatService {
	log := logger.NewNopLogger()
	store := knowledge.NewStore(
		[]knowledge.Office{
			{VisitAddress: knowledge.Address{Street: "Main st 1", City: "Oslo"}},
			{VisitAddress: knowledge.Address{Street: "Side st 2", City: "Bergen"}},
		},
		[]knowledge.Employee{{Name: "Ada"}, {Name: "Linus"}},
		[]knowledge.Article{
			{Title: "Go in production", Tags: []string{"cloud"}, CompanyField: "consulting"},
		},
		[]knowledge.SkillDemand{{Skill: "Go", Amount: 12}},
	)
	registry := session.NewRegistry(provider, log)
	engine := enrich.NewEngine(store, log)
	return NewChatService(registry, provider, engine, publisher, log)
}

func TestConnectReturnsGreeting(t *testing.T) {
	provider := &fakeProvider{greeting: textResult("Welcome! Ask me anything.")}
	svc := newTestChatService(provider, nil)

	fragments := svc.Connect(context.Background(), "conn-1")

	require.Len(t, fragments, 1)
	assert.Equal(t, "Welcome! Ask me anything.", fragments[0].Text)
	assert.Equal(t, 1, provider.sessions)
}

func TestConnectGreetingFailure(t *testing.T) {
	provider := &fakeProvider{greeting: &assistant.Result{Success: false}}
	svc := newTestChatService(provider, nil)

	fragments := svc.Connect(context.Background(), "conn-1")

	require.Len(t, fragments, 1)
	assert.Equal(t, failedResponseText, fragments[0].Text)
}

func TestMessageEnrichesReply(t *testing.T) {
	reply := textResult("We have {number} offices")
	reply.Output.Intents = []assistant.Intent{{Intent: enrich.IntentNumberOfOffices, Confidence: 0.95}}
	provider := &fakeProvider{
		greeting: textResult("Welcome"),
		reply:    reply,
	}
	svc := newTestChatService(provider, nil)

	svc.Connect(context.Background(), "conn-1")
	fragments, err := svc.Message(context.Background(), "conn-1", "how many offices?")

	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, "We have 2 offices", fragments[0].Text)
	assert.Equal(t, []string{"", "how many offices?"}, provider.sent)
}

func TestMessageEngineFailure(t *testing.T) {
	provider := &fakeProvider{
		greeting: textResult("Welcome"),
		reply:    &assistant.Result{Success: false},
	}
	svc := newTestChatService(provider, nil)

	svc.Connect(context.Background(), "conn-1")
	fragments, err := svc.Message(context.Background(), "conn-1", "hello?")

	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, failedResponseText, fragments[0].Text)
}

func TestMessageUnknownConnection(t *testing.T) {
	provider := &fakeProvider{greeting: textResult("Welcome")}
	svc := newTestChatService(provider, nil)

	_, err := svc.Message(context.Background(), "never-connected", "hello")
	assert.ErrorIs(t, err, session.ErrUnknownConnection)
}

func TestChatLifecycleEmitsEvents(t *testing.T) {
	publisher := &capturingPublisher{}
	provider := &fakeProvider{
		greeting: textResult("Welcome"),
		reply:    textResult("Sure thing"),
	}
	svc := newTestChatService(provider, publisher)

	ctx := context.Background()
	svc.Connect(ctx, "conn-1")
	_, err := svc.Message(ctx, "conn-1", "hi")
	require.NoError(t, err)
	svc.Disconnect(ctx, "conn-1")

	assert.Equal(t, []string{
		events.TypeSessionStarted,
		events.TypeMessageReceived,
		events.TypeResponseSent,
		events.TypeSessionEnded,
	}, publisher.types(t))
}

func TestDisconnectUnknownConnectionEmitsNothing(t *testing.T) {
	publisher := &capturingPublisher{}
	provider := &fakeProvider{greeting: textResult("Welcome")}
	svc := newTestChatService(provider, publisher)

	svc.Disconnect(context.Background(), "ghost")

	assert.Empty(t, publisher.types(t))
}
