package bootstrap

import (
	"log"

	"github.com/atemmel/sims-chatbot/internal/config"
	"github.com/atemmel/sims-chatbot/internal/handler"
	"github.com/atemmel/sims-chatbot/internal/pkg/logger"
	"github.com/atemmel/sims-chatbot/internal/service"
	"github.com/atemmel/sims-chatbot/internal/websocket"
	"github.com/atemmel/sims-chatbot/pkg/assistant"
	"github.com/atemmel/sims-chatbot/pkg/assistant/watson"
	"github.com/atemmel/sims-chatbot/pkg/enrich"
	"github.com/atemmel/sims-chatbot/pkg/knowledge"
	"github.com/atemmel/sims-chatbot/pkg/session"

	pktNats "github.com/atemmel/sims-chatbot/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Chat pipeline
	ChatService service.IChatService
	ChatHandler *handler.ChatHandler

	// Background Services (Exposed for main.go to run)
	TelemetryService service.ITelemetryService

	// WebSockets
	WebSocketHub *websocket.Hub

	// Shared infrastructure
	Logger logger.ILogger
}

func NewContainer(store *knowledge.Store, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Dialogue Engine Gateway
	var provider assistant.Provider = watson.NewWatsonProvider(
		cfg.Watson.URL,
		cfg.Watson.AssistantID,
		cfg.Watson.APIKey,
	)
	log.Printf("[INFO] Using dialogue engine: Watson Assistant (%s)", cfg.Watson.AssistantID)

	// 4. Session Registry
	registry := session.NewRegistry(provider, sysLogger)

	// 5. Enrichment Engine (read-only knowledge snapshot injected)
	engine := enrich.NewEngine(store, sysLogger)

	// 6. Infrastructure: NATS (optional, telemetry only)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// 7. Services
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	telemetryService := service.NewTelemetryService(pubSub, cfg.App.EventTopic, natsPub, sysLogger)
	chatService := service.NewChatService(registry, provider, engine, publisherService, sysLogger)

	// 8. WebSockets
	hub := websocket.NewHub(sysLogger)
	go hub.Run()

	chatHandler := handler.NewChatHandler(chatService, hub, store, registry, sysLogger)

	return &Container{
		ChatService:      chatService,
		ChatHandler:      chatHandler,
		TelemetryService: telemetryService,
		WebSocketHub:     hub,
		Logger:           sysLogger,
	}
}
