package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/atemmel/sims-chatbot/internal/bootstrap"
	"github.com/atemmel/sims-chatbot/internal/config"
	"github.com/atemmel/sims-chatbot/internal/repl"
	"github.com/atemmel/sims-chatbot/internal/server"
	"github.com/atemmel/sims-chatbot/internal/tracer"
	"github.com/atemmel/sims-chatbot/pkg/knowledge"
)

func main() {
	cliMode := flag.Bool("cli", false, "Run in cli-mode (single session over stdin/stdout)")
	flag.Parse()

	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Load Static Knowledge Store (fatal: cannot serve without it)
	store, err := knowledge.Load(knowledge.Paths{
		Offices:   cfg.Datasets.Offices,
		Employees: cfg.Datasets.Employees,
		Articles:  cfg.Datasets.Articles,
		Skills:    cfg.Datasets.Skills,
	})
	if err != nil {
		log.Fatalf("Unable to load datasets: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(store, cfg)
	defer container.Logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. Start Background Services
	if err := container.TelemetryService.Consume(ctx); err != nil {
		log.Printf("Background Telemetry Error: %v", err)
	}

	if *cliMode {
		if err := repl.Run(ctx, container.ChatService); err != nil {
			log.Printf("REPL error: %v", err)
		}
		container.ChatService.Shutdown(context.Background())
		return
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
	}

	// 7. Tear down every live engine session before exit
	teardownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	container.ChatService.Shutdown(teardownCtx)
}
