package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sandlot/internal/api"
	"sandlot/internal/config"
	"sandlot/internal/sim"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("⚾ ================================")
	log.Println("⚾  SANDLOT - AT-BAT ENGINE")
	log.Println("⚾ ================================")

	appConfig := config.Load()
	simCfg := appConfig.Sim
	serverCfg := appConfig.Server

	log.Printf("⚙️ Config: %d TPS, default mode %s, max %d sessions",
		simCfg.TickRate, simCfg.DefaultMode, serverCfg.MaxSessions)

	// Start event log
	events := sim.NewEventLog()
	if simCfg.EventLogPath != "" {
		if err := events.Start(simCfg.EventLogPath); err != nil {
			log.Printf("⚠️ Event log disabled: %v", err)
			events = nil
		} else {
			log.Printf("📝 Event log: %s", simCfg.EventLogPath)
		}
	} else {
		events = nil
	}

	// Start debug server (metrics + pprof)
	if appConfig.Observability.DebugEnabled {
		api.StartDebugServer(appConfig.Observability.DebugAddr)
	}

	// Websocket fan-out
	hub := api.NewWebSocketHub()
	go hub.Run()

	// Session manager owns the live simulations
	manager := api.NewSessionManager(api.ManagerConfig{
		MaxSessions: serverCfg.MaxSessions,
		TickRate:    simCfg.TickRate,
		HandSign:    simCfg.HandSign,
		DefaultMode: simCfg.DefaultMode,
		Anchors:     sim.DefaultAnchors{},
		Events:      events,
		Hub:         hub,
	})

	rateLimiter := api.NewIPRateLimiter(api.DefaultRateLimitConfig)

	router := api.NewRouter(api.RouterConfig{
		Store:       manager,
		Hub:         hub,
		Events:      events,
		RateLimiter: rateLimiter,
	})
	server := api.NewServer(serverCfg.Port, router)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Shutdown error: %v", err)
	}

	manager.StopAll()
	hub.Stop()
	rateLimiter.Stop()
	if events != nil {
		events.Stop()
	}
	log.Println("👋 Goodbye!")
}
