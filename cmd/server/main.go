package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/jwaldner/vanilla/internal/config"
	"github.com/jwaldner/vanilla/internal/handlers"
	"github.com/jwaldner/vanilla/internal/logger"
	vanilla "github.com/jwaldner/vanilla/vanilla_lib"
)

func main() {
	cfg := config.Load()

	// Initialize proper logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("🚀 Vanilla option pricer starting - Port: %s", cfg.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("⚠️  VERBOSE LOGGING ENABLED - every priced contract will be logged to %s\n", cfg.Logging.LogFile)
	}

	// Initialize engine based on configuration
	engine := vanilla.NewEngineForced(cfg.Engine.ExecutionMode)
	if cfg.Engine.Workers > 0 {
		engine = engine.WithWorkers(cfg.Engine.Workers)
	}
	logger.Always.Printf("🔧 EXECUTION MODE: %s (%d workers)", engine.ExecutionMode(), engine.Workers())

	pricerHandler := handlers.NewPricerHandler(cfg, engine)
	r := handlers.NewRouter(pricerHandler)

	// Start server
	fmt.Printf("🌐 Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("🌐 Server starting on http://localhost:%s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
