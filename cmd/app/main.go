package main

import (
	"context"
	"flag"
	"log"
	"os"

	"MarketPulse/internal/di"
	"MarketPulse/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := cfg.MissingKeysError(); err != nil {
		if cfg.Server.StrictKeys {
			log.Fatal(err)
		}
		log.Printf("%v; /api answers 500 until they are set", err)
	}

	log.Printf("env=%s cache=%s port=%d", cfg.Environment, cfg.Cache.Backend, cfg.Server.Port)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(context.Background()); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
