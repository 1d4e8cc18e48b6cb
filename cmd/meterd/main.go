// Command meterd runs the IEC 62056-21 meter driver's diagnostics server:
// it loads the meter registry from a YAML config file and exposes a small
// HTTP API plus an SSE event stream over it.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/edas-mass/iec62056-driver/config"
	"github.com/edas-mass/iec62056-driver/internal/events"
	"github.com/edas-mass/iec62056-driver/logs"
	"github.com/edas-mass/iec62056-driver/registry"
	"github.com/edas-mass/iec62056-driver/server"
)

// Version info - increment based on change magnitude:
// Major (x.0.0): Breaking changes, major rewrites
// Minor (0.y.0): New features, significant enhancements
// Patch (0.0.z): Bug fixes, minor improvements
var Version = "1.0.0"

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	os.MkdirAll(cfg.Logs.Path, 0755)
	logFile, err := os.OpenFile(cfg.Logs.Path+"/meterd.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		log.SetOutput(logFile)
	}

	log.Infof("Starting meterd v%s", Version)
	log.Infof("  Meters configured: %d", len(cfg.Meters))
	log.Infof("  Log path: %s", cfg.Logs.Path)
	log.Infof("  Diagnostics port: %d", cfg.Server.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutting down...")
		cancel()
	}()

	reg, err := registry.LoadConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to load meter registry: %v", err)
	}

	dataDir := filepath.Dir(cfg.Logs.Path)
	cache := registry.NewIdentityCache(dataDir)
	hub := events.NewHub()

	frameLog := logs.NewWriter(cfg.Logs.Path, cfg.Logs.RetentionDays)
	defer frameLog.Close()

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				frameLog.Cleanup()
			}
		}
	}()

	srv := server.New(cfg.Server.Port, reg, cache, hub, frameLog, Version)

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
