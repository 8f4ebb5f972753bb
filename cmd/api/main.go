// Package main provides the entry point for the Inkwell companion server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/inkwellapp/inkwell-server/internal/di"
	"github.com/inkwellapp/inkwell-server/internal/di/providers"
	"github.com/inkwellapp/inkwell-server/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The cache uses a wrapper type, close it explicitly so pending writes
	// hit disk before exit.
	if cacheHandle, err := do.Invoke[*providers.CacheHandle](injector); err == nil {
		log.Info("Closing local cache...")
		if err := cacheHandle.Shutdown(); err != nil {
			log.Error("Failed to close local cache", "error", err)
		} else {
			log.Info("Local cache closed successfully")
		}
	}

	log.Info("Hasta pronto.")
}
