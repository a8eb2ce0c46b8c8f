package app

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"
)

// Shutdown listens for SIGINT and SIGTERM signals,
// shuts down the server, performs cleanup and informs the caller
func (a *App) Shutdown(done chan<- struct{}) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Blocks until a signal is received
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// Stop watching for termination signals,
	// a second Ctrl+C kills the process immediately.
	stop()

	// Give the server 5 seconds to finish the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Closing Database and Redis connections...")
	if err := a.cleanup(); err != nil {
		log.Printf("Error during cleanup: %v", err)
	}

	done <- struct{}{}
}
