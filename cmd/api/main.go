package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"singularity/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	go func() {
		if err := a.Start(); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down, draining open requests...")

	ctx, cancel := context.WithTimeout(context.Background(), a.ShutdownTimeout())
	defer cancel()

	if err := a.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
