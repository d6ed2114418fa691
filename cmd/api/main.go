package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/shelterops/adoption-api/internal/app/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := api.Run(ctx); err != nil {
		log.Fatalf("adoption API failed: %v", err)
	}
}
