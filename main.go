package main

import (
	"context"
	"log"

	"dolanlur/config"
	"dolanlur/connection"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := connection.StartServer(context.Background(), cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
