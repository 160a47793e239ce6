package main

import (
	"context"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/bootstrap"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
		panic(err)
	}

	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
	}
}
