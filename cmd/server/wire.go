//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"memory_mapping/internal/app"
	"memory_mapping/internal/config"
	"memory_mapping/internal/http"
	"memory_mapping/internal/http/controller"
	"memory_mapping/internal/logging"
	"memory_mapping/internal/metrics"
	"memory_mapping/internal/queue/rabbitmq"
	"memory_mapping/internal/service/memories"
	"memory_mapping/internal/sse"
	"memory_mapping/internal/store"
)

func InitializeApp() (*app.App, error) {
	wire.Build(
		config.New,
		logging.New,
		store.NewStore,
		metrics.New,
		sse.NewHub,
		memories.NewService,
		controller.NewHandler,
		http.NewRouter,
		rabbitmq.NewConsumer,
		rabbitmq.NewPublisher,
		app.NewApp,
	)
	return &app.App{}, nil
}
