package app

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"memory_mapping/internal/config"
	"memory_mapping/internal/queue"
	"memory_mapping/internal/sse"
	"memory_mapping/internal/telemetry"
)

type App struct {
	cfg      *config.Config
	hub      *sse.Hub
	consumer queue.Consumer
	server   *http.Server
	logger   *zap.Logger
	wg       sync.WaitGroup

	shutdownTracing func(context.Context) error
}

func NewApp(cfg *config.Config, hub *sse.Hub, consumer queue.Consumer, router *gin.Engine, logger *zap.Logger) *App {
	return &App{
		cfg:      cfg,
		hub:      hub,
		consumer: consumer,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		logger:          logger,
		shutdownTracing: func(context.Context) error { return nil },
	}
}

func (a *App) Run(ctx context.Context) error {
	shutdown, err := telemetry.Init(ctx, a.cfg)
	if err != nil {
		a.logger.Warn("tracing disabled", zap.Error(err))
	} else {
		a.shutdownTracing = shutdown
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.consumer.Start(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("consumer stopped", zap.Error(err))
		}
	}()

	// Streams end with ctx instead of holding Shutdown open until its deadline.
	a.server.BaseContext = func(net.Listener) context.Context { return ctx }

	a.logger.Info("http server listening", zap.String("addr", a.cfg.HTTPAddr))
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if err := a.shutdownTracing(ctx); err != nil {
			a.logger.Warn("tracing shutdown failed", zap.Error(err))
		}
		a.logger.Info("graceful shutdown completed")
		return shutdownErr
	case <-ctx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return ctx.Err()
	}
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
