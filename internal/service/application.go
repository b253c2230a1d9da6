package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"commerce-api/internal/config"
	deliveryhttp "commerce-api/internal/delivery/http"
	"commerce-api/internal/infrastructure/database"
	"commerce-api/internal/infrastructure/logger"
	"commerce-api/internal/infrastructure/metrics"
	"commerce-api/internal/infrastructure/redis"
	"commerce-api/internal/infrastructure/repository"
	"commerce-api/internal/logs"
	"commerce-api/internal/server"
	"commerce-api/internal/usecase"
)

// Options returns every fx module of the service
func Options() fx.Option {
	return fx.Options(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		repository.Module,

		// Business Logic
		logs.Module,
		metrics.Module,
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	)
}

// Application wraps the fx.App for service management
type Application struct {
	app      *fx.App
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
}

// NewApplication creates a new Application instance
func NewApplication() *Application {
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		ctx:      ctx,
		cancel:   cancel,
		doneChan: make(chan struct{}),
	}
}

// Run starts the application and blocks until a signal or Shutdown
func (a *Application) Run() {
	defer close(a.doneChan)

	a.app = fx.New(
		fx.Provide(func() context.Context { return a.ctx }),
		Options(),
	)

	if err := a.app.Start(a.ctx); err != nil {
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		a.Shutdown()
	case <-a.ctx.Done():
	}
}

// Shutdown gracefully shuts down the application
func (a *Application) Shutdown() {
	a.cancel()
	if a.app != nil {
		ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
		defer cancel()
		a.app.Stop(ctx)
	}
}

// Wait blocks until the application exits
func (a *Application) Wait() {
	<-a.doneChan
}
