package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"devops-api/internal/activity"
	"devops-api/internal/events"
	internalhttp "devops-api/internal/http"
	"devops-api/internal/items"
	"devops-api/internal/shared/configs"
	"devops-api/internal/shared/loggers"
	"devops-api/internal/stores"
	"devops-api/internal/streams"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	itemEventQueue    *streams.PartitionedQueue[events.ItemEvent]
	itemEventConsumer streams.ItemEventConsumer
	backgroundCtx     context.Context
	backgroundCancel  context.CancelFunc

	// lifecycleMu orders consumer start against shutdown; once stopped, Start is a no-op.
	lifecycleMu sync.Mutex
	stopped     bool
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, config.App.Name).
		Logger()

	// Initialize item activity stream
	itemEventQueue := streams.NewPartitionedQueue[events.ItemEvent](config.Events.Partitions, config.Events.Buffer)
	activityRecorder := activity.NewActivityRecorder()
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	itemEventConsumer := streams.NewItemEventConsumer(itemEventQueue, activityRecorder, consumerLogger)

	// Initialize itemService
	itemStore := stores.NewItemStore()
	itemEventProducer := streams.NewItemEventProducer(itemEventQueue)
	itemService := items.NewItemService(itemStore, itemEventProducer)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(
		itemService,
		internalhttp.ServiceInfo{Version: config.App.Version},
		httpLogger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:              config.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())

	return &App{
		config:            config,
		appLogger:         appLogger,
		server:            server,
		itemEventQueue:    itemEventQueue,
		itemEventConsumer: itemEventConsumer,
		backgroundCtx:     backgroundCtx,
		backgroundCancel:  backgroundCancel,
	}, nil
}

// Handler exposes the routed HTTP handler, e.g. for httptest servers.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Start starts the HTTP server in a blocking manner. After Shutdown it returns
// http.ErrServerClosed without starting anything.
func (app *App) Start() error {
	app.lifecycleMu.Lock()
	if app.stopped {
		app.lifecycleMu.Unlock()
		return http.ErrServerClosed
	}

	app.appLogger.Info().
		Msgf("Starting %s %s on %s (log_level=%s, event_partitions=%d)",
			app.config.App.Name,
			app.config.App.Version,
			app.config.Server.Addr(),
			app.config.Log.Level,
			app.config.Events.Partitions)

	// start background consumers
	app.itemEventConsumer.Start(app.backgroundCtx)
	app.lifecycleMu.Unlock()

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.lifecycleMu.Lock()
	defer app.lifecycleMu.Unlock()
	if app.stopped {
		return nil
	}
	app.stopped = true

	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background consumers
	app.backgroundCancel()
	app.appLogger.Info().Msg("Background consumers cancelled")

	// 3) Wait for background consumers to finish, then release the queue
	app.itemEventConsumer.Stop()
	app.itemEventQueue.Close()
	app.appLogger.Info().Msg("Background consumers stopped")

	return nil
}
