// Package server initializes and runs the application server: it picks a
// storage backend, wires the feature services and starts the HTTP API with
// graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"habitkeeper/internal/logging"
	"habitkeeper/internal/server/config"
	"habitkeeper/internal/server/entries"
	"habitkeeper/internal/server/rest"
	"habitkeeper/internal/server/shared/db"
	"habitkeeper/internal/server/stats"
	"habitkeeper/internal/server/trackers"
	"habitkeeper/internal/server/users"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	userService    *users.Service
	trackerService *trackers.Service
	entryService   *entries.Service
	statsService   *stats.Service
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var m db.RepositoryManager
	if c.DatabaseDSN == "" {
		m = db.NewInMemoryRepositoryManager()
	} else {
		var err error
		m, err = db.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	us := users.NewService(m.Users(), m.RefreshTokens(), m.Conn(), c)
	ts := trackers.NewService(m.Trackers())
	es := entries.NewService(m.Entries(), m.Trackers())
	ss := stats.NewService(m.Entries(), m.Trackers())

	return &App{
		config:         c,
		logger:         logger,
		userService:    us,
		trackerService: ts,
		entryService:   es,
		statsService:   ss,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRestServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := rest.NewRestServer(app.config.EndpointAddrHTTP, app.logger,
		app.userService, app.trackerService, app.entryService, app.statsService,
		app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRestServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
