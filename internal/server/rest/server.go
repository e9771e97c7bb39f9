// Package rest exposes the HTTP JSON API: auth, trackers, entries and
// per-tracker statistics.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"habitkeeper/internal/logging"
	"habitkeeper/internal/server/entries"
	"habitkeeper/internal/server/stats"
	"habitkeeper/internal/server/trackers"
	"habitkeeper/internal/server/users"
)

type RestServer struct {
	address   string
	logger    logging.Logger
	users     *users.Service
	trackers  *trackers.Service
	entries   *entries.Service
	stats     *stats.Service
	jwtSecret []byte
}

func NewRestServer(a string, l logging.Logger, us *users.Service, ts *trackers.Service, es *entries.Service, ss *stats.Service, secretKey string) (*RestServer, error) {
	return &RestServer{
		address:   a,
		logger:    l.With("module", "rest_server"),
		users:     us,
		trackers:  ts,
		entries:   es,
		stats:     ss,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *RestServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
