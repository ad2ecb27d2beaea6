package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	server  *http.Server
	logger  *zerolog.Logger
	tracker *Tracker
}

func NewServer(l *zerolog.Logger, addr string, tracker *Tracker) *Server {
	server := &Server{
		server:  &http.Server{Addr: addr, ReadHeaderTimeout: shutdownTimeout},
		logger:  l,
		tracker: tracker,
	}
	server.server.Handler = server.Router()
	return server
}

func (server *Server) Router() http.Handler {
	handler := NewHandler(server.logger, server.tracker)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(&LogFormatter{Logger: server.logger}))
	r.Use(middleware.Recoverer)
	r.Get("/ping", handler.Ping)
	r.Get("/status", handler.Status)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.tracker.Registry(), promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves until ctx is done and then shuts the server down.
func (server *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		server.logger.Info().Msgf("Status server is listening on %s", server.server.Addr)
		errCh <- server.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.server.Shutdown(shutdownCtx); err != nil {
		server.logger.Error().Err(err).Msg("Shutdown status server error")
		return err
	}
	server.logger.Info().Msg("Status server stopped gracefully")
	return nil
}
