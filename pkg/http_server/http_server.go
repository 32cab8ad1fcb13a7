// Package http_server runs the marketplace API listener in the background
// and exposes its terminal error on a channel, so the app loop can select
// between server failure and shutdown signals.
package http_server

import (
	"context"
	"net/http"
	"time"
)

// Long enough for an in-flight response submission to commit before the
// listener is torn down.
const shutdownTimeout = 30 * time.Second

type Server struct {
	server *http.Server
	notify chan error
}

func New(handler http.Handler, address string) *Server {
	httpServer := &http.Server{
		Handler: handler,
		Addr:    address,
	}

	s := &Server{
		server: httpServer,
		notify: make(chan error, 1),
	}

	s.start()

	return s
}

func (s *Server) start() {
	go func() {
		s.notify <- s.server.ListenAndServe()
		close(s.notify)
	}()
}

// Notify delivers the error that stopped the listener.
func (s *Server) Notify() <-chan error {
	return s.notify
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
