package http

import (
	"context"
	"errors"
	"net/http"
	"time"
)

type server struct {
	server *http.Server
}

type ServerConfig struct {
	Addr string
}

func NewServer(cfg ServerConfig, handler http.Handler) server {
	return server{
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s server) Stop(ctx context.Context) error { return s.server.Shutdown(ctx) }
