// Package server builds the HTTP server from configuration.
package server

import (
	"net/http"
	"time"

	"thesis-gallery/internal/config"
)

// New returns an http.Server with timeouts from config.
func New(cfg *config.Config, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if cfg.Server != nil {
		srv.ReadTimeout = cfg.Server.ReadTimeout
		srv.WriteTimeout = cfg.Server.WriteTimeout
		srv.IdleTimeout = cfg.Server.IdleTimeout
	}
	return srv
}
