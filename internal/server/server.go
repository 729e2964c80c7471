// Package server exposes the remote surface: a WebSocket endpoint carrying
// directives and commands, and the embedded status frontend.
package server

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/edaniels/golog"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/molpad/molpad/internal/hub"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	exec        hub.Executor
	frontendFS  fs.FS
	addr        string
	logger      golog.Logger
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, exec hub.Executor, frontendFS fs.FS,
	addr string, logger golog.Logger,
) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		exec:        exec,
		frontendFS:  frontendFS,
		addr:        addr,
		logger:      logger,
	}
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.exec, s.logger))

	// Frontend assets are minified on the way out.
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	mux.Handle("/", m.Middleware(http.FileServer(http.FS(s.frontendFS))))

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	s.logger.Infow("http server listening", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
