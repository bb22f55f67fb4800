// Package httpserver exposes the rendered wind-rose figure along with
// health, readiness, and metrics endpoints.
package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmwalls/windy/internal/observability"
	"github.com/jmwalls/windy/internal/rose"
)

// RoseProvider supplies the current rose and reports readiness.
type RoseProvider interface {
	Rose() (*rose.Rose, error)
	CheckReadiness(ctx context.Context) error
}

// Renderer draws a rose as PNG.
type Renderer interface {
	Render(ro *rose.Rose, w io.Writer) error
}

// Server serves the figure at / and /windrose.png plus /healthz, /readyz,
// and /metrics.
type Server struct {
	httpServer *http.Server
	provider   RoseProvider
	renderer   Renderer
	metrics    *observability.Metrics
	logger     *slog.Logger

	// Rendering a figure takes tens of milliseconds, so the last PNG is
	// cached and reused while the underlying sample set is unchanged.
	mu     sync.Mutex
	cached []byte
	stamp  figureStamp
}

type figureStamp struct {
	samples     int
	generatedAt time.Time
	valid       bool
}

// NewServer creates the HTTP server.
func NewServer(addr string, provider RoseProvider, renderer Renderer, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /windrose.png", s.handleFigure)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!doctype html>
<html>
<head>
<title>windy</title>
<meta http-equiv="refresh" content="30">
</head>
<body style="margin:0;background:#fff">
<img src="/windrose.png" alt="wind rose" style="max-width:100%">
</body>
</html>
`)
}

func (s *Server) handleFigure(w http.ResponseWriter, _ *http.Request) {
	png, err := s.figurePNG()
	if err != nil {
		s.logger.Error("render figure failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(png); err != nil {
		s.logger.Warn("write figure response failed", "error", err)
	}
}

// figurePNG renders the current rose, reusing the cached image when the
// provider's rose is unchanged.
func (s *Server) figurePNG() ([]byte, error) {
	ro, err := s.provider.Rose()
	if err != nil {
		return nil, err
	}

	stamp := figureStamp{samples: ro.Samples, generatedAt: ro.GeneratedAt, valid: true}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stamp.valid && s.stamp == stamp {
		return s.cached, nil
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := s.renderer.Render(ro, &buf); err != nil {
		return nil, err
	}
	s.metrics.Renders.Inc()
	s.metrics.RenderDuration.Observe(time.Since(start).Seconds())

	s.cached = buf.Bytes()
	s.stamp = stamp
	return s.cached, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.provider.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
