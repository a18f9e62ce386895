// Package server exposes the scanner over HTTP: a health check for
// uptime pingers and a trigger endpoint for cron-driven scans.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
	"trend-screener/internal/scan"
	"trend-screener/internal/universe"
)

// Server wires the scan orchestrator to HTTP handlers.
type Server struct {
	orch     *scan.Orchestrator
	universe *universe.Source
	logger   zerolog.Logger
	httpSrv  *http.Server
}

// New creates a Server listening on addr.
func New(addr string, orch *scan.Orchestrator, src *universe.Source, logger zerolog.Logger) *Server {
	s := &Server{
		orch:     orch,
		universe: src,
		logger:   logger.With().Str("component", "server").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /progress", s.handleProgress)
	mux.HandleFunc("GET /trigger-scan/{scanType}", s.handleTrigger)
	mux.HandleFunc("POST /trigger-scan/{scanType}", s.handleTrigger)
	mux.HandleFunc("POST /stop", s.handleStop)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpSrv.Addr).Msg("http server listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	p, err := s.orch.Progress()
	status := "Idle"
	if err == nil {
		switch p.Status {
		case models.StatusRunning, models.StatusPaused:
			pct := 0.0
			if p.Total > 0 {
				pct = float64(p.Offset) / float64(p.Total) * 100
			}
			status = fmt.Sprintf("Scanning: %.1f%% (%s)", pct, p.ScanType)
		case models.StatusCompleted:
			status = fmt.Sprintf("Last scan: %d stocks found", p.Found)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<html>
<head><title>Trend Screener</title></head>
<body style="font-family: Arial; text-align: center; padding: 50px;">
<h1>Trend Template Screener</h1>
<p>Status: %s</p>
<p><a href="/health">/health</a></p>
</body>
</html>
`, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	p, err := s.orch.Progress()
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "healthy",
		"scanning":      p.Status == models.StatusRunning,
		"scan_progress": p.Offset,
		"scan_total":    p.Total,
		"results_count": p.Found,
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.orch.Progress()
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	scanType := models.ScanType(r.PathValue("scanType"))
	if !scanType.Valid() {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid scan type"})
		return
	}

	symbols, err := s.universe.Symbols(scanType)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}

	// The request context dies with the response; the scan must not.
	if err := s.orch.Start(context.Background(), scanType, symbols, ""); err != nil {
		if errors.Is(err, errors.ErrAlreadyRunning) {
			s.writeJSON(w, http.StatusConflict, map[string]interface{}{"error": "scan already running"})
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}

	s.logger.Info().Str("scan_type", string(scanType)).Msg("scan triggered via http")
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "scan_started",
		"type":   scanType,
	})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if err := s.orch.Stop(); err != nil {
		if errors.Is(err, errors.ErrNoCheckpoint) {
			s.writeJSON(w, http.StatusConflict, map[string]interface{}{"error": "no scan to stop"})
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "stop_requested"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("writing response failed")
	}
}
