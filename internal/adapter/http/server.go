// Package http exposes the service's HTTP surface: health, readiness,
// metrics, and the analysis endpoint.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-intel-service/internal/analysis"
	"github.com/couchcryptid/weather-intel-service/internal/domain"
)

const dateLayout = "2006-01-02"

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// AnalysisRunner executes one analysis request.
type AnalysisRunner interface {
	Run(ctx context.Context, req analysis.Request) (*analysis.Result, error)
}

// Server exposes health, readiness, metrics, and analysis HTTP endpoints.
type Server struct {
	httpServer *http.Server
	runner     AnalysisRunner
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /v1/analysis routes.
func NewServer(addr string, runner AnalysisRunner, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runner: runner,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/analysis", s.handleAnalysis)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// analysisRequest is the wire form of an analysis request.
type analysisRequest struct {
	Activity   string                   `json:"activity"`
	Lat        float64                  `json:"lat"`
	Lon        float64                  `json:"lon"`
	StartDate  string                   `json:"start_date"`
	EndDate    string                   `json:"end_date"`
	TargetDate string                   `json:"target_date,omitempty"`
	Requests   []domain.ProductVariable `json:"requests"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	var wire analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return
	}

	req, err := wire.toRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// toRequest parses wire-level dates into an analysis.Request.
func (a analysisRequest) toRequest() (analysis.Request, error) {
	start, err := time.Parse(dateLayout, a.StartDate)
	if err != nil {
		return analysis.Request{}, errors.New("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, a.EndDate)
	if err != nil {
		return analysis.Request{}, errors.New("end_date must be YYYY-MM-DD")
	}

	var target time.Time
	if a.TargetDate != "" {
		target, err = time.Parse(dateLayout, a.TargetDate)
		if err != nil {
			return analysis.Request{}, errors.New("target_date must be YYYY-MM-DD")
		}
	}

	return analysis.Request{
		Activity:   a.Activity,
		Lat:        a.Lat,
		Lon:        a.Lon,
		Start:      start,
		End:        end,
		TargetDate: target,
		Pairs:      a.Requests,
	}, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
