// Package server exposes analysis results to the browser presentation
// layer. The core stays a one-shot batch transform; the server only retains
// the parsed input tables so that threshold reconfiguration can re-run the
// pipeline from scratch.
package server

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"epiclens/internal/analysis"
	"epiclens/internal/settings"
	"epiclens/internal/tracker"

	"github.com/rs/zerolog/log"
)

//go:embed index.html
var indexPage []byte

// Server holds one loaded dataset and the latest analysis result. A mutex
// serializes runs: only one analysis is ever in flight.
type Server struct {
	mu        sync.RWMutex
	mainTable *tracker.Table
	timeTable *tracker.Table
	opts      analysis.Options
	store     *settings.Store
	recipient string

	result     *analysis.Result
	thresholds tracker.Thresholds
}

// New creates a server for one dataset and runs the initial analysis.
func New(main, timeTable *tracker.Table, store *settings.Store, opts analysis.Options, recipient string) (*Server, error) {
	s := &Server{
		mainTable: main,
		timeTable: timeTable,
		opts:      opts,
		store:     store,
		recipient: recipient,
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// refresh re-runs the whole pipeline against the retained tables using the
// currently persisted thresholds. The epic graph is rebuilt from scratch;
// nothing from the previous result is mutated.
func (s *Server) refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thresholds := s.store.Load()
	result, err := analysis.Run(analysis.Input{
		Main:       s.mainTable,
		Time:       s.timeTable,
		Thresholds: thresholds,
		Options:    s.opts,
	})
	if err != nil {
		return err
	}
	s.result = result
	s.thresholds = thresholds
	return nil
}

// Handler returns the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /api/report", s.handleReport)
	mux.HandleFunc("GET /api/thresholds", s.handleGetThresholds)
	mux.HandleFunc("PUT /api/thresholds", s.handlePutThresholds)
	mux.HandleFunc("GET /api/escalation", s.handleEscalation)
	return logRequests(mux)
}

// ListenAndServe blocks serving the UI and API on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", addr).Msg("Serving analysis results")
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.result)
}

func (s *Server) handleGetThresholds(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.thresholds)
}

// handlePutThresholds persists a new threshold set and re-runs the whole
// pipeline. Thresholds only affect the derived SLA classification, but the
// graph is still rebuilt from scratch rather than patched in place.
func (s *Server) handlePutThresholds(w http.ResponseWriter, r *http.Request) {
	var t tracker.Thresholds
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid thresholds payload: %w", err))
		return
	}
	if err := s.store.Save(t); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.refresh(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.result)
}

func (s *Server) handleEscalation(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing key parameter"))
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, epic := range s.result.Epics {
		if epic.Key == key {
			tpl := analysis.BuildEscalation(epic, s.thresholds, s.recipient)
			writeJSON(w, http.StatusOK, tpl)
			return
		}
	}
	writeError(w, http.StatusNotFound, fmt.Errorf("epic %q not found", key))
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Warn().Err(err).Int("status", status).Msg("Request failed")
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}
