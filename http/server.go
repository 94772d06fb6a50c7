// Package http exposes a locqa.Retriever as a JSON HTTP API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/locqa"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// ShutdownTimeout bounds graceful shutdown after the context is canceled.
const ShutdownTimeout = 5 * time.Second

// maxRequestBytes caps the size of a request body.
const maxRequestBytes = 1 << 20

// Server serves the question answering API.
type Server struct {
	retriever locqa.Retriever
	examples  []string
	logger    *slog.Logger
	metrics   *metrics
	mux       *http.ServeMux

	// Seed returns the seed for example selection when the request has none.
	Seed func() uint64
}

// NewServer creates a Server answering with retriever. Example questions are
// drawn from examples, or locqa.DefaultExamples when empty.
func NewServer(retriever locqa.Retriever, examples []string, logger *slog.Logger) *Server {
	if len(examples) == 0 {
		examples = locqa.DefaultExamples
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		retriever: retriever,
		examples:  examples,
		logger:    logger,
		metrics:   newMetrics(),
		mux:       http.NewServeMux(),
		Seed:      rand.Uint64,
	}
	s.mux.HandleFunc("POST /api/ask", s.handleAsk)
	s.mux.HandleFunc("GET /api/example", s.handleExample)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type askRequest struct {
	Question string `json:"question"`
}

type exampleResponse struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()

	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.metrics.observe(outcomeError, time.Since(begin))
		s.writeError(w, locqa.Errorf(locqa.EINVALID, "invalid request body"))
		return
	}

	res, err := s.retriever.RetrieveAndAnswer(r.Context(), req.Question)
	if err != nil {
		s.metrics.observe(outcomeError, time.Since(begin))
		s.writeError(w, err)
		return
	}

	outcome := outcomeAnswered
	if !res.Highlight.Found {
		outcome = outcomeNoAnswer
	}
	s.metrics.observe(outcome, time.Since(begin))
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	seed := s.Seed()
	if v := strings.TrimSpace(r.URL.Query().Get("seed")); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.writeError(w, locqa.Errorf(locqa.EINVALID, "invalid seed %q", v))
			return
		}
		seed = n
	}
	s.writeJSON(w, http.StatusOK, exampleResponse{Question: locqa.PickExample(seed, s.examples)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := locqa.ErrorCode(err)
	if code == locqa.EINTERNAL {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, statusCode(code), errorResponse{Error: locqa.ErrorMessage(err)})
}

// statusCode maps an application error code to an HTTP status.
func statusCode(code string) int {
	switch code {
	case locqa.EINVALID:
		return http.StatusBadRequest
	case locqa.ENOTFOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
