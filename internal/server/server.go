// Package server exposes the support router over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/telsupport/server/internal/store"
	"github.com/telsupport/server/internal/support/graph"
	"github.com/telsupport/server/internal/support/model"
	"github.com/telsupport/server/pkg/logx"
)

// Server routes support queries and serves account lookups.
type Server struct {
	runner graph.Runner
	store  *store.Store
}

// New creates the HTTP server surface over a compiled routing graph and the
// customer store.
func New(runner graph.Runner, st *store.Store) *Server {
	return &Server{runner: runner, store: st}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/chat", s.handleChat)
	r.Get("/v1/account", s.handleAccount)

	return r
}

type chatRequest struct {
	ConversationID string `json:"conversation_id"`
	Email          string `json:"email"`
	Query          string `json:"query"`
}

type chatResponse struct {
	ConversationID string               `json:"conversation_id"`
	Classification model.Classification `json:"classification"`
	Response       string               `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}

	result, err := s.runner.Invoke(r.Context(), model.QueryInput{
		ConversationID: req.ConversationID,
		Query:          req.Query,
		CustomerEmail:  strings.TrimSpace(req.Email),
	})
	if err != nil {
		logx.Error().
			Str("conversation_id", req.ConversationID).
			Err(err).
			Msg("Routing graph invocation failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to process query"})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ConversationID: req.ConversationID,
		Classification: result.Classification,
		Response:       result.Response,
	})
}

type accountResponse struct {
	Customer *store.Customer     `json:"customer"`
	Usage    []store.UsageRecord `json:"usage"`
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email is required"})
		return
	}

	customer, err := s.store.CustomerByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "customer not found"})
			return
		}
		logx.Error().Str("email", email).Err(err).Msg("Account lookup failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "account lookup failed"})
		return
	}

	usage, err := s.store.UsageHistoryByID(r.Context(), customer.CustomerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logx.Error().Str("customer_id", customer.CustomerID).Err(err).Msg("Usage lookup failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "account lookup failed"})
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{Customer: customer, Usage: usage})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("Error encoding response")
	}
}

// requestLogger logs method, path, status, and latency per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logx.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
