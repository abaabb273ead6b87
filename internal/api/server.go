// Package api exposes the HTTP surface: the SSE chat proxy, the
// recommendation endpoint and the roadmap export.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/startupgps/server/internal/chat"
	"github.com/startupgps/server/internal/export"
	"github.com/startupgps/server/internal/models"
)

// Recommender produces the recommendation record for one request.
type Recommender interface {
	Recommend(ctx context.Context, sector, userContext string) (models.Recommendation, error)
}

// ChatStreamer streams one assistant reply delta by delta.
type ChatStreamer interface {
	StreamChat(ctx context.Context, systemPrompt string, messages []models.ChatMessage, onDelta func(delta string) error) error
}

// Server handles HTTP requests.
type Server struct {
	recommender Recommender
	streamer    ChatStreamer
	limiter     *RateLimiter
	logger      *zap.Logger

	chatTimeout      time.Duration
	recommendTimeout time.Duration
}

// NewServer creates a new API server. limiter may be nil to disable rate
// limiting (tests).
func NewServer(recommender Recommender, streamer ChatStreamer, limiter *RateLimiter, logger *zap.Logger, chatTimeout, recommendTimeout time.Duration) *Server {
	return &Server{
		recommender:      recommender,
		streamer:         streamer,
		limiter:          limiter,
		logger:           logger,
		chatTimeout:      chatTimeout,
		recommendTimeout: recommendTimeout,
	}
}

// Router returns the HTTP router.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /export", s.handleExport)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.loggingMiddleware(s.rateLimitMiddleware(mux))
}

// handleRoot provides API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Startup GPS",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /chat":            "Qualifying conversation, replies streamed over SSE",
			"POST /recommendations": "Generate the personalized roadmap",
			"POST /export":          "Download the roadmap as text (?format=xlsx for Excel)",
			"GET /health":           "Health check",
		},
	})
}

// handleHealth provides a health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// deltaEvent is one SSE data payload of the chat stream.
type deltaEvent struct {
	Type  string `json:"type"`
	Delta string `json:"delta,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleChat streams the assistant's reply as server-sent events:
// data: {"type":"text-delta","delta":"…"} per chunk, then data: [DONE].
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Messages array is required")
		return
	}
	if len(req.Messages) == 0 {
		s.respondError(w, http.StatusBadRequest, "Messages array is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.chatTimeout)
	defer cancel()

	wrote := false
	writeEvent := func(ev deltaEvent) error {
		payload, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if !wrote {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			wrote = true
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	err := s.streamer.StreamChat(ctx, chat.SystemPrompt(req.Sector), req.Messages, func(delta string) error {
		return writeEvent(deltaEvent{Type: "text-delta", Delta: delta})
	})
	if err != nil {
		if !wrote {
			s.respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		// The stream is already open; report in-band and terminate it.
		writeEvent(deltaEvent{Type: "error", Error: "stream interrupted"})
	} else if !wrote {
		// Empty reply still produces a well-formed stream.
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// handleRecommendations generates the roadmap for one sector/context pair.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Sector == "" {
		s.respondError(w, http.StatusBadRequest, "Sector is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.recommendTimeout)
	defer cancel()

	rec, err := s.recommender.Recommend(ctx, req.Sector, req.Context)
	if err != nil {
		s.logger.Error("recommendation generation failed",
			zap.String("sector", req.Sector),
			zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to generate recommendations",
			"details": err.Error(),
		})
		return
	}

	s.respondJSON(w, http.StatusOK, rec)
}

// handleExport renders a recommendation record as a downloadable roadmap.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req models.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		buf, err := export.Excel(req.Sector, req.Recommendation)
		if err != nil {
			s.logger.Error("excel export failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, "Failed to build workbook")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="roadmap.xlsx"`)
		w.Write(buf.Bytes())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="roadmap.txt"`)
	fmt.Fprint(w, export.Text(req.Sector, req.Recommendation))
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// rateLimitMiddleware applies the per-IP limiter to POST endpoints.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !s.limiter.Allow(ip) {
				s.respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware tags each request with an id and logs it.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Info("request",
			zap.String("id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}
