// Package chi exposes the HTTP JSON API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lumen-cloud/memodex/internal/domain"
	answeruc "github.com/lumen-cloud/memodex/internal/usecase/answer"
	conversationuc "github.com/lumen-cloud/memodex/internal/usecase/conversation"
	diagnosticsuc "github.com/lumen-cloud/memodex/internal/usecase/diagnostics"
	memoryuc "github.com/lumen-cloud/memodex/internal/usecase/memory"
	summaryuc "github.com/lumen-cloud/memodex/internal/usecase/summary"
	translateuc "github.com/lumen-cloud/memodex/internal/usecase/translate"
)

const rootMessage = "Study Assistant Backend Running"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the usecase services to their routes.
type Server struct {
	translator    *translateuc.Service
	summaries     *summaryuc.Service
	answers       *answeruc.Service
	memories      *memoryuc.Service
	dialog        *conversationuc.Service
	diagnostics   *diagnosticsuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	translator *translateuc.Service,
	summaries *summaryuc.Service,
	answers *answeruc.Service,
	memories *memoryuc.Service,
	dialog *conversationuc.Service,
	diagnostics *diagnosticsuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		translator:  translator,
		summaries:   summaries,
		answers:     answers,
		memories:    memories,
		dialog:      dialog,
		diagnostics: diagnostics,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusInternalServerError),
		sentinelHandler(domain.ErrStoreWrite, http.StatusInternalServerError),
		sentinelHandler(domain.ErrStoreRead, http.StatusInternalServerError),
		sentinelHandler(domain.ErrTranslation, http.StatusInternalServerError),
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/test", s.Diagnostics)
	r.Get("/metrics", s.Metrics)
	r.Route("/api", func(r chi.Router) {
		r.Post("/detect", s.DetectLanguage)
		r.Post("/translate", s.TranslateText)
		r.Post("/memory", s.SaveMemory)
		r.Get("/memory", s.ListMemory)
		r.Post("/conversation", s.LogConversation)
		r.Get("/conversation", s.GetConversation)
		r.Post("/summarize", s.Summarize)
		r.Post("/ask", s.Ask)
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: rootMessage})
}

// Diagnostics handles GET /test. It always answers 200; probe failures
// become descriptive report fields.
func (s *Server) Diagnostics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.diagnostics.Check(r.Context()))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// DetectLanguage handles POST /api/detect. Detection never fails: an
// unreachable detector degrades to {language: "auto", confidence: 0}.
func (s *Server) DetectLanguage(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.translator.Detect(r.Context(), req.Text))
}

// TranslateText handles POST /api/translate. Translation is the primary
// action here, so failures surface as 500.
func (s *Server) TranslateText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	translated, target, err := s.translator.Translate(r.Context(), req.Text, req.TargetLang)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{Translated: translated, Target: target})
}

// SaveMemory handles POST /api/memory.
func (s *Server) SaveMemory(w http.ResponseWriter, r *http.Request) {
	var note domain.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := s.memories.Save(r.Context(), note)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, savedResponse{ID: id, Status: "saved"})
}

// ListMemory handles GET /api/memory.
func (s *Server) ListMemory(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	notes, err := s.memories.List(r.Context(), r.URL.Query().Get("tag"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.Note{}
	}

	writeJSON(w, http.StatusOK, memoryListResponse{Items: notes})
}

// LogConversation handles POST /api/conversation.
func (s *Server) LogConversation(w http.ResponseWriter, r *http.Request) {
	var turn domain.Turn
	if err := json.NewDecoder(r.Body).Decode(&turn); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := s.dialog.Log(r.Context(), turn)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, savedResponse{ID: id, Status: "logged"})
}

// GetConversation handles GET /api/conversation.
func (s *Server) GetConversation(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	turns, err := s.dialog.History(r.Context(), r.URL.Query().Get("session_id"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if turns == nil {
		turns = []domain.Turn{}
	}

	writeJSON(w, http.StatusOK, conversationListResponse{Items: turns})
}

// Summarize handles POST /api/summarize. A set target_lang translates the
// summary best-effort; the untranslated summary still answers 200 when the
// translator is down.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := s.summaries.Summarize(r.Context(), req.Text, req.TargetLang)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{Summary: out})
}

// Ask handles POST /api/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	out, err := s.answers.Ask(r.Context(), req.Question, req.TargetLang)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{Answer: out})
}

func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit must be an integer")
	}
	return limit, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Validation errors carry their full text; store and translation failures
// reduce to the sentinel message.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrStoreUnavailable,
		domain.ErrStoreWrite,
		domain.ErrStoreRead,
		domain.ErrTranslation,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
