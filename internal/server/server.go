// Package server exposes the lead intake HTTP API. Validation is the only
// synchronous failure path: once a submission passes, the caller gets an
// immediate accepted response and the evaluation pipeline runs detached.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/flowlogic-ai/lead-intake/internal/config"
	"github.com/flowlogic-ai/lead-intake/internal/model"
)

// Runner starts one evaluation. Implemented by pipeline.Orchestrator.
type Runner interface {
	Run(ctx context.Context, sub *model.LeadSubmission) (*model.EvaluationResult, error)
}

// Server handles intake submissions.
type Server struct {
	cfg      config.ServerConfig
	validate *validator.Validate
	runner   Runner
	limiter  *ipLimiter
}

// New creates a Server around the given pipeline runner.
func New(cfg config.ServerConfig, runner Runner) *Server {
	s := &Server{
		cfg:      cfg,
		validate: validator.New(),
		runner:   runner,
	}
	if cfg.RateLimit > 0 {
		s.limiter = newIPLimiter(cfg.RateLimit, cfg.RateBurst)
	}
	return s
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Webhook-Secret"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.middleware)
		}
		r.Post("/api/intake", s.handleIntake)
		r.Post("/api/intake/webhook", s.handleWebhook)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleIntake accepts a form submission, validates it, and kicks off the
// evaluation without waiting for it.
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.decodeSubmission(w, r)
	if !ok {
		return
	}
	s.accept(w, sub)
}

// handleWebhook is the intake variant for server-to-server callers,
// authenticated by a shared secret header.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.cfg.WebhookSecret == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "webhook intake not enabled",
		})
		return
	}
	secret := r.Header.Get("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.WebhookSecret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "invalid webhook secret",
		})
		return
	}

	sub, ok := s.decodeSubmission(w, r)
	if !ok {
		return
	}
	s.accept(w, sub)
}

func (s *Server) decodeSubmission(w http.ResponseWriter, r *http.Request) (*model.LeadSubmission, bool) {
	var sub model.LeadSubmission

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
		return nil, false
	}

	if err := s.validate.Struct(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "validation failed",
			"fields":  validationFields(err),
		})
		return nil, false
	}

	return &sub, true
}

// accept responds immediately and runs the pipeline detached from the
// request, so a slow or failing stage never delays the caller.
func (s *Server) accept(w http.ResponseWriter, sub *model.LeadSubmission) {
	go func() {
		if _, err := s.runner.Run(context.Background(), sub); err != nil {
			zap.L().Error("server: evaluation failed to start",
				zap.String("company", sub.Company),
				zap.Error(err))
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"success":    true,
		"redirectTo": s.cfg.RedirectTo,
	})
}

func validationFields(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("server: write response", zap.Error(err))
	}
}
