// Package server exposes the study pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"studyquiz/internal/domain"
	"studyquiz/internal/logger"
	"studyquiz/internal/quiz"
	"studyquiz/internal/service"
	"studyquiz/internal/store"
)

// StudyPort is the HTTP-facing subset of the study service.
type StudyPort interface {
	Process(ctx context.Context, req service.ProcessRequest) (store.Session, error)
	Session(ctx context.Context, id string) (store.Session, error)
	Grade(ctx context.Context, id string, answers quiz.Answers) (quiz.GradingResult, error)
	Puzzle(ctx context.Context, id string) (quiz.Puzzle, error)
	ScorePuzzle(ctx context.Context, id, answer string) (int, error)
	Flashcards(ctx context.Context, id string) ([]quiz.Flashcard, error)
	ScoreFlashcards(ctx context.Context, id string, known int) (quiz.GradingResult, error)
	Summarize(text, style, length string) (domain.Summary, error)
	Keywords(text string, k int) []domain.Keyword
}

// Config holds listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server wires handlers to a chi router.
type Server struct {
	svc      StudyPort
	log      *logger.Logger
	validate *validator.Validate
	metrics  http.Handler
	cfg      Config
	router   chi.Router
}

// New builds the router. metricsHandler may be nil.
func New(svc StudyPort, log *logger.Logger, metricsHandler http.Handler, cfg Config) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		svc:      svc,
		log:      log.With("component", "http"),
		validate: validator.New(),
		metrics:  metricsHandler,
		cfg:      cfg,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/summaries", s.handleSummarize)
		r.Post("/keywords", s.handleKeywords)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/grade", s.handleGrade)
			r.Get("/puzzle", s.handleGetPuzzle)
			r.Post("/puzzle", s.handleScorePuzzle)
			r.Get("/flashcards", s.handleGetFlashcards)
			r.Post("/flashcards", s.handleScoreFlashcards)
		})
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server shutdown completed")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()))
	})
}

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInputTooShort), errors.Is(err, service.ErrSummaryTooShort):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
