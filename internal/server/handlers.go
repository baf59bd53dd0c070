package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studyquiz/internal/service"
)

// handleCreateSession handles POST /api/v1/sessions.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	sess, err := s.svc.Process(r.Context(), service.ProcessRequest{
		Text:          req.Text,
		Style:         req.Style,
		Length:        req.Length,
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		s.respondServiceError(w, r, err, "Failed to create session")
		return
	}
	s.respondJSON(w, http.StatusCreated, sessionToResponse(sess))
}

// handleGetSession handles GET /api/v1/sessions/{id}.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, r, err, "Failed to load session")
		return
	}
	s.respondJSON(w, http.StatusOK, sessionToResponse(sess))
}

// handleGrade handles POST /api/v1/sessions/{id}/grade.
func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	answers, err := req.toAnswers()
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Invalid answers: "+err.Error())
		return
	}
	res, err := s.svc.Grade(r.Context(), chi.URLParam(r, "id"), answers)
	if err != nil {
		s.respondServiceError(w, r, err, "Failed to grade session")
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

// handleGetPuzzle handles GET /api/v1/sessions/{id}/puzzle.
func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Puzzle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, r, err, "Failed to build puzzle")
		return
	}
	s.respondJSON(w, http.StatusOK, PuzzleResponse{Scrambled: p.Scrambled})
}

// handleScorePuzzle handles POST /api/v1/sessions/{id}/puzzle.
func (s *Server) handleScorePuzzle(w http.ResponseWriter, r *http.Request) {
	var req PuzzleAnswerRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	score, err := s.svc.ScorePuzzle(r.Context(), chi.URLParam(r, "id"), req.Answer)
	if err != nil {
		s.respondServiceError(w, r, err, "Failed to score puzzle")
		return
	}
	s.respondJSON(w, http.StatusOK, PuzzleScoreResponse{Score: score})
}

// handleGetFlashcards handles GET /api/v1/sessions/{id}/flashcards.
func (s *Server) handleGetFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.svc.Flashcards(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, r, err, "Failed to load flashcards")
		return
	}
	s.respondJSON(w, http.StatusOK, FlashcardsResponse{Cards: cards})
}

// handleScoreFlashcards handles POST /api/v1/sessions/{id}/flashcards.
func (s *Server) handleScoreFlashcards(w http.ResponseWriter, r *http.Request) {
	var req FlashcardsScoreRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	res, err := s.svc.ScoreFlashcards(r.Context(), chi.URLParam(r, "id"), req.KnownCount)
	if err != nil {
		s.respondServiceError(w, r, err, "Failed to score flashcards")
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

// handleSummarize handles POST /api/v1/summaries.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	sum, err := s.svc.Summarize(req.Text, req.Style, req.Length)
	if err != nil {
		s.respondServiceError(w, r, err, "Failed to summarize")
		return
	}
	s.respondJSON(w, http.StatusOK, SummaryResponse{Summary: sum.Rendered, Sentences: sum.Sentences})
}

// handleKeywords handles POST /api/v1/keywords.
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	s.respondJSON(w, http.StatusOK, KeywordsResponse{Keywords: s.svc.Keywords(req.Text, req.K)})
}

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := decodeJSON(w, r, v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		s.respondError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}

func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error(fallback, "error", err, "path", r.URL.Path)
		msg = fallback
	}
	s.respondError(w, r, status, msg)
}
