package server

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/quiz"
	"studyquiz/internal/store"
)

// CreateSessionRequest is the body of POST /api/v1/sessions.
type CreateSessionRequest struct {
	Text          string `json:"text" validate:"required,min=20"`
	Style         string `json:"style" validate:"omitempty,oneof=paragraphs bullets numbered very_short detailed"`
	Length        string `json:"length" validate:"omitempty,oneof=short medium long"`
	QuestionCount int    `json:"question_count" validate:"gte=0,lte=50"`
}

// SummaryRequest is the body of POST /api/v1/summaries.
type SummaryRequest struct {
	Text   string `json:"text" validate:"required,min=20"`
	Style  string `json:"style" validate:"omitempty,oneof=paragraphs bullets numbered very_short detailed"`
	Length string `json:"length" validate:"omitempty,oneof=short medium long"`
}

// KeywordsRequest is the body of POST /api/v1/keywords.
type KeywordsRequest struct {
	Text string `json:"text" validate:"required"`
	K    int    `json:"k" validate:"gte=0,lte=100"`
}

// GradeRequest is the body of POST /api/v1/sessions/{id}/grade. Each answer is
// keyed by item position and is either a string, a boolean, or, for matching
// items, an object keyed by List A position.
type GradeRequest struct {
	Answers map[string]json.RawMessage `json:"answers" validate:"required"`
}

// PuzzleAnswerRequest is the body of POST /api/v1/sessions/{id}/puzzle.
type PuzzleAnswerRequest struct {
	Answer string `json:"answer"`
}

// FlashcardsScoreRequest is the body of POST /api/v1/sessions/{id}/flashcards.
type FlashcardsScoreRequest struct {
	KnownCount int `json:"known_count" validate:"gte=0"`
}

// FlashcardsResponse is the reply of GET /api/v1/sessions/{id}/flashcards.
type FlashcardsResponse struct {
	Cards []quiz.Flashcard `json:"cards"`
}

// ItemResponse is a quiz item without its answer key.
type ItemResponse struct {
	Type    quiz.Kind `json:"type"`
	Prompt  string    `json:"prompt"`
	Options []string  `json:"options,omitempty"`
	ListA   []string  `json:"list_a,omitempty"`
	ListB   []string  `json:"list_b,omitempty"`
}

// SessionResponse is the client view of a session.
type SessionResponse struct {
	ID        string           `json:"id"`
	Summary   string           `json:"summary"`
	Style     domain.Style     `json:"style"`
	Length    domain.Length    `json:"length"`
	Keywords  []domain.Keyword `json:"keywords"`
	Quiz      []ItemResponse   `json:"quiz"`
	MaxScore  int              `json:"max_score"`
	CreatedAt time.Time        `json:"created_at"`
}

// SummaryResponse is the reply of POST /api/v1/summaries.
type SummaryResponse struct {
	Summary   string            `json:"summary"`
	Sentences []domain.Sentence `json:"sentences"`
}

// KeywordsResponse is the reply of POST /api/v1/keywords.
type KeywordsResponse struct {
	Keywords []domain.Keyword `json:"keywords"`
}

// PuzzleResponse is the reply of GET /api/v1/sessions/{id}/puzzle.
type PuzzleResponse struct {
	Scrambled []string `json:"scrambled"`
}

// PuzzleScoreResponse is the reply of POST /api/v1/sessions/{id}/puzzle.
type PuzzleScoreResponse struct {
	Score int `json:"score"`
}

func sessionToResponse(sess store.Session) SessionResponse {
	items := make([]ItemResponse, len(sess.Quiz))
	for i, it := range sess.Quiz {
		items[i] = itemToResponse(it)
	}
	kws := sess.Keywords
	if kws == nil {
		kws = []domain.Keyword{}
	}
	return SessionResponse{
		ID:        sess.ID,
		Summary:   sess.Summary.Rendered,
		Style:     sess.Summary.Style,
		Length:    sess.Summary.Length,
		Keywords:  kws,
		Quiz:      items,
		MaxScore:  quiz.PointsPerItem * len(sess.Quiz),
		CreatedAt: sess.CreatedAt,
	}
}

func itemToResponse(it quiz.Item) ItemResponse {
	out := ItemResponse{Type: it.Kind(), Prompt: it.Question()}
	switch v := it.(type) {
	case *quiz.MultipleChoice:
		out.Options = append([]string(nil), v.Options[:]...)
	case *quiz.Matching:
		out.ListA = v.ListA
		out.ListB = v.ListB
	}
	return out
}

// toAnswers converts the wire answers into grader submissions.
func (g GradeRequest) toAnswers() (quiz.Answers, error) {
	answers := make(quiz.Answers, len(g.Answers))
	for key, raw := range g.Answers {
		pos, err := strconv.Atoi(key)
		if err != nil || pos < 0 {
			return nil, fmt.Errorf("answer key %q is not an item position", key)
		}
		sub, err := parseSubmission(raw)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", pos, err)
		}
		answers[pos] = sub
	}
	return answers, nil
}

func parseSubmission(raw json.RawMessage) (quiz.Submission, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return quiz.Submission{}, nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return quiz.Submission{}, err
		}
		return quiz.Submission{Text: s}, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return quiz.Submission{}, err
		}
		return quiz.Submission{Text: strconv.FormatBool(b)}, nil
	case '{':
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return quiz.Submission{}, err
		}
		matches := make(map[int]string, len(m))
		for k, v := range m {
			idx, err := strconv.Atoi(k)
			if err != nil {
				return quiz.Submission{}, fmt.Errorf("match key %q is not a list position", k)
			}
			matches[idx] = v
		}
		return quiz.Submission{Matches: matches}, nil
	}
	return quiz.Submission{}, fmt.Errorf("unsupported answer %s", trimmed)
}
