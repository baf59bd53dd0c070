package store

import (
	"context"
	"errors"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/quiz"
)

// ErrNotFound is returned when no session exists for an ID.
var ErrNotFound = errors.New("session not found")

// Session is one processed study text: its summary, keywords and quiz.
type Session struct {
	ID        string           `json:"id"`
	Summary   domain.Summary   `json:"summary"`
	Keywords  []domain.Keyword `json:"keywords"`
	Quiz      quiz.Quiz        `json:"quiz"`
	CreatedAt time.Time        `json:"created_at"`
}

// QuizStore persists sessions between generation and grading.
type QuizStore interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
