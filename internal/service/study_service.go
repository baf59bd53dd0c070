package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"studyquiz/internal/domain"
	"studyquiz/internal/logger"
	"studyquiz/internal/metrics"
	"studyquiz/internal/quiz"
	"studyquiz/internal/store"
	"studyquiz/internal/textproc"
)

var (
	ErrInputTooShort   = errors.New("input text too short")
	ErrSummaryTooShort = errors.New("summary too short")
	ErrNoDocuments     = errors.New("no .txt documents found")
)

const minSummaryChars = 10

// QuizGenerator builds quizzes from summary text.
type QuizGenerator interface {
	Generate(summary string, count int) quiz.Quiz
}

// Config holds the pipeline defaults and input bounds.
type Config struct {
	Style         domain.Style
	Length        domain.Length
	QuestionCount int
	KeywordCount  int
	MinRawChars   int
	MinCleanChars int
	MaxChars      int
}

// DefaultConfig returns the stock pipeline settings.
func DefaultConfig() Config {
	return Config{
		Style:         domain.StyleParagraphs,
		Length:        domain.LengthMedium,
		QuestionCount: quiz.DefaultQuestionCount,
		KeywordCount:  10,
		MinRawChars:   20,
		MinCleanChars: 50,
		MaxChars:      5000,
	}
}

// ProcessRequest is one study text plus optional overrides. Empty fields use
// the service defaults.
type ProcessRequest struct {
	Text          string
	Style         string
	Length        string
	QuestionCount int
}

// StudyService turns study text into stored sessions and grades them.
type StudyService struct {
	summarizer domain.Summarizer
	ranker     domain.KeywordRanker
	generator  QuizGenerator
	store      store.QuizStore
	metrics    *metrics.Recorder
	log        *logger.Logger
	rnd        quiz.Rand
	cfg        Config
	now        func() time.Time
}

func NewStudyService(summarizer domain.Summarizer, ranker domain.KeywordRanker, generator QuizGenerator, st store.QuizStore, rec *metrics.Recorder, log *logger.Logger, cfg Config) *StudyService {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = metrics.New(nil)
	}
	def := DefaultConfig()
	if cfg.Style == "" {
		cfg.Style = def.Style
	}
	if cfg.Length == "" {
		cfg.Length = def.Length
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = def.QuestionCount
	}
	if cfg.KeywordCount <= 0 {
		cfg.KeywordCount = def.KeywordCount
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = def.MaxChars
	}
	return &StudyService{
		summarizer: summarizer,
		ranker:     ranker,
		generator:  generator,
		store:      st,
		metrics:    rec,
		log:        log.With("service", "StudyService"),
		rnd:        quiz.NewRand(),
		cfg:        cfg,
		now:        time.Now,
	}
}

// Process summarizes the text, builds a quiz and ranks keywords from the
// summary, and stores the resulting session.
func (s *StudyService) Process(ctx context.Context, req ProcessRequest) (store.Session, error) {
	start := s.now()
	cleaned, err := s.prepare(req.Text)
	if err != nil {
		return store.Session{}, err
	}
	style, length := s.options(req.Style, req.Length)
	summary := s.summarizer.Summary(cleaned, style, length)
	if utf8.RuneCountInString(strings.TrimSpace(summary.Rendered)) < minSummaryChars {
		s.metrics.RecordRejected("summary_too_short")
		return store.Session{}, ErrSummaryTooShort
	}
	s.metrics.RecordSummary(string(style), string(length))

	count := req.QuestionCount
	if count <= 0 {
		count = s.cfg.QuestionCount
	}

	var (
		items    quiz.Quiz
		keywords []domain.Keyword
	)
	var g errgroup.Group
	g.Go(func() error {
		items = s.generator.Generate(summary.Rendered, count)
		return nil
	})
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				s.log.Warn("keyword extraction failed", "panic", r)
				keywords = nil
			}
		}()
		keywords = s.ranker.Rank(PlainText(summary), s.cfg.KeywordCount)
		return nil
	})
	if err := g.Wait(); err != nil {
		return store.Session{}, err
	}

	kinds := make([]string, len(items))
	for i, it := range items {
		kinds[i] = string(it.Kind())
	}
	s.metrics.RecordQuiz(kinds)

	sess := store.Session{
		ID:        uuid.NewString(),
		Summary:   summary,
		Keywords:  keywords,
		Quiz:      items,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return store.Session{}, fmt.Errorf("save session: %w", err)
	}
	s.metrics.ObserveProcess(s.now().Sub(start))
	s.log.Info("session created", "id", sess.ID, "sentences", len(summary.Sentences), "items", len(items), "keywords", len(keywords))
	return sess, nil
}

// Summarize validates and normalizes text, then summarizes it without storing anything.
func (s *StudyService) Summarize(text, style, length string) (domain.Summary, error) {
	cleaned, err := s.prepare(text)
	if err != nil {
		return domain.Summary{}, err
	}
	st, l := s.options(style, length)
	summary := s.summarizer.Summary(cleaned, st, l)
	s.metrics.RecordSummary(string(st), string(l))
	return summary, nil
}

// Keywords ranks the content words of text, truncated to the configured
// maximum. k <= 0 uses the configured count.
func (s *StudyService) Keywords(text string, k int) []domain.Keyword {
	if k <= 0 {
		k = s.cfg.KeywordCount
	}
	return s.ranker.Rank(textproc.Normalize(truncate(text, s.cfg.MaxChars)), k)
}

func (s *StudyService) Session(ctx context.Context, id string) (store.Session, error) {
	return s.store.Get(ctx, id)
}

// Grade scores answers against the stored quiz.
func (s *StudyService) Grade(ctx context.Context, id string, answers quiz.Answers) (quiz.GradingResult, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return quiz.GradingResult{}, err
	}
	res := quiz.Grade(sess.Quiz, answers)
	s.metrics.RecordGrade(res.Score, res.MaxScore)
	s.log.Debug("session graded", "id", id, "score", res.Score, "max", res.MaxScore)
	return res, nil
}

// Puzzle scrambles the words of the session summary.
func (s *StudyService) Puzzle(ctx context.Context, id string) (quiz.Puzzle, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return quiz.Puzzle{}, err
	}
	return quiz.NewPuzzle(PlainText(sess.Summary), s.rnd), nil
}

// ScorePuzzle scores a reconstruction of the session summary.
func (s *StudyService) ScorePuzzle(ctx context.Context, id, answer string) (int, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return quiz.ScorePuzzle(PlainText(sess.Summary), answer), nil
}

// Flashcards returns one card per item of the session quiz.
func (s *StudyService) Flashcards(ctx context.Context, id string) ([]quiz.Flashcard, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return quiz.Flashcards(sess.Quiz), nil
}

// ScoreFlashcards scores a flashcard run where known cards were marked as known.
func (s *StudyService) ScoreFlashcards(ctx context.Context, id string, known int) (quiz.GradingResult, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return quiz.GradingResult{}, err
	}
	res := quiz.ScoreFlashcards(known, len(sess.Quiz))
	s.metrics.RecordGrade(res.Score, res.MaxScore)
	return res, nil
}

// PlainText joins the summary sentences with spaces, ignoring the style.
func PlainText(summary domain.Summary) string {
	if len(summary.Sentences) == 0 {
		return summary.Rendered
	}
	parts := make([]string, len(summary.Sentences))
	for i, sent := range summary.Sentences {
		parts[i] = sent.Text
	}
	return strings.Join(parts, " ")
}

func (s *StudyService) options(style, length string) (domain.Style, domain.Length) {
	st, l := s.cfg.Style, s.cfg.Length
	if style != "" {
		st = domain.ParseStyle(style)
	}
	if length != "" {
		l = domain.ParseLength(length)
	}
	return st, l
}

func (s *StudyService) prepare(text string) (string, error) {
	raw := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(raw); n < s.cfg.MinRawChars {
		s.metrics.RecordRejected("raw_too_short")
		return "", fmt.Errorf("%w: %d characters, need at least %d", ErrInputTooShort, n, s.cfg.MinRawChars)
	}
	raw = truncate(raw, s.cfg.MaxChars)
	cleaned := textproc.Normalize(raw)
	if n := len(cleaned); n < s.cfg.MinCleanChars {
		s.metrics.RecordRejected("clean_too_short")
		return "", fmt.Errorf("%w: %d characters after cleaning, need at least %d", ErrInputTooShort, n, s.cfg.MinCleanChars)
	}
	return cleaned, nil
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// ReadInputs concatenates the .txt files named by paths, which may be globs.
func ReadInputs(paths []string) (string, error) {
	var b strings.Builder
	found := 0
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !strings.HasSuffix(strings.ToLower(m), ".txt") {
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return "", err
			}
			if found > 0 {
				b.WriteString("\n")
			}
			b.Write(data)
			found++
		}
	}
	if found == 0 {
		return "", ErrNoDocuments
	}
	return b.String(), nil
}
