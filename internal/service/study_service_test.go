package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquiz/internal/domain"
	"studyquiz/internal/keywords"
	"studyquiz/internal/metrics"
	"studyquiz/internal/quiz"
	"studyquiz/internal/store"
	"studyquiz/internal/store/memory"
	"studyquiz/internal/summarizer"
	"studyquiz/internal/textproc"
)

const studyText = "Photosynthesis is the process plants use to turn light into chemical energy. " +
	"Chlorophyll inside the leaves absorbs sunlight during photosynthesis. " +
	"Plants take in carbon dioxide from the air through tiny openings called stomata. " +
	"Water travels from the roots up to the leaves through the stem. " +
	"The energy from light splits water molecules and releases oxygen into the air. " +
	"Glucose produced by photosynthesis feeds the growing plants. " +
	"Animals depend on plants for food and for the oxygen they breathe."

type stubSummarizer struct{ rendered string }

func (s stubSummarizer) Summarize(string, domain.Style, domain.Length) string { return s.rendered }
func (s stubSummarizer) Summary(_ string, st domain.Style, l domain.Length) domain.Summary {
	return domain.Summary{Rendered: s.rendered, Style: st, Length: l}
}

type panickingRanker struct{}

func (panickingRanker) Rank(string, int) []domain.Keyword { panic("ranker broke") }

func newService(t *testing.T, cfg Config) (*StudyService, *memory.Storage) {
	t.Helper()
	st := memory.NewStorage()
	svc := NewStudyService(
		summarizer.NewFrequencySummarizer(),
		keywords.NewExtractor(),
		quiz.NewGenerator(quiz.NewSeededRand(7)),
		st, metrics.New(nil), nil, cfg,
	)
	return svc, st
}

func correctAnswers(q quiz.Quiz) quiz.Answers {
	answers := make(quiz.Answers, len(q))
	for i, it := range q {
		switch v := it.(type) {
		case *quiz.MultipleChoice:
			answers[i] = quiz.Submission{Text: v.Answer}
		case *quiz.TrueFalse:
			answers[i] = quiz.Submission{Text: v.AnswerText()}
		case *quiz.FillBlank:
			answers[i] = quiz.Submission{Text: v.Answer}
		case *quiz.Matching:
			answers[i] = quiz.Submission{Matches: v.AnswerKey}
		}
	}
	return answers
}

func TestProcessCreatesSession(t *testing.T) {
	svc, st := newService(t, DefaultConfig())
	ctx := context.Background()

	sess, err := svc.Process(ctx, ProcessRequest{Text: studyText, Style: "bullets", Length: "short", QuestionCount: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, domain.StyleBullets, sess.Summary.Style)
	assert.Len(t, sess.Summary.Sentences, 3)
	assert.True(t, strings.HasPrefix(sess.Summary.Rendered, "• "))
	assert.LessOrEqual(t, len(sess.Quiz), 3)
	assert.NotEmpty(t, sess.Quiz)
	require.NotEmpty(t, sess.Keywords)
	assertKeywordsInSummary(t, sess)
	assert.False(t, sess.CreatedAt.IsZero())

	stored, err := st.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, stored.ID)
}

func assertKeywordsInSummary(t *testing.T, sess store.Session) {
	t.Helper()
	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(PlainText(sess.Summary))) {
		words[textproc.TrimPunct(w)] = true
	}
	for _, kw := range sess.Keywords {
		assert.True(t, words[kw.Term], "keyword %q not in summary %q", kw.Term, PlainText(sess.Summary))
	}
}

func TestProcessRanksKeywordsFromSummary(t *testing.T) {
	svc, _ := newService(t, DefaultConfig())
	for _, length := range []string{"short", "medium", "long"} {
		sess, err := svc.Process(context.Background(), ProcessRequest{Text: studyText, Length: length})
		require.NoError(t, err)
		require.NotEmpty(t, sess.Keywords)
		assertKeywordsInSummary(t, sess)
	}

	// "leaves" appears twice in the text but in neither of the short summary's sentences.
	sess, err := svc.Process(context.Background(), ProcessRequest{Text: studyText, Length: "short"})
	require.NoError(t, err)
	require.NotContains(t, PlainText(sess.Summary), "leaves")
	for _, kw := range sess.Keywords {
		assert.NotEqual(t, "leaves", kw.Term)
	}
}

func TestProcessUsesConfiguredDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = domain.LengthShort
	cfg.Style = domain.StyleNumbered
	svc, _ := newService(t, cfg)

	sess, err := svc.Process(context.Background(), ProcessRequest{Text: studyText})
	require.NoError(t, err)
	assert.Equal(t, domain.StyleNumbered, sess.Summary.Style)
	assert.Equal(t, domain.LengthShort, sess.Summary.Length)
	assert.True(t, strings.HasPrefix(sess.Summary.Rendered, "1. "))
}

func TestProcessRejectsShortInput(t *testing.T) {
	svc, st := newService(t, DefaultConfig())
	ctx := context.Background()

	_, err := svc.Process(ctx, ProcessRequest{Text: "   too short   "})
	assert.ErrorIs(t, err, ErrInputTooShort)

	// Long enough raw, but under the cleaned minimum.
	_, err = svc.Process(ctx, ProcessRequest{Text: "Cells are small and plants grow."})
	assert.ErrorIs(t, err, ErrInputTooShort)

	_, err = svc.Process(ctx, ProcessRequest{Text: "@@@@@@@@@@ ########## %%%%%%%%%% ^^^^^^^^^^ &&&&&&&&&& Hi."})
	assert.ErrorIs(t, err, ErrInputTooShort)
	assert.Equal(t, 0, st.Len())
}

func TestProcessRejectsShortSummary(t *testing.T) {
	st := memory.NewStorage()
	svc := NewStudyService(stubSummarizer{rendered: "tiny"}, keywords.NewExtractor(), quiz.NewGenerator(quiz.NewSeededRand(1)), st, nil, nil, DefaultConfig())

	_, err := svc.Process(context.Background(), ProcessRequest{Text: studyText})
	assert.ErrorIs(t, err, ErrSummaryTooShort)
	assert.Equal(t, 0, st.Len())
}

func TestProcessSurvivesKeywordPanic(t *testing.T) {
	st := memory.NewStorage()
	svc := NewStudyService(summarizer.NewFrequencySummarizer(), panickingRanker{}, quiz.NewGenerator(quiz.NewSeededRand(1)), st, nil, nil, DefaultConfig())

	sess, err := svc.Process(context.Background(), ProcessRequest{Text: studyText})
	require.NoError(t, err)
	assert.Empty(t, sess.Keywords)
	assert.NotEmpty(t, sess.Quiz)
}

func TestProcessTruncatesInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxChars = 80
	svc, _ := newService(t, cfg)

	sess, err := svc.Process(context.Background(), ProcessRequest{Text: studyText})
	require.NoError(t, err)
	for _, sent := range sess.Summary.Sentences {
		assert.NotContains(t, sent.Text, "Chlorophyll")
	}
}

func TestGrade(t *testing.T) {
	svc, _ := newService(t, DefaultConfig())
	ctx := context.Background()
	sess, err := svc.Process(ctx, ProcessRequest{Text: studyText, Length: "long"})
	require.NoError(t, err)

	res, err := svc.Grade(ctx, sess.ID, correctAnswers(sess.Quiz))
	require.NoError(t, err)
	assert.Equal(t, quiz.PointsPerItem*len(sess.Quiz), res.MaxScore)
	assert.Equal(t, res.MaxScore, res.Score)

	res, err = svc.Grade(ctx, sess.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)

	_, err = svc.Grade(ctx, "missing", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPuzzle(t *testing.T) {
	svc, _ := newService(t, DefaultConfig())
	ctx := context.Background()
	sess, err := svc.Process(ctx, ProcessRequest{Text: studyText, Style: "bullets"})
	require.NoError(t, err)

	p, err := svc.Puzzle(ctx, sess.ID)
	require.NoError(t, err)
	plain := PlainText(sess.Summary)
	assert.ElementsMatch(t, strings.Fields(plain), p.Scrambled)
	assert.NotContains(t, p.Scrambled, "•")

	score, err := svc.ScorePuzzle(ctx, sess.ID, plain)
	require.NoError(t, err)
	assert.Equal(t, 100, score)

	score, err = svc.ScorePuzzle(ctx, sess.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	_, err = svc.Puzzle(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSummarizeAndKeywords(t *testing.T) {
	svc, st := newService(t, DefaultConfig())

	sum, err := svc.Summarize(studyText, "paragraphs", "short")
	require.NoError(t, err)
	assert.Len(t, sum.Sentences, 3)
	assert.Equal(t, 0, st.Len())

	_, err = svc.Summarize("short", "", "")
	assert.ErrorIs(t, err, ErrInputTooShort)

	kws := svc.Keywords(studyText, 2)
	require.Len(t, kws, 2)
	assert.Equal(t, "plants", kws[0].Term)
	assert.Equal(t, "photosynthesis", kws[1].Term)
	assert.Len(t, svc.Keywords(studyText, 0), 10)
}

func TestKeywordsTruncatesInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxChars = 80
	svc, _ := newService(t, cfg)

	for _, kw := range svc.Keywords(studyText, 50) {
		assert.NotEqual(t, "chlorophyll", kw.Term)
		assert.NotEqual(t, "animals", kw.Term)
	}
	assert.NotEmpty(t, svc.Keywords(studyText, 50))
}

func TestFlashcards(t *testing.T) {
	svc, _ := newService(t, DefaultConfig())
	ctx := context.Background()
	sess, err := svc.Process(ctx, ProcessRequest{Text: studyText})
	require.NoError(t, err)

	cards, err := svc.Flashcards(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, cards, len(sess.Quiz))
	for i, c := range cards {
		assert.Equal(t, sess.Quiz[i].Question(), c.Front)
		assert.NotEmpty(t, c.Back)
	}

	res, err := svc.ScoreFlashcards(ctx, sess.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, quiz.GradingResult{Score: 20, MaxScore: quiz.PointsPerItem * len(sess.Quiz)}, res)

	_, err = svc.Flashcards(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.ScoreFlashcards(ctx, "missing", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPlainTextFallsBackToRendered(t *testing.T) {
	assert.Equal(t, "raw", PlainText(domain.Summary{Rendered: "raw"}))
	assert.Equal(t, "A b. C d.", PlainText(domain.Summary{Sentences: []domain.Sentence{{Text: "A b."}, {Text: "C d."}}}))
}

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("first"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("second"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.md"), []byte("ignored"), 0o644))

	text, err := ReadInputs([]string{filepath.Join(dir, "*")})
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", text)

	_, err = ReadInputs([]string{filepath.Join(dir, "c.md")})
	assert.ErrorIs(t, err, ErrNoDocuments)

	_, err = ReadInputs([]string{filepath.Join(dir, "missing.txt")})
	assert.Error(t, err)
}
