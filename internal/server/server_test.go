package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquiz/internal/keywords"
	"studyquiz/internal/metrics"
	"studyquiz/internal/quiz"
	"studyquiz/internal/service"
	"studyquiz/internal/store"
	"studyquiz/internal/store/memory"
	"studyquiz/internal/summarizer"
)

const studyText = "Photosynthesis is the process plants use to turn light into chemical energy. " +
	"Chlorophyll inside the leaves absorbs sunlight during photosynthesis. " +
	"Plants take in carbon dioxide from the air through tiny openings called stomata. " +
	"Water travels from the roots up to the leaves through the stem. " +
	"The energy from light splits water molecules and releases oxygen into the air. " +
	"Glucose produced by photosynthesis feeds the growing plants. " +
	"Animals depend on plants for food and for the oxygen they breathe."

type testEnv struct {
	srv   *Server
	store *memory.Storage
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	st := memory.NewStorage()
	rec := metrics.New(nil)
	svc := service.NewStudyService(
		summarizer.NewFrequencySummarizer(),
		keywords.NewExtractor(),
		quiz.NewGenerator(quiz.NewSeededRand(3)),
		st, rec, nil, service.DefaultConfig(),
	)
	return testEnv{srv: New(svc, nil, rec.Handler(), Config{}), store: st}
}

func (e testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (e testEnv) createSession(t *testing.T) SessionResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/sessions", CreateSessionRequest{Text: studyText, Length: "long"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[SessionResponse](t, rec)
}

func TestHealthz(t *testing.T) {
	rec := newTestEnv(t).do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateSessionHidesAnswers(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/sessions", CreateSessionRequest{Text: studyText, Style: "bullets"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "answer")

	resp := decode[SessionResponse](t, rec)
	assert.NotEmpty(t, resp.ID)
	assert.True(t, strings.HasPrefix(resp.Summary, "• "))
	assert.NotEmpty(t, resp.Quiz)
	assert.Equal(t, quiz.PointsPerItem*len(resp.Quiz), resp.MaxScore)
	for _, it := range resp.Quiz {
		if it.Type == quiz.KindMultipleChoice {
			assert.Len(t, it.Options, 4)
		}
	}

	got := env.do(t, http.MethodGet, "/api/v1/sessions/"+resp.ID, nil)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, resp.ID, decode[SessionResponse](t, got).ID)
}

func TestCreateSessionValidation(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"missing text", map[string]any{}, http.StatusBadRequest},
		{"bad style", CreateSessionRequest{Text: studyText, Style: "haiku"}, http.StatusBadRequest},
		{"bad length", CreateSessionRequest{Text: studyText, Length: "huge"}, http.StatusBadRequest},
		{"unknown field", map[string]any{"text": studyText, "mode": "x"}, http.StatusBadRequest},
		{"too short after cleaning", CreateSessionRequest{Text: "Cells are small and plants grow."}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/sessions", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[ErrorResponse](t, rec).Error)
		})
	}
	assert.Equal(t, 0, env.store.Len())
}

func TestGetSessionNotFound(t *testing.T) {
	rec := newTestEnv(t).do(t, http.MethodGet, "/api/v1/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, store.ErrNotFound.Error(), decode[ErrorResponse](t, rec).Error)
}

func TestGradeFullMarks(t *testing.T) {
	env := newTestEnv(t)
	resp := env.createSession(t)
	sess, err := env.store.Get(context.Background(), resp.ID)
	require.NoError(t, err)

	answers := map[string]any{}
	for i, it := range sess.Quiz {
		key := strconv.Itoa(i)
		switch v := it.(type) {
		case *quiz.MultipleChoice:
			answers[key] = strings.ToUpper(v.Answer)
		case *quiz.TrueFalse:
			answers[key] = v.Answer
		case *quiz.FillBlank:
			answers[key] = v.Answer
		case *quiz.Matching:
			m := map[string]string{}
			for idx, word := range v.AnswerKey {
				m[strconv.Itoa(idx)] = word
			}
			answers[key] = m
		}
	}

	rec := env.do(t, http.MethodPost, "/api/v1/sessions/"+resp.ID+"/grade", map[string]any{"answers": answers})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[quiz.GradingResult](t, rec)
	assert.Equal(t, resp.MaxScore, res.MaxScore)
	assert.Equal(t, res.MaxScore, res.Score)
}

func TestGradeBadRequests(t *testing.T) {
	env := newTestEnv(t)
	resp := env.createSession(t)
	path := "/api/v1/sessions/" + resp.ID + "/grade"

	rec := env.do(t, http.MethodPost, path, map[string]any{"answers": map[string]any{"first": "x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, path, map[string]any{"answers": map[string]any{"0": 12}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, path, map[string]any{"answers": map[string]any{}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[quiz.GradingResult](t, rec).Score)

	rec = env.do(t, http.MethodPost, "/api/v1/sessions/nope/grade", map[string]any{"answers": map[string]any{}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPuzzleEndpoints(t *testing.T) {
	env := newTestEnv(t)
	resp := env.createSession(t)
	sess, err := env.store.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	plain := service.PlainText(sess.Summary)

	rec := env.do(t, http.MethodGet, "/api/v1/sessions/"+resp.ID+"/puzzle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, strings.Fields(plain), decode[PuzzleResponse](t, rec).Scrambled)

	rec = env.do(t, http.MethodPost, "/api/v1/sessions/"+resp.ID+"/puzzle", PuzzleAnswerRequest{Answer: plain})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, decode[PuzzleScoreResponse](t, rec).Score)
}

func TestSummariesAndKeywords(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/summaries", SummaryRequest{Text: studyText, Style: "numbered", Length: "short"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sum := decode[SummaryResponse](t, rec)
	assert.Len(t, sum.Sentences, 3)
	assert.True(t, strings.HasPrefix(sum.Summary, "1. "))

	rec = env.do(t, http.MethodPost, "/api/v1/keywords", KeywordsRequest{Text: studyText, K: 3})
	require.Equal(t, http.StatusOK, rec.Code)
	kws := decode[KeywordsResponse](t, rec).Keywords
	require.Len(t, kws, 3)
	assert.Equal(t, "plants", kws[0].Term)
	assert.Equal(t, 4, kws[0].Frequency)
}

func TestFlashcardEndpoints(t *testing.T) {
	env := newTestEnv(t)
	resp := env.createSession(t)
	path := "/api/v1/sessions/" + resp.ID + "/flashcards"

	rec := env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cards := decode[FlashcardsResponse](t, rec).Cards
	require.Len(t, cards, len(resp.Quiz))
	for i, c := range cards {
		assert.Equal(t, resp.Quiz[i].Prompt, c.Front)
	}

	rec = env.do(t, http.MethodPost, path, FlashcardsScoreRequest{KnownCount: 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, quiz.GradingResult{Score: 10, MaxScore: resp.MaxScore}, decode[quiz.GradingResult](t, rec))

	rec = env.do(t, http.MethodPost, path, FlashcardsScoreRequest{KnownCount: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/sessions/nope/flashcards", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestBodyTooLarge(t *testing.T) {
	env := newTestEnv(t)
	huge := strings.Repeat("plants grow ", maxBodyBytes/6)
	rec := env.do(t, http.MethodPost, "/api/v1/keywords", KeywordsRequest{Text: huge})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Request body too large", decode[ErrorResponse](t, rec).Error)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.createSession(t)
	rec := env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "studyquiz_quizzes_generated_total 1")
}

func TestParseSubmission(t *testing.T) {
	sub, err := parseSubmission(json.RawMessage(`"cat"`))
	require.NoError(t, err)
	assert.Equal(t, "cat", sub.Text)

	sub, err = parseSubmission(json.RawMessage(`false`))
	require.NoError(t, err)
	assert.Equal(t, "false", sub.Text)

	sub, err = parseSubmission(json.RawMessage(`{"0":"word","2":"other"}`))
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: "word", 2: "other"}, sub.Matches)

	sub, err = parseSubmission(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Equal(t, quiz.Submission{}, sub)

	_, err = parseSubmission(json.RawMessage(`{"a":"word"}`))
	assert.Error(t, err)
	_, err = parseSubmission(json.RawMessage(`[1]`))
	assert.Error(t, err)
}
