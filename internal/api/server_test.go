package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/vocal-technique/vocaltrans"
	"github.com/vocal-technique/vocaltrans/internal/feedback"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRouter(t *testing.T, sink *feedback.MemorySink) http.Handler {
	t.Helper()
	deps := Deps{
		Translator:       vocaltrans.Default(),
		Logger:           zap.NewNop(),
		Defaults:         vocaltrans.DefaultOptions,
		DefaultIntensity: 5,
		MaxTextBytes:     256,
		MaxBodyBytes:     1024,
		AllowedOrigins:   []string{"https://lyrics.example"},
	}
	if sink != nil {
		svc, err := feedback.NewService(sink)
		require.NoError(t, err)
		deps.Feedback = svc
	}
	return NewRouter(deps)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestTranslate(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/translate", `{"text":"Hello world","intensity":8}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[translateResponse](t, rec)
	assert.Equal(t, "Hehl-lah wahrl", got.Result)
	assert.Equal(t, 8, got.Level)
	assert.Equal(t, "full", got.LevelName)

	rec = do(t, h, http.MethodPost, "/api/translate", `{"text":"Hello world"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got = decode[translateResponse](t, rec)
	assert.Equal(t, "Hehl-loh wuhrld", got.Result, "default intensity 5 is moderate")

	rec = do(t, h, http.MethodPost, "/api/translate", `{"text":"<b>hello</b>","intensity":8,"hyphenate":false,"uppercase":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HEHLLAH", decode[translateResponse](t, rec).Result)
}

func TestTranslateRejects(t *testing.T) {
	h := newTestRouter(t, nil)
	cases := []struct {
		name, body string
		status     int
	}{
		{"empty text", `{"text":"  "}`, http.StatusBadRequest},
		{"markup only", `{"text":"<p></p>"}`, http.StatusBadRequest},
		{"malformed", `{"text":`, http.StatusBadRequest},
		{"no body", ``, http.StatusBadRequest},
		{"two objects", `{"text":"a"}{"text":"b"}`, http.StatusBadRequest},
		{"text too long", `{"text":"` + strings.Repeat("la ", 100) + `"}`, http.StatusBadRequest},
		{"body too large", `{"text":"` + strings.Repeat("x", 2000) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/translate", tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
		})
	}
}

func TestTranslateWords(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodPost, "/api/translate/words", `{"text":"Hello, baby!","intensity":8}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[translateWordsResponse](t, rec)
	require.Len(t, got.Words, 2)
	assert.Equal(t, wordJSON{Original: "Hello", Result: "Hehl-lah", Syllables: []string{"Hehl", "lah"}}, got.Words[0])
	assert.True(t, got.Words[1].Exception)
	assert.Equal(t, "bah-bae", got.Words[1].Result)
}

func TestSyllables(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/api/syllables?word=unhappy", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[syllablesResponse](t, rec)
	assert.Equal(t, "un", got.Prefix)
	assert.Equal(t, "happy", got.Root)
	require.Len(t, got.Syllables, 2)
	assert.Equal(t, "hap", got.Syllables[0].Text)
	assert.Equal(t, "closed", got.Syllables[0].Kind)

	rec = do(t, h, http.MethodGet, "/api/syllables?word=smile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got = decode[syllablesResponse](t, rec)
	require.Len(t, got.Syllables, 1)
	assert.Equal(t, "cvce", got.Syllables[0].Kind)
	assert.True(t, got.Syllables[0].SilentE)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/syllables", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodGet, "/api/syllables?word=123", "").Code)
}

func TestIntensity(t *testing.T) {
	h := newTestRouter(t, nil)
	for _, tc := range []struct {
		value string
		level int
	}{
		{"1", 1}, {"3.4", 1}, {"3.5", 4}, {"6", 4}, {"7", 8}, {"42", 8}, {"-3", 1},
	} {
		rec := do(t, h, http.MethodGet, "/api/intensity?value="+tc.value, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tc.level, decode[intensityResponse](t, rec).Level, "value %s", tc.value)
	}
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/intensity?value=loud", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/intensity", "").Code)
}

func TestFeedback(t *testing.T) {
	sink := &feedback.MemorySink{}
	h := newTestRouter(t, sink)

	body := `{"originalWord":"hello","currentTransformation":"hehl-lah","suggestedTransformation":"heh-loh","intensity":8,"context":"Hello world"}`
	req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(body))
	req.Header.Set("User-Agent", "lyric-tester/1.0")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[feedbackResponse](t, rec)
	assert.True(t, got.Success)
	assert.NotEmpty(t, got.ID)

	stored := sink.List()
	require.Len(t, stored, 1)
	assert.Equal(t, got.ID, stored[0].ID)
	assert.Equal(t, "lyric-tester/1.0", stored[0].UserAgent)
	assert.Equal(t, "192.0.2.1", stored[0].IP)

	rec = do(t, h, http.MethodPost, "/api/feedback", `{"originalWord":"hello","intensity":99}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Fields, "intensity")
	assert.Len(t, sink.List(), 1)
}

func TestFeedbackDisabled(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodPost, "/api/feedback", `{"originalWord":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutingErrors(t *testing.T) {
	h := newTestRouter(t, nil)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/nope", "").Code)
	rec := do(t, h, http.MethodGet, "/api/translate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCORS(t *testing.T) {
	h := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/translate", nil)
	req.Header.Set("Origin", "https://lyrics.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://lyrics.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
