package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/quillml/quill/internal/engine"
	"github.com/quillml/quill/internal/logger"
	"github.com/quillml/quill/internal/sampling"
)

type fakeGenerator struct {
	lastReq   engine.Request
	lastText  string
	lastK     int
	resp      *engine.Response
	words     []string
	err       error
	vocabSize int
}

func (f *fakeGenerator) Generate(ctx context.Context, req engine.Request) (*engine.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeGenerator) Suggest(ctx context.Context, text string, k int) ([]string, error) {
	f.lastText = text
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	return f.words, nil
}

func (f *fakeGenerator) VocabSize() int { return f.vocabSize }

func newTestEcho(gen Generator) *echo.Echo {
	server := NewServer(gen, logger.JSON(io.Discard, slog.LevelError))
	e := echo.New()
	server.Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGenerateEndpoint(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{resp: &engine.Response{
		Text:         "cat sat",
		Reason:       "length-cap",
		PromptTokens: 1,
		Tokens:       2,
		Steps:        2,
		Duration:     5 * time.Millisecond,
	}}
	e := newTestEcho(gen)

	rec := doJSON(t, e, http.MethodPost, "/v1/generate", `{"prompt":"the","top_k":3,"seed":7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.ID, "gen_") {
		t.Errorf("ID = %q, want gen_ prefix", resp.ID)
	}
	if resp.Object != "generation" {
		t.Errorf("Object = %q, want generation", resp.Object)
	}
	if resp.Text != "cat sat" || resp.Reason != "length-cap" {
		t.Errorf("unexpected payload: %+v", resp)
	}
	if resp.DurationMS != 5 {
		t.Errorf("DurationMS = %d, want 5", resp.DurationMS)
	}

	if gen.lastReq.Prompt != "the" || gen.lastReq.TopK != 3 || gen.lastReq.Seed != 7 {
		t.Errorf("request not forwarded: %+v", gen.lastReq)
	}
	if gen.lastReq.MaxNewTokens != engine.DefaultMaxNewTokens {
		t.Errorf("MaxNewTokens = %d, want default %d", gen.lastReq.MaxNewTokens, engine.DefaultMaxNewTokens)
	}
}

func TestGenerateDefaults(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{resp: &engine.Response{}}
	e := newTestEcho(gen)

	rec := doJSON(t, e, http.MethodPost, "/v1/generate", `{"prompt":"x"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	want := engine.Request{
		Prompt:       "x",
		MaxNewTokens: engine.DefaultMaxNewTokens,
		TopK:         engine.DefaultTopK,
		Temperature:  engine.DefaultTemperature,
		Confidence:   engine.DefaultConfidence,
		Seed:         -1,
	}
	if gen.lastReq != want {
		t.Errorf("defaults not applied: got %+v, want %+v", gen.lastReq, want)
	}
}

func TestGenerateExplicitZeroMaxNewTokens(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{resp: &engine.Response{Reason: "length-cap"}}
	e := newTestEcho(gen)

	rec := doJSON(t, e, http.MethodPost, "/v1/generate", `{"prompt":"x","max_new_tokens":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if gen.lastReq.MaxNewTokens != 0 {
		t.Errorf("MaxNewTokens = %d, want explicit 0", gen.lastReq.MaxNewTokens)
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	t.Parallel()

	e := newTestEcho(&fakeGenerator{})
	rec := doJSON(t, e, http.MethodPost, "/v1/generate", `{"prompt":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid_request_error") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestGenerateInvalidConfiguration(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: fmt.Errorf("top-k out of range: %w", sampling.ErrInvalidConfiguration)}
	e := newTestEcho(gen)

	rec := doJSON(t, e, http.MethodPost, "/v1/generate", `{"prompt":"x","top_k":9999}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "top-k out of range") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestGenerateInternalError(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("counts unavailable")}
	e := newTestEcho(gen)

	rec := doJSON(t, e, http.MethodPost, "/v1/generate", `{"prompt":"x"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "server_error") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestSuggestEndpoint(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{words: []string{"cat", "dog"}}
	e := newTestEcho(gen)

	rec := doJSON(t, e, http.MethodPost, "/v1/suggest", `{"text":"the","k":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp SuggestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.ID, "sugg_") {
		t.Errorf("ID = %q, want sugg_ prefix", resp.ID)
	}
	if resp.Object != "suggestion" {
		t.Errorf("Object = %q, want suggestion", resp.Object)
	}
	if len(resp.Words) != 2 || resp.Words[0] != "cat" {
		t.Errorf("Words = %v, want [cat dog]", resp.Words)
	}
	if gen.lastText != "the" || gen.lastK != 2 {
		t.Errorf("request not forwarded: text=%q k=%d", gen.lastText, gen.lastK)
	}
}

func TestSuggestDefaultCount(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{words: []string{"a", "b", "c"}}
	e := newTestEcho(gen)

	rec := doJSON(t, e, http.MethodPost, "/v1/suggest", `{"text":"the"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if gen.lastK != engine.DefaultSuggestions {
		t.Errorf("k = %d, want default %d", gen.lastK, engine.DefaultSuggestions)
	}
}

func TestSuggestInvalidCount(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: fmt.Errorf("suggestion count 0 out of range: %w", sampling.ErrInvalidConfiguration)}
	e := newTestEcho(gen)

	rec := doJSON(t, e, http.MethodPost, "/v1/suggest", `{"text":"the","k":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestEcho(&fakeGenerator{vocabSize: 7})

	rec := doJSON(t, e, http.MethodGet, "/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
	if resp.Vocab != 7 {
		t.Errorf("Vocab = %d, want 7", resp.Vocab)
	}
	if resp.Version == "" {
		t.Error("Version not set")
	}
}
