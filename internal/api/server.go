// Package api exposes generation and suggestion over HTTP. Handlers are
// thin: decode, fill defaults, call the engine, encode.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/quillml/quill/internal/engine"
	"github.com/quillml/quill/internal/logger"
	"github.com/quillml/quill/internal/sampling"
	"github.com/quillml/quill/internal/version"
)

// Generator is the engine surface the server needs.
type Generator interface {
	Generate(ctx context.Context, req engine.Request) (*engine.Response, error)
	Suggest(ctx context.Context, text string, k int) ([]string, error)
	VocabSize() int
}

type Server struct {
	gen   Generator
	log   logger.Logger
	clock func() time.Time
}

func NewServer(gen Generator, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		gen:   gen,
		log:   log,
		clock: time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/generate", s.handleGenerate)
	e.POST("/v1/suggest", s.handleSuggest)
	e.GET("/v1/health", s.handleHealth)
}

func (s *Server) handleGenerate(c *echo.Context) error {
	req, err := decodeJSON[GenerateRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	ereq := engine.Request{
		Prompt:       req.Prompt,
		MaxNewTokens: engine.DefaultMaxNewTokens,
		TopK:         engine.DefaultTopK,
		Temperature:  engine.DefaultTemperature,
		Confidence:   engine.DefaultConfidence,
		Seed:         -1,
	}
	if req.MaxNewTokens != nil {
		ereq.MaxNewTokens = *req.MaxNewTokens
	}
	if req.TopK != nil {
		ereq.TopK = *req.TopK
	}
	if req.Temperature != nil {
		ereq.Temperature = *req.Temperature
	}
	if req.Confidence != nil {
		ereq.Confidence = *req.Confidence
	}
	if req.Seed != nil {
		ereq.Seed = *req.Seed
	}

	resp, err := s.gen.Generate(c.Request().Context(), ereq)
	if err != nil {
		if errors.Is(err, sampling.ErrInvalidConfiguration) {
			return writeBadRequest(c, err.Error())
		}
		s.log.Error("generate failed", "err", err)
		return writeServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, GenerateResponse{
		ID:           "gen_" + uuid.NewString(),
		Object:       "generation",
		CreatedAt:    s.clock().Unix(),
		Prompt:       req.Prompt,
		Text:         resp.Text,
		Reason:       resp.Reason,
		PromptTokens: resp.PromptTokens,
		Tokens:       resp.Tokens,
		Steps:        resp.Steps,
		DurationMS:   resp.Duration.Milliseconds(),
	})
}

func (s *Server) handleSuggest(c *echo.Context) error {
	req, err := decodeJSON[SuggestRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	k := engine.DefaultSuggestions
	if req.K != nil {
		k = *req.K
	}

	words, err := s.gen.Suggest(c.Request().Context(), req.Text, k)
	if err != nil {
		if errors.Is(err, sampling.ErrInvalidConfiguration) {
			return writeBadRequest(c, err.Error())
		}
		s.log.Error("suggest failed", "err", err)
		return writeServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, SuggestResponse{
		ID:        "sugg_" + uuid.NewString(),
		Object:    "suggestion",
		CreatedAt: s.clock().Unix(),
		Text:      req.Text,
		Words:     words,
	})
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.Resolve().Version,
		Vocab:   s.gen.VocabSize(),
	})
}
