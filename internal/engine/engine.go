// Package engine wires the vocabulary, tokenizer and scorer into the
// text-in/text-out operations the CLI and HTTP server expose.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/quillml/quill/internal/logger"
	"github.com/quillml/quill/internal/sampling"
	"github.com/quillml/quill/internal/tokenizer"
	"github.com/quillml/quill/internal/vocab"
)

// Defaults the CLI flags and API handlers fall back to when a knob is not
// set. The engine itself never substitutes them: a zero MaxNewTokens is a
// legitimate request for an empty continuation.
const (
	DefaultMaxNewTokens = 32
	DefaultTopK         = 40
	DefaultTemperature  = 0.9
	DefaultConfidence   = 6.0
	DefaultSuggestions  = 3
)

// Request describes one generation call. A negative Seed asks the engine
// to pick a time-based one; anything else reproduces byte-identical
// output for the same prompt and settings.
type Request struct {
	Prompt       string
	MaxNewTokens int
	TopK         int
	Temperature  float64
	Confidence   float64
	Seed         int64
}

// Response carries the generated continuation. On a mid-loop failure the
// partial text still comes back alongside the error, tagged with the
// incomplete reason.
type Response struct {
	Text         string
	Reason       string
	PromptTokens int
	Tokens       int
	Steps        int
	Duration     time.Duration
}

// Engine owns the read-only pieces of the pipeline. All fields are safe
// to share, so one Engine serves concurrent calls.
type Engine struct {
	vocab  *vocab.Vocabulary
	tok    tokenizer.Tokenizer
	scorer sampling.Scorer
	log    logger.Logger
}

func New(v *vocab.Vocabulary, tok tokenizer.Tokenizer, scorer sampling.Scorer, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Default()
	}
	return &Engine{vocab: v, tok: tok, scorer: scorer, log: log}
}

// VocabSize reports the size of the loaded vocabulary.
func (e *Engine) VocabSize() int { return e.vocab.Size() }

// Generate encodes the prompt, runs the confidence-budgeted sampling loop
// and decodes the suffix.
func (e *Engine) Generate(ctx context.Context, req Request) (*Response, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}

	seed := req.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}

	prompt, err := e.tok.Encode(req.Prompt)
	if err != nil {
		return nil, fmt.Errorf("encode prompt: %w", err)
	}

	s, err := sampling.New(e.scorer, sampling.Config{
		MaxNewTokens: req.MaxNewTokens,
		TopK:         req.TopK,
		Temperature:  req.Temperature,
		Confidence:   req.Confidence,
		EndToken:     vocab.EndID,
		Seed:         seed,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, genErr := s.Generate(ctx, prompt)
	text, err := e.tok.Decode(res.Tokens)
	if err != nil {
		return nil, fmt.Errorf("decode suffix: %w", err)
	}

	resp := &Response{
		Text:         text,
		Reason:       res.Reason.String(),
		PromptTokens: len(prompt),
		Tokens:       len(res.Tokens),
		Steps:        res.Steps,
		Duration:     time.Since(start),
	}
	if genErr != nil {
		e.log.Error("generation aborted", "err", genErr, "tokens", resp.Tokens, "steps", resp.Steps)
		return resp, genErr
	}
	e.log.Debug("generation complete",
		"reason", resp.Reason,
		"tokens", resp.Tokens,
		"steps", resp.Steps,
		"duration", resp.Duration,
	)
	return resp, nil
}

// Suggest proposes the k most likely next words for text, best first.
// Reserved ids are skipped, so the result only ever contains words.
func (e *Engine) Suggest(ctx context.Context, text string, k int) ([]string, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}
	if k < 1 || k > e.scorer.VocabSize() {
		return nil, fmt.Errorf("%w: suggestion count %d out of range [1,%d]", sampling.ErrInvalidConfiguration, k, e.scorer.VocabSize())
	}

	seq, err := e.tok.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}
	scores, err := e.scorer.Score(ctx, seq)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}

	// Fetch extra candidates so dropping the reserved ids still leaves k
	// words when the table allows it.
	kk := min(k+2, len(scores))
	cands, err := sampling.TopK(scores, kk)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, k)
	for _, c := range cands {
		if c.ID == vocab.EndID || c.ID == vocab.UnknownID {
			continue
		}
		words = append(words, e.vocab.Token(c.ID))
		if len(words) == k {
			break
		}
	}
	return words, nil
}
