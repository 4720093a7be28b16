// Package sampling implements a confidence-budgeted decoding loop. Each
// step restricts the scorer's proposals to the top k, normalizes them with
// a temperature softmax, charges a confidence budget by how diffuse the
// result is, and draws the next token only while the budget lasts. Under a
// fixed seed the whole loop is a pure function of prompt and configuration.
package sampling

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Scorer proposes next-token scores for a token sequence. Implementations
// must be deterministic: identical sequences yield identical vectors.
// Scorers are read-only and may be shared across concurrent Generate
// calls.
type Scorer interface {
	// Score returns one raw score per vocabulary id for the token that
	// would follow seq. seq may be empty. Blocking implementations must
	// honor ctx.
	Score(ctx context.Context, seq []int) ([]float32, error)

	// VocabSize reports the fixed length of the vectors Score returns.
	VocabSize() int
}

// Config bounds a generation call.
type Config struct {
	MaxNewTokens int     // cap on generated tokens, >= 0
	TopK         int     // candidate shortlist size, in [1, vocab]
	Temperature  float64 // softmax temperature, > 0
	Confidence   float64 // initial confidence budget
	EndToken     int     // vocabulary id that terminates generation
	Seed         int64   // random source seed
}

// Sampler runs the decoding loop against a fixed scorer and configuration.
// It holds no per-call state: every Generate call owns its own budget and
// random source, so one Sampler may serve concurrent calls.
type Sampler struct {
	scorer Scorer
	cfg    Config
}

// Result is the outcome of one generation call. Tokens holds only the
// generated suffix, never the prompt.
type Result struct {
	Tokens []int
	Reason Reason
	Steps  int // scorer queries issued
}

// New validates cfg against the scorer's vocabulary and returns a ready
// sampler. All configuration errors surface here, never mid-loop.
func New(scorer Scorer, cfg Config) (*Sampler, error) {
	if scorer == nil {
		return nil, fmt.Errorf("%w: nil scorer", ErrInvalidConfiguration)
	}
	vocab := scorer.VocabSize()
	switch {
	case cfg.MaxNewTokens < 0:
		return nil, fmt.Errorf("%w: max new tokens %d is negative", ErrInvalidConfiguration, cfg.MaxNewTokens)
	case cfg.TopK < 1 || cfg.TopK > vocab:
		return nil, fmt.Errorf("%w: top-k %d out of range [1,%d]", ErrInvalidConfiguration, cfg.TopK, vocab)
	case cfg.Temperature <= 0 || math.IsNaN(cfg.Temperature):
		return nil, fmt.Errorf("%w: temperature %v must be positive", ErrInvalidConfiguration, cfg.Temperature)
	case cfg.EndToken < 0 || cfg.EndToken >= vocab:
		return nil, fmt.Errorf("%w: end token %d outside vocabulary of %d", ErrInvalidConfiguration, cfg.EndToken, vocab)
	}
	return &Sampler{scorer: scorer, cfg: cfg}, nil
}

// Generate extends prompt until a stop rule fires. Per step it scores the
// working sequence, shortlists the top k, normalizes with temperature,
// charges the budget (stopping before the draw when it goes negative),
// draws a candidate, and checks the end token before committing. The end
// token is consumed, never emitted. At most MaxNewTokens scorer queries
// are issued.
//
// Context cancellation is a clean stop, not an error: the committed suffix
// comes back with ReasonCancelled and a nil error. Every other mid-loop
// failure returns the partial result, tagged ReasonIncomplete, alongside
// the error.
func (s *Sampler) Generate(ctx context.Context, prompt []int) (*Result, error) {
	var (
		res    = &Result{}
		seq    = append([]int(nil), prompt...)
		budget = NewBudget(s.cfg.Confidence)
		rng    = rand.New(rand.NewSource(s.cfg.Seed))
		policy = NewStopPolicy(s.cfg.EndToken, s.cfg.MaxNewTokens)
	)

	for !policy.LengthReached(len(res.Tokens)) {
		if ctx.Err() != nil {
			policy.Cancelled()
			break
		}

		scores, err := s.scorer.Score(ctx, seq)
		res.Steps++
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				policy.Cancelled()
				break
			}
			return res, &ScoreError{Step: res.Steps, Err: err}
		}
		if len(scores) != s.scorer.VocabSize() {
			return res, &ScoreError{Step: res.Steps, Err: fmt.Errorf("score vector length %d, vocabulary %d", len(scores), s.scorer.VocabSize())}
		}

		cands, err := TopK(scores, s.cfg.TopK)
		if err != nil {
			return res, fmt.Errorf("step %d: %w", res.Steps, err)
		}
		dist, err := Normalize(cands, s.cfg.Temperature)
		if err != nil {
			return res, fmt.Errorf("step %d: %w", res.Steps, err)
		}

		remaining, err := budget.Charge(dist)
		if err != nil {
			return res, fmt.Errorf("step %d: %w", res.Steps, err)
		}
		if policy.BudgetExhausted(remaining) {
			break
		}

		next := cands[draw(rng, dist)].ID
		if policy.EndToken(next) {
			break
		}

		seq = append(seq, next)
		res.Tokens = append(res.Tokens, next)
	}

	res.Reason = policy.Reason()
	return res, nil
}
