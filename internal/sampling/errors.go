package sampling

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration rejects out-of-bounds generation settings.
	// It is only ever raised before the decoding loop starts.
	ErrInvalidConfiguration = errors.New("invalid sampling configuration")

	// ErrDegenerateDistribution marks a candidate set that carries no
	// usable probability mass, such as an all -Inf score vector.
	ErrDegenerateDistribution = errors.New("degenerate distribution")
)

// ScoreError wraps a scorer failure with the step that issued the query.
// The cause is propagated untouched and the loop never retries.
type ScoreError struct {
	Step int
	Err  error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("score query at step %d: %v", e.Step, e.Err)
}

func (e *ScoreError) Unwrap() error { return e.Err }
