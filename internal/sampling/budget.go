package sampling

import (
	"fmt"
	"math"
)

// Budget is the running confidence account for a single generation call.
// Each step is charged by how diffuse the candidate distribution is; once
// the account is negative the loop halts before drawing another token.
type Budget struct {
	remaining float64
}

// NewBudget starts an account with the given confidence. A non-positive
// initial value is allowed: the first charge then exhausts it immediately.
func NewBudget(initial float64) *Budget {
	return &Budget{remaining: initial}
}

// Charge applies the step penalty 1 - m*m, where m is the probability mass
// of the top three candidates, and returns the remaining confidence. dist
// must be in descending probability order, as Normalize over TopK output
// produces. A sharply peaked distribution costs almost nothing; a flat one
// costs up to a full unit. There is no floor: the account goes negative
// and the sign is the stop signal.
func (b *Budget) Charge(dist []float64) (float64, error) {
	var mass float64
	for _, p := range dist[:min(3, len(dist))] {
		mass += p
	}
	if mass <= 0 || math.IsNaN(mass) {
		return b.remaining, fmt.Errorf("%w: top candidates carry no probability mass", ErrDegenerateDistribution)
	}
	b.remaining -= 1 - mass*mass
	return b.remaining, nil
}

// Remaining reports the current account balance.
func (b *Budget) Remaining() float64 { return b.remaining }
