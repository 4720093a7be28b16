package sampling

import (
	"fmt"
	"math"
	"math/rand"
)

// Normalize converts restricted candidate scores into a probability
// distribution with a temperature-scaled softmax. Scores are
// max-subtracted before exponentiation for numerical stability, so only
// the shortlisted candidates ever contribute mass. The result aligns
// index-for-index with cands and sums to one.
func Normalize(cands []Candidate, temperature float64) ([]float64, error) {
	if temperature <= 0 || math.IsNaN(temperature) {
		return nil, fmt.Errorf("%w: temperature %v must be positive", ErrInvalidConfiguration, temperature)
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: empty candidate set", ErrDegenerateDistribution)
	}

	maxv := cands[0].Score
	for i := 1; i < len(cands); i++ {
		if cands[i].Score > maxv {
			maxv = cands[i].Score
		}
	}

	probs := make([]float64, len(cands))
	var sum float64
	for i, c := range cands {
		e := math.Exp(float64(c.Score-maxv) / temperature)
		probs[i] = e
		sum += e
	}
	if sum == 0 || math.IsNaN(sum) {
		return nil, fmt.Errorf("%w: softmax sum %v", ErrDegenerateDistribution, sum)
	}

	invSum := 1.0 / sum
	for i := range probs {
		probs[i] *= invSum
	}
	return probs, nil
}

// draw picks an index into probs proportionally to its mass. The
// cumulative scan falls back to the last index so float shortfall near 1.0
// can never leave the shortlist.
func draw(rng *rand.Rand, probs []float64) int {
	r := rng.Float64()
	var c float64
	for i, p := range probs {
		c += p
		if r <= c {
			return i
		}
	}
	return len(probs) - 1
}
