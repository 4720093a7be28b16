package sampling

import "fmt"

// Candidate pairs a vocabulary id with the raw score it carried in the
// scorer's output vector.
type Candidate struct {
	ID    int
	Score float32
}

// TopK selects the k highest-scoring entries of scores, ordered from best
// to worst. Equal scores keep vocabulary order, so the lower id wins. The
// input slice is never modified.
//
// This is an O(len(scores)*k) insertion scan, suitable for the small k
// values decoding uses; it avoids sorting the full vocabulary.
func TopK(scores []float32, k int) ([]Candidate, error) {
	if k < 1 || k > len(scores) {
		return nil, fmt.Errorf("%w: top-k %d out of range for %d scores", ErrInvalidConfiguration, k, len(scores))
	}

	cands := make([]Candidate, 0, k+1)
	for i, v := range scores {
		pos := len(cands)
		for pos > 0 && cands[pos-1].Score < v {
			pos--
		}
		if pos >= k {
			continue
		}

		cands = append(cands, Candidate{})
		copy(cands[pos+1:], cands[pos:])
		cands[pos] = Candidate{ID: i, Score: v}

		if len(cands) > k {
			cands = cands[:k]
		}
	}
	return cands, nil
}
